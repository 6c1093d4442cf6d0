package hal

// nullFramebuffer is an in-memory framebuffer whose Present is a no-op.
// Used by the headless runner tests and as the fallback when no panel is found.
type nullFramebuffer struct {
	w       int
	h       int
	stride  int
	buf     []byte
	palette [PaletteSize]RGB
}

// NewNullFramebuffer returns a framebuffer not attached to any display.
func NewNullFramebuffer(w, h int) Framebuffer { return newNullFramebuffer(w, h) }

func newNullFramebuffer(w, h int) *nullFramebuffer {
	stride := (w + 1) / 2
	return &nullFramebuffer{
		w:       w,
		h:       h,
		stride:  stride,
		buf:     make([]byte, stride*h),
		palette: DefaultPalette(),
	}
}

func (f *nullFramebuffer) Width() int                    { return f.w }
func (f *nullFramebuffer) Height() int                   { return f.h }
func (f *nullFramebuffer) Format() PixelFormat           { return PixelFormatIndexed4 }
func (f *nullFramebuffer) StrideBytes() int              { return f.stride }
func (f *nullFramebuffer) Buffer() []byte                { return f.buf }
func (f *nullFramebuffer) Palette() [PaletteSize]RGB     { return f.palette }
func (f *nullFramebuffer) SetPalette(p [PaletteSize]RGB) { f.palette = p }
func (f *nullFramebuffer) Present() error                { return nil }

func (f *nullFramebuffer) Clear(index uint8) {
	index &= 0x0F
	b := index | index<<4
	for i := range f.buf {
		f.buf[i] = b
	}
}
