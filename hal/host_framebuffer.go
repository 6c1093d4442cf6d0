//go:build !tinygo

package hal

import "sync"

type hostFramebuffer struct {
	mu      sync.Mutex
	width   int
	height  int
	stride  int
	buf     []byte
	palette [PaletteSize]RGB
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := (width + 1) / 2
	return &hostFramebuffer{
		width:   width,
		height:  height,
		stride:  stride,
		buf:     make([]byte, stride*height),
		palette: DefaultPalette(),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatIndexed4 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }
func (f *hostFramebuffer) Present() error      { return nil }

func (f *hostFramebuffer) Palette() [PaletteSize]RGB {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.palette
}

func (f *hostFramebuffer) SetPalette(p [PaletteSize]RGB) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.palette = p
}

func (f *hostFramebuffer) Clear(index uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	index &= 0x0F
	b := index | index<<4
	for i := range f.buf {
		f.buf[i] = b
	}
}

// snapshot copies the packed buffer and current palette for the window blit.
func (f *hostFramebuffer) snapshot(dst []byte) [PaletteSize]RGB {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
	return f.palette
}
