package render

import (
	"fmt"

	"warren/hal"
)

// Frame is the logical pixel array for one frame: one palette index per
// pixel. The pipeline assigns every pixel each frame, so rendering is a
// pure function of (grid, camera, sprites).
type Frame struct {
	w, h int
	pix  []uint8
}

// NewFrame allocates a frame cleared to index 0, the defined background.
func NewFrame(w, h int) *Frame {
	return &Frame{w: w, h: h, pix: make([]uint8, w*h)}
}

func (f *Frame) Width() int  { return f.w }
func (f *Frame) Height() int { return f.h }

// Pix exposes the index data row-major. Shared, not copied.
func (f *Frame) Pix() []uint8 { return f.pix }

// At returns the palette index at (x, y); 0 outside the frame.
func (f *Frame) At(x, y int) uint8 {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return 0
	}
	return f.pix[y*f.w+x]
}

// Set writes the palette index at (x, y), ignoring out-of-frame writes.
func (f *Frame) Set(x, y int, idx uint8) {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return
	}
	f.pix[y*f.w+x] = idx
}

// Clear fills the frame with one index.
func (f *Frame) Clear(idx uint8) {
	for i := range f.pix {
		f.pix[i] = idx
	}
}

// Pack encodes the frame into the console framebuffer: two pixels per byte,
// low nibble = left pixel, row-major with the framebuffer's stride. This is
// the only writer of the HAL buffer.
func (f *Frame) Pack(fb hal.Framebuffer) error {
	if fb.Format() != hal.PixelFormatIndexed4 {
		return fmt.Errorf("render: unsupported pixel format %d", fb.Format())
	}
	if fb.Width() != f.w || fb.Height() != f.h {
		return fmt.Errorf("render: frame %dx%d does not fit framebuffer %dx%d",
			f.w, f.h, fb.Width(), fb.Height())
	}

	buf := fb.Buffer()
	stride := fb.StrideBytes()
	for y := 0; y < f.h; y++ {
		src := f.pix[y*f.w : (y+1)*f.w]
		dst := buf[y*stride : y*stride+stride]
		for x := 0; x+1 < f.w; x += 2 {
			dst[x>>1] = src[x]&0x0F | src[x+1]<<4
		}
		if f.w&1 == 1 {
			dst[f.w>>1] = src[f.w-1] & 0x0F
		}
	}
	return nil
}
