package app

import (
	"image/color"
	"strings"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"warren/hal"
)

// faultStep returns a step function for the error-display state: it paints
// the message once and then idles, keeping the tick callback alive.
func faultStep(h hal.HAL, err error) func() error {
	drawn := false
	return func() error {
		if drawn {
			return nil
		}
		drawn = true
		drawFault(h, err)
		return nil
	}
}

func drawFault(h hal.HAL, err error) {
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}

	fb.SetPalette(hal.DefaultPalette())
	fb.Clear(3) // darkest background shade

	d := &indexDisplay{fb: fb}
	font := &proggy.TinySZ8pt7b

	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	red := color.RGBA{R: 0xFF, G: 0x40, B: 0x20, A: 0xFF}

	const lineH = 10
	y := int16(lineH)
	tinyfont.WriteLine(d, font, 4, y, "LOAD ERROR", red)
	y += lineH * 2

	cols := fb.Width()/6 - 1
	for _, line := range wrapText(err.Error(), cols) {
		if int(y) >= fb.Height() {
			break
		}
		tinyfont.WriteLine(d, font, 4, y, line, white)
		y += lineH
	}

	_ = fb.Present()
}

// indexDisplay adapts the palette framebuffer to the displayer interface
// tinyfont draws through, picking the nearest palette entry per pixel.
type indexDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*indexDisplay)(nil)

func (d *indexDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *indexDisplay) SetPixel(x, y int16, c color.RGBA) {
	w, h := d.fb.Width(), d.fb.Height()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}

	idx := nearestIndex(d.fb.Palette(), c)
	buf := d.fb.Buffer()
	off := iy*d.fb.StrideBytes() + ix/2
	if off < 0 || off >= len(buf) {
		return
	}
	if ix&1 == 0 {
		buf[off] = buf[off]&0xF0 | idx
	} else {
		buf[off] = buf[off]&0x0F | idx<<4
	}
}

func (d *indexDisplay) Display() error { return d.fb.Present() }

func nearestIndex(pal [hal.PaletteSize]hal.RGB, c color.RGBA) uint8 {
	best := 0
	bestDist := 1 << 30
	for i, p := range pal {
		dr := int(p.R) - int(c.R)
		dg := int(p.G) - int(c.G)
		db := int(p.B) - int(c.B)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return uint8(best)
}

func wrapText(s string, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= cols:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
