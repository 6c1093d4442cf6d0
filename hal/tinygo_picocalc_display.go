//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

// The PicoCalc panel is 320x320; console pixels are doubled on blit.
const panelScale = 2

type ili9488 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	line []byte
}

func initILI9488() (*ili9488, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	})

	lcd := &ili9488{
		spi:  *machine.SPI1,
		cs:   machine.GP13,
		dc:   machine.GP14,
		rst:  machine.GP15,
		line: make([]byte, ScreenWidth*panelScale*2),
	}

	lcd.cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.dc.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.rst.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.cs.High()
	lcd.dc.High()
	lcd.rst.High()

	lcd.reset()
	lcd.init()

	return lcd, nil
}

func (d *ili9488) reset() {
	d.rst.Low()
	time.Sleep(64 * time.Millisecond)
	d.rst.High()
	time.Sleep(140 * time.Millisecond)
}

func (d *ili9488) init() {
	// Power control.
	d.cmd(0xC0, 0x17, 0x15) // PWCTRL1
	d.cmd(0xC1, 0x41)       // PWCTRL2

	// VCOM control.
	d.cmd(0xC5, 0x00, 0x12, 0x80, 0x40) // VMCTRL

	// Pixel format: 16bpp.
	d.cmd(0x3A, 0x55) // COLMOD

	// Frame rate / display function.
	d.cmd(0xB1, 0xA0, 0x11)       // FRMCTRL1
	d.cmd(0xB6, 0x02, 0x22, 0x27) // DISCTRL (320 lines)

	// Inversion mode. Many panels look correct with inversion enabled.
	d.cmd(0x21) // INVON

	// Memory access control: mirror for PicoCalc wiring + BGR panel order.
	d.cmd(0x36, 0x40|0x04|0x08) // MX|MH|BGR

	d.cmd(0x11) // SLPOUT
	time.Sleep(120 * time.Millisecond)
	d.cmd(0x29) // DISPON
}

func (d *ili9488) cmd(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

func (d *ili9488) setWindow(x0, y0, x1, y1 uint16) {
	d.cmd(
		0x2A,
		byte(x0>>8), byte(x0),
		byte(x1>>8), byte(x1),
	)
	d.cmd(
		0x2B,
		byte(y0>>8), byte(y0),
		byte(y1>>8), byte(y1),
	)
	d.cmd(0x2C)
}

// blitIndexed4 expands the packed 4bpp framebuffer through the palette LUT
// into doubled RGB565 scanlines and streams them to the panel.
func (d *ili9488) blitIndexed4(buf []byte, stride, w, h int, lut *[PaletteSize]uint16) error {
	if w <= 0 || h <= 0 || len(buf) < stride*h {
		return errors.New("invalid framebuffer")
	}

	pw := uint16(w*panelScale - 1)
	ph := uint16(h*panelScale - 1)
	d.setWindow(0, 0, pw, ph)

	d.cs.Low()
	d.dc.High()

	for y := 0; y < h; y++ {
		row := buf[y*stride : (y+1)*stride]
		for x := 0; x < w; x++ {
			// The LCD expects big-endian RGB565.
			p := lut[packedIndex4(row, x)]
			j := x * panelScale * 2
			hi, lo := byte(p>>8), byte(p)
			d.line[j+0] = hi
			d.line[j+1] = lo
			d.line[j+2] = hi
			d.line[j+3] = lo
		}
		for i := 0; i < panelScale; i++ {
			d.spi.Tx(d.line, nil)
		}
	}

	d.cs.High()
	return nil
}

type picoCalcFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte

	palette [PaletteSize]RGB
	lut     [PaletteSize]uint16

	lcd *ili9488
}

func newPicoCalcDisplay() (*picoCalcFramebuffer, error) {
	lcd, err := initILI9488()
	if err != nil {
		return nil, err
	}

	stride := (ScreenWidth + 1) / 2
	fb := &picoCalcFramebuffer{
		w:      ScreenWidth,
		h:      ScreenHeight,
		stride: stride,
		buf:    make([]byte, stride*ScreenHeight),
		lcd:    lcd,
	}
	fb.SetPalette(DefaultPalette())
	return fb, nil
}

func (f *picoCalcFramebuffer) Width() int          { return f.w }
func (f *picoCalcFramebuffer) Height() int         { return f.h }
func (f *picoCalcFramebuffer) Format() PixelFormat { return PixelFormatIndexed4 }
func (f *picoCalcFramebuffer) StrideBytes() int    { return f.stride }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf }

func (f *picoCalcFramebuffer) Palette() [PaletteSize]RGB { return f.palette }

func (f *picoCalcFramebuffer) SetPalette(p [PaletteSize]RGB) {
	f.palette = p
	for i, c := range p {
		f.lut[i] = rgb565(c.R, c.G, c.B)
	}
}

func (f *picoCalcFramebuffer) Clear(index uint8) {
	index &= 0x0F
	b := index | index<<4
	for i := range f.buf {
		f.buf[i] = b
	}
}

func (f *picoCalcFramebuffer) Present() error {
	return f.lcd.blitIndexed4(f.buf, f.stride, f.w, f.h, &f.lut)
}
