//go:build !tinygo && cgo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"warren/internal/buildinfo"
)

// RunWindow starts a desktop window that displays the framebuffer and polls
// the keyboard into the gamepad bitmask. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error) error {
	h := New().(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Warren (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(ScreenWidth*3, ScreenHeight*3)
	ebiten.SetTPS(TickHz)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.pad.poll()
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	pal := fb.snapshot(g.scratch)

	dst := g.img.Pix
	for y := 0; y < fb.height; y++ {
		row := g.scratch[y*fb.stride : (y+1)*fb.stride]
		for x := 0; x < fb.width; x++ {
			c := pal[packedIndex4(row, x)]
			j := (y*fb.width + x) * 4
			dst[j+0] = c.R
			dst[j+1] = c.G
			dst[j+2] = c.B
			dst[j+3] = 0xFF
		}
	}

	g.fbImg.ReplacePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
