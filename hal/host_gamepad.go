//go:build !tinygo && cgo

package hal

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

type hostGamepad struct {
	state atomic.Uint32
}

func newHostGamepad() *hostGamepad {
	return &hostGamepad{}
}

func (p *hostGamepad) Buttons() Buttons { return Buttons(p.state.Load()) }

// poll samples the keyboard once per tick from the window update loop.
func (p *hostGamepad) poll() {
	var b Buttons
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		b |= ButtonUp
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		b |= ButtonDown
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		b |= ButtonLeft
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		b |= ButtonRight
	}
	if ebiten.IsKeyPressed(ebiten.KeyX) || ebiten.IsKeyPressed(ebiten.KeyEnter) {
		b |= ButtonA
	}
	if ebiten.IsKeyPressed(ebiten.KeyZ) || ebiten.IsKeyPressed(ebiten.KeySpace) {
		b |= ButtonB
	}
	p.state.Store(uint32(b))
}
