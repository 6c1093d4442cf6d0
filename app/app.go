// Package app assembles a console session from a HAL and cartridge blobs.
package app

import (
	"fmt"

	"warren/cart"
	"warren/engine/game"
	"warren/hal"
)

// Config selects what the console boots into.
type Config struct {
	// Carts holds raw cartridge blobs, decoded in order; button A cycles
	// through them. Empty means the built-in cartridge.
	Carts [][]byte
}

// New builds the per-tick step function. Asset failures don't propagate:
// the returned step renders the error-display state instead, since the
// target has no console to die on.
func New(h hal.HAL, cfg Config) func() error {
	carts, err := loadCarts(cfg.Carts)
	if err == nil {
		var g *game.Game
		g, err = game.New(h, carts)
		if err == nil {
			return g.Step
		}
	}

	if l := h.Logger(); l != nil {
		l.WriteLineString("app: " + err.Error())
	}
	return faultStep(h, err)
}

// Run starts the console and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	step := New(h, Config{})
	for range h.Time().Ticks() {
		if err := step(); err != nil {
			if l := h.Logger(); l != nil {
				l.WriteLineString("app: " + err.Error())
			}
			step = faultStep(h, err)
		}
	}
}

func loadCarts(blobs [][]byte) ([]*cart.Cartridge, error) {
	if len(blobs) == 0 {
		return []*cart.Cartridge{cart.Builtin()}, nil
	}
	carts := make([]*cart.Cartridge, 0, len(blobs))
	for i, b := range blobs {
		c, err := cart.Decode(b)
		if err != nil {
			return nil, fmt.Errorf("cartridge %d: %w", i, err)
		}
		carts = append(carts, c)
	}
	return carts, nil
}
