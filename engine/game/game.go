// Package game owns the fixed-tick frame loop: input, simulation, then the
// render pipeline, in that order, once per host tick.
package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"warren/cart"
	"warren/engine/raycast"
	"warren/engine/render"
	"warren/engine/world"
	"warren/hal"
)

// State is the frame loop's lifecycle.
type State uint8

const (
	StateInit State = iota
	StateRunning
	StateLevelTransition
)

const (
	// FOV matches the original cartridge's lens.
	FOV = math.Pi / 2.7

	// Movement per tick, world units and radians.
	moveStep = 0.045
	turnStep = 0.045

	tickBudget = time.Second / hal.TickHz
)

// Game drives one console session. Single-threaded: all methods run on the
// host's tick callback.
type Game struct {
	fb  hal.Framebuffer
	pad hal.Gamepad
	log hal.Logger

	carts []*cart.Cartridge
	level int

	grid     *world.Grid
	cam      raycast.Camera
	sprites  []render.Sprite
	renderer *render.Renderer

	state   State
	prev    hal.Buttons
	pending int // staged level index during a transition

	tick       uint64
	overBudget bool
}

// New loads the first cartridge and leaves the game Running. Asset errors
// here are the fatal LoadError path; the caller decides how to display them.
func New(h hal.HAL, carts []*cart.Cartridge) (*Game, error) {
	if len(carts) == 0 {
		return nil, errors.New("game: no cartridges")
	}
	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, errors.New("game: no display")
	}
	in := h.Input()
	if in == nil || in.Gamepad() == nil {
		return nil, errors.New("game: no gamepad")
	}

	g := &Game{
		fb:      disp.Framebuffer(),
		pad:     in.Gamepad(),
		log:     h.Logger(),
		carts:   carts,
		state:   StateInit,
		pending: -1,
	}
	if err := g.loadLevel(0); err != nil {
		return nil, err
	}
	g.state = StateRunning
	return g, nil
}

// loadLevel swaps in cartridge i wholesale: grid, atlas, palette, camera and
// sprites replaced together so no frame can see a mix of two levels.
func (g *Game) loadLevel(i int) error {
	c := g.carts[i]

	cam, err := raycast.NewCamera(c.SpawnX, c.SpawnY, c.SpawnAngle, FOV)
	if err != nil {
		return fmt.Errorf("game: level %d: %w", i, err)
	}
	r, err := render.New(g.fb.Width(), g.fb.Height(), c.Atlas, render.DefaultConfig())
	if err != nil {
		return fmt.Errorf("game: level %d: %w", i, err)
	}

	sprites := make([]render.Sprite, len(c.Sprites))
	copy(sprites, c.Sprites)

	g.grid = c.Grid
	g.cam = cam
	g.sprites = sprites
	g.renderer = r
	g.level = i
	g.fb.SetPalette(c.Palette)
	return nil
}

// Step runs one tick: staged level swap, input, simulation, render, present.
func (g *Game) Step() error {
	start := time.Now()
	g.tick++

	// A staged transition applies here, between two ticks, so the render
	// phase below always sees exactly one level.
	if g.state == StateLevelTransition {
		if err := g.loadLevel(g.pending); err != nil {
			return err
		}
		g.pending = -1
		g.state = StateRunning
	}

	held := g.pad.Buttons()
	pressed := held &^ g.prev
	g.prev = held

	if pressed.Pressed(hal.ButtonA) && len(g.carts) > 1 {
		g.pending = (g.level + 1) % len(g.carts)
		g.state = StateLevelTransition
	}

	g.simulate(held)

	// Render phase: camera and sprites are read-only from here on.
	g.renderer.DegradeSprites = g.overBudget
	g.renderer.Render(g.grid, g.cam, g.sprites)
	if err := g.renderer.Blit(g.fb); err != nil {
		return err
	}
	if err := g.fb.Present(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	over := elapsed > tickBudget
	if over && !g.overBudget && g.log != nil {
		g.log.WriteLineString(fmt.Sprintf("game: tick %d took %v, degrading sprite pass", g.tick, elapsed))
	}
	g.overBudget = over
	return nil
}

// simulate advances camera state from the held buttons, stopping movement
// against walls one axis at a time so the player slides along them.
func (g *Game) simulate(held hal.Buttons) {
	if held.Pressed(hal.ButtonLeft) {
		g.cam.Angle -= turnStep
	}
	if held.Pressed(hal.ButtonRight) {
		g.cam.Angle += turnStep
	}
	g.cam.Angle = math.Mod(g.cam.Angle, 2*math.Pi)

	var walk float64
	if held.Pressed(hal.ButtonUp) {
		walk += moveStep
	}
	if held.Pressed(hal.ButtonDown) {
		walk -= moveStep
	}
	if walk == 0 {
		return
	}

	dx := math.Cos(g.cam.Angle) * walk
	dy := math.Sin(g.cam.Angle) * walk
	if nx := g.cam.X + dx; !g.grid.Blocked(nx, g.cam.Y) {
		g.cam.X = nx
	}
	if ny := g.cam.Y + dy; !g.grid.Blocked(g.cam.X, ny) {
		g.cam.Y = ny
	}
}

// State reports the loop's lifecycle state.
func (g *Game) State() State { return g.state }

// Level reports the index of the active cartridge.
func (g *Game) Level() int { return g.level }

// Camera returns the current camera, for inspection.
func (g *Game) Camera() raycast.Camera { return g.cam }

// Frame exposes the last composed frame.
func (g *Game) Frame() *render.Frame { return g.renderer.Frame() }
