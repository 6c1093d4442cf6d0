package render

import (
	"errors"

	"warren/engine/raycast"
	"warren/engine/world"
	"warren/hal"
)

// Config sets the flat fill indices and the fallback hue for unknown wall
// textures. Zero value is unusable; start from DefaultConfig.
type Config struct {
	Ceiling  uint8 // palette index for rows above the wall span
	Floor    uint8 // palette index for rows below the wall span
	Fallback uint8 // hue used when a wall texture id is unknown
}

// DefaultConfig matches the boot palette layout in hal.DefaultPalette.
func DefaultConfig() Config {
	return Config{Ceiling: 2, Floor: 14, Fallback: 1}
}

// shadeLevels is the brightness ramp depth per hue.
const shadeLevels = 4

// shade maps a perpendicular distance onto the brightness ramp. Monotonic,
// clamped at the darkest level.
func shade(dist float64) uint8 {
	switch {
	case dist < 3:
		return 0
	case dist < 7:
		return 1
	case dist < 13:
		return 2
	default:
		return 3
	}
}

// paletteIndex composes a hue and a shade into the final 4-bit index.
func paletteIndex(hue, sh uint8) uint8 {
	return hue*shadeLevels + sh
}

// Renderer runs the per-frame pipeline: cast, wall texturing, sprite
// compositing, framebuffer packing. Scratch buffers persist across frames
// but carry no state into the next one.
type Renderer struct {
	w, h  int
	atlas *Atlas
	cfg   Config

	frame *Frame
	hits  []raycast.Hit

	vis []visSprite

	// DegradeSprites skips the sprite pass for the next frames. The frame
	// loop sets it when a tick blows its budget; walls always draw.
	DegradeSprites bool
}

// New builds a renderer for a w by h screen over the given atlas.
func New(w, h int, atlas *Atlas, cfg Config) (*Renderer, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("render: non-positive screen size")
	}
	if atlas == nil {
		return nil, errors.New("render: nil atlas")
	}
	return &Renderer{
		w:     w,
		h:     h,
		atlas: atlas,
		cfg:   cfg,
		frame: NewFrame(w, h),
		hits:  make([]raycast.Hit, w),
	}, nil
}

// Render recomputes the whole frame from the given state. Inputs are
// treated as read-only; rendering identical state yields identical frames.
func (r *Renderer) Render(g *world.Grid, cam raycast.Camera, sprites []Sprite) *Frame {
	raycast.Cast(g, cam, r.hits)
	r.drawWalls()
	if !r.DegradeSprites {
		r.drawSprites(cam, sprites)
	}
	return r.frame
}

// Hits exposes the last frame's depth buffer, one entry per column.
func (r *Renderer) Hits() []raycast.Hit { return r.hits }

// Frame exposes the composed frame.
func (r *Renderer) Frame() *Frame { return r.frame }

// Blit packs the composed frame into the console framebuffer.
func (r *Renderer) Blit(fb hal.Framebuffer) error { return r.frame.Pack(fb) }
