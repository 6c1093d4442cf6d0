// Package cart defines the cartridge: the one blob of assets a level needs.
// It is loaded and validated once at init and immutable afterwards; level
// transitions swap whole cartridges, never patch one.
package cart

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"warren/engine/render"
	"warren/engine/world"
	"warren/hal"
)

// Layout (little-endian):
//
//	magic       "WCT1"
//	mapW, mapH  uint16
//	tileCount   uint16
//	spriteCount uint16
//	spawnX/Y    float32
//	spawnAngle  float32
//	palette     16 x 3 bytes RGB
//	map         mapW*mapH bytes (0 = empty, else 1-based wall texture id)
//	tiles       tileCount x 64 bytes (16x16 texels, 2bpp, low bits first)
//	sprites     spriteCount x {x, y float32; tex uint16; reserved uint16}
const (
	magic      = "WCT1"
	headerSize = 4 + 2*4 + 4*3 + hal.PaletteSize*3
	spriteSize = 4 + 4 + 2 + 2

	maxMapSide = 1024
	maxTiles   = 255
	maxSprites = 1024
)

// ErrFormat is the LoadError root: every structural defect wraps it.
var ErrFormat = errors.New("cart: invalid cartridge")

// Cartridge is one decoded, validated level.
type Cartridge struct {
	Grid    *world.Grid
	Atlas   *render.Atlas
	Palette [hal.PaletteSize]hal.RGB

	SpawnX, SpawnY float64
	SpawnAngle     float64

	Sprites []render.Sprite
}

// Decode parses and validates a cartridge blob. Any defect is fatal for
// the blob as a whole; there is no partial load.
func Decode(data []byte) (*Cartridge, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrFormat, len(data))
	}
	if string(data[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, data[:4])
	}

	mapW := int(binary.LittleEndian.Uint16(data[4:]))
	mapH := int(binary.LittleEndian.Uint16(data[6:]))
	tileCount := int(binary.LittleEndian.Uint16(data[8:]))
	spriteCount := int(binary.LittleEndian.Uint16(data[10:]))

	if mapW < 3 || mapH < 3 || mapW > maxMapSide || mapH > maxMapSide {
		return nil, fmt.Errorf("%w: map %dx%d out of range", ErrFormat, mapW, mapH)
	}
	if tileCount < 1 || tileCount > maxTiles {
		return nil, fmt.Errorf("%w: tile count %d out of range", ErrFormat, tileCount)
	}
	if spriteCount > maxSprites {
		return nil, fmt.Errorf("%w: sprite count %d out of range", ErrFormat, spriteCount)
	}

	want := headerSize + mapW*mapH + tileCount*render.TileBytes + spriteCount*spriteSize
	if len(data) != want {
		return nil, fmt.Errorf("%w: %d bytes, want %d for declared contents", ErrFormat, len(data), want)
	}

	spawnX := f32(data[12:])
	spawnY := f32(data[16:])
	spawnAngle := f32(data[20:])

	var c Cartridge
	c.SpawnX, c.SpawnY, c.SpawnAngle = float64(spawnX), float64(spawnY), float64(spawnAngle)
	for i := 0; i < hal.PaletteSize; i++ {
		off := 24 + i*3
		c.Palette[i] = hal.RGB{R: data[off], G: data[off+1], B: data[off+2]}
	}

	off := headerSize
	cells := make([]world.Cell, mapW*mapH)
	for i := range cells {
		v := data[off+i]
		if int(v) > tileCount {
			return nil, fmt.Errorf("%w: map cell %d references texture %d of %d", ErrFormat, i, v, tileCount)
		}
		cells[i] = world.Cell(v)
	}
	off += mapW * mapH

	grid, err := world.New(mapW, mapH, cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if !grid.Bordered() {
		return nil, fmt.Errorf("%w: map edge has non-wall cells", ErrFormat)
	}
	c.Grid = grid

	tiles := make([]render.Tile, tileCount)
	for i := range tiles {
		copy(tiles[i][:], data[off:off+render.TileBytes])
		off += render.TileBytes
	}
	c.Atlas = render.NewAtlas(tiles)

	if grid.Blocked(c.SpawnX, c.SpawnY) {
		return nil, fmt.Errorf("%w: spawn (%.2f, %.2f) inside a wall", ErrFormat, c.SpawnX, c.SpawnY)
	}

	c.Sprites = make([]render.Sprite, spriteCount)
	for i := range c.Sprites {
		x := float64(f32(data[off:]))
		y := float64(f32(data[off+4:]))
		tex := int(binary.LittleEndian.Uint16(data[off+8:]))
		off += spriteSize

		if tex < 1 || tex > tileCount {
			return nil, fmt.Errorf("%w: sprite %d references texture %d of %d", ErrFormat, i, tex, tileCount)
		}
		if x < 0 || x >= float64(mapW) || y < 0 || y >= float64(mapH) {
			return nil, fmt.Errorf("%w: sprite %d at (%.2f, %.2f) outside the map", ErrFormat, i, x, y)
		}
		c.Sprites[i] = render.Sprite{ID: i + 1, X: x, Y: y, Tex: tex, Alive: true}
	}

	return &c, nil
}

// Encode serialises a cartridge back to the wire layout. Inverse of Decode
// for valid cartridges; used by mkcart and the round-trip tests.
func (c *Cartridge) Encode() []byte {
	mapW, mapH := c.Grid.Width(), c.Grid.Height()
	tileCount := c.Atlas.Len()

	out := make([]byte, 0, headerSize+mapW*mapH+tileCount*render.TileBytes+len(c.Sprites)*spriteSize)
	out = append(out, magic...)
	out = binary.LittleEndian.AppendUint16(out, uint16(mapW))
	out = binary.LittleEndian.AppendUint16(out, uint16(mapH))
	out = binary.LittleEndian.AppendUint16(out, uint16(tileCount))
	out = binary.LittleEndian.AppendUint16(out, uint16(len(c.Sprites)))
	out = appendF32(out, float32(c.SpawnX))
	out = appendF32(out, float32(c.SpawnY))
	out = appendF32(out, float32(c.SpawnAngle))
	for _, p := range c.Palette {
		out = append(out, p.R, p.G, p.B)
	}
	for y := 0; y < mapH; y++ {
		for x := 0; x < mapW; x++ {
			out = append(out, byte(c.Grid.Cell(x, y)))
		}
	}
	for i := 1; i <= tileCount; i++ {
		t, _ := c.Atlas.Tile(i)
		out = append(out, t[:]...)
	}
	for _, s := range c.Sprites {
		out = appendF32(out, float32(s.X))
		out = appendF32(out, float32(s.Y))
		out = binary.LittleEndian.AppendUint16(out, uint16(s.Tex))
		out = binary.LittleEndian.AppendUint16(out, 0)
	}
	return out
}

func f32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func appendF32(b []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
}
