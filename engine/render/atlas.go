// Package render turns the caster's depth buffer plus the level's sprites
// into packed framebuffer contents.
package render

// TileSize is the side of one atlas tile in texels.
const TileSize = 16

// TileBytes is the packed size of one tile: 2 bits per texel, row-major,
// low bits first.
const TileBytes = TileSize * TileSize / 4

// Tile is one texture: texel values are hues 0-3. For sprite tiles hue 0
// means transparent, so sprites draw with hues 1-3 only.
type Tile [TileBytes]byte

// Texel returns the 2-bit value at (u, v). Callers keep u, v in range.
func (t *Tile) Texel(u, v int) uint8 {
	i := v*TileSize + u
	return t[i>>2] >> ((i & 3) << 1) & 3
}

// SetTexel writes the 2-bit value at (u, v).
func (t *Tile) SetTexel(u, v int, val uint8) {
	i := v*TileSize + u
	shift := (i & 3) << 1
	t[i>>2] = t[i>>2]&^(3<<shift) | (val&3)<<shift
}

// Atlas is the immutable texture set for one cartridge, keyed by 1-based id.
// Loaded once at init and passed by reference; never mutated afterwards.
type Atlas struct {
	tiles []Tile
}

// NewAtlas copies tiles into an Atlas.
func NewAtlas(tiles []Tile) *Atlas {
	a := &Atlas{tiles: make([]Tile, len(tiles))}
	copy(a.tiles, tiles)
	return a
}

// Len returns the number of tiles.
func (a *Atlas) Len() int { return len(a.tiles) }

// Tile looks up a tile by 1-based id. The second return is false for ids
// outside the atlas; callers fall back per-frame rather than failing.
func (a *Atlas) Tile(id int) (*Tile, bool) {
	if id < 1 || id > len(a.tiles) {
		return nil, false
	}
	return &a.tiles[id-1], true
}
