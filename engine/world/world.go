// Package world holds the static level grid the renderer and the
// simulation walk against.
package world

import (
	"errors"
	"fmt"
)

// Cell is one grid square: 0 means empty, any other value is a wall
// carrying its 1-based texture id.
type Cell uint8

// Empty is the open-floor cell value.
const Empty Cell = 0

// IsWall reports whether the cell blocks movement and rays.
func (c Cell) IsWall() bool { return c != Empty }

// Texture returns the wall's 1-based texture id. Zero for empty cells.
func (c Cell) Texture() int { return int(c) }

// Wall builds a wall cell for texture id. Ids above 255 are clamped;
// cartridges never produce them.
func Wall(texture int) Cell {
	if texture < 1 {
		texture = 1
	}
	if texture > 255 {
		texture = 255
	}
	return Cell(texture)
}

var ErrBadGrid = errors.New("world: invalid grid")

// outside is the synthetic wall returned for any out-of-range lookup, which
// guarantees rays terminate no matter where they start.
const outside = Cell(1)

// Grid is an immutable level map. Level changes replace the whole Grid;
// there are no mutation operations.
type Grid struct {
	w, h  int
	cells []Cell
}

// New validates dimensions against the cell data and builds a Grid.
// The slice is copied; callers may reuse theirs.
func New(w, h int, cells []Cell) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrBadGrid, w, h)
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrBadGrid, len(cells), w, h)
	}
	g := &Grid{w: w, h: h, cells: make([]Cell, w*h)}
	copy(g.cells, cells)
	return g, nil
}

func (g *Grid) Width() int  { return g.w }
func (g *Grid) Height() int { return g.h }

// Cell is total over all integers: out-of-range coordinates read as a wall.
func (g *Grid) Cell(x, y int) Cell {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return outside
	}
	return g.cells[y*g.w+x]
}

// Blocked reports whether the continuous point (fx, fy) sits inside a wall.
func (g *Grid) Blocked(fx, fy float64) bool {
	x, y := int(fx), int(fy)
	if fx < 0 {
		x--
	}
	if fy < 0 {
		y--
	}
	return g.Cell(x, y).IsWall()
}

// Bordered reports whether every edge cell is a wall. Cartridge loading
// requires this so rays can never march off a level's open edge.
func (g *Grid) Bordered() bool {
	for x := 0; x < g.w; x++ {
		if !g.cells[x].IsWall() || !g.cells[(g.h-1)*g.w+x].IsWall() {
			return false
		}
	}
	for y := 0; y < g.h; y++ {
		if !g.cells[y*g.w].IsWall() || !g.cells[y*g.w+g.w-1].IsWall() {
			return false
		}
	}
	return true
}
