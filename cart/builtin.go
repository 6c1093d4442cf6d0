package cart

import (
	"math"

	"warren/engine/render"
	"warren/engine/world"
	"warren/hal"
)

// builtinRows is the stock level, one bit per cell, bit x = column x.
var builtinRows = [8]uint16{
	0b1111111111111111,
	0b1000001010000101,
	0b1011100000110101,
	0b1000111010010001,
	0b1010001011110111,
	0b1011101001100001,
	0b1000100000001101,
	0b1111111111111111,
}

const (
	builtinTexBrick  = 1
	builtinTexStone  = 2
	builtinTexPillar = 3
	builtinTexShrub  = 4
)

// Builtin returns the cartridge the console boots with when no file is
// given: the stock maze, procedural tiles and two sprites.
func Builtin() *Cartridge {
	const w, h = 16, 8
	cells := make([]world.Cell, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if builtinRows[y]&(1<<x) == 0 {
				continue
			}
			tex := builtinTexBrick
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				tex = builtinTexStone
			}
			cells[y*w+x] = world.Wall(tex)
		}
	}
	grid, err := world.New(w, h, cells)
	if err != nil {
		panic("cart: builtin grid: " + err.Error())
	}

	tiles := []render.Tile{
		brickTile(),
		stoneTile(),
		pillarTile(),
		shrubTile(),
	}

	return &Cartridge{
		Grid:       grid,
		Atlas:      render.NewAtlas(tiles),
		Palette:    hal.DefaultPalette(),
		SpawnX:     1.5,
		SpawnY:     1.5,
		SpawnAngle: 0,
		Sprites: []render.Sprite{
			{ID: 1, X: 5.5, Y: 1.5, Tex: builtinTexPillar, Alive: true},
			{ID: 2, X: 12.5, Y: 6.5, Tex: builtinTexShrub, Alive: true},
		},
	}
}

// brickTile: hue-1 courses with hue-0 mortar, joints staggered per course.
func brickTile() render.Tile {
	var t render.Tile
	for v := 0; v < render.TileSize; v++ {
		course := v / 4
		for u := 0; u < render.TileSize; u++ {
			hue := uint8(1)
			if v%4 == 3 {
				hue = 0
			} else if (u+course*4)%8 == 7 {
				hue = 0
			}
			t.SetTexel(u, v, hue)
		}
	}
	return t
}

// stoneTile: hue-2/hue-3 blocks split by hue-0 seams.
func stoneTile() render.Tile {
	var t render.Tile
	for v := 0; v < render.TileSize; v++ {
		for u := 0; u < render.TileSize; u++ {
			hue := uint8(2)
			if (u/4+v/4)%2 == 1 {
				hue = 3
			}
			if u%4 == 0 || v%4 == 0 {
				hue = 0
			}
			t.SetTexel(u, v, hue)
		}
	}
	return t
}

// pillarTile: round column, hue 2 with a hue-1 highlight; texel 0 outside
// the silhouette stays transparent when drawn as a sprite.
func pillarTile() render.Tile {
	var t render.Tile
	const cx, cy, radius = 7.5, 7.5, 6.5
	for v := 0; v < render.TileSize; v++ {
		for u := 0; u < render.TileSize; u++ {
			d := math.Hypot(float64(u)-cx, float64(v)-cy)
			if d > radius {
				continue
			}
			hue := uint8(2)
			if d < radius-4 && u < 8 {
				hue = 1
			}
			t.SetTexel(u, v, hue)
		}
	}
	return t
}

// shrubTile: moss blob with sparse hue-1 buds.
func shrubTile() render.Tile {
	var t render.Tile
	const cx, cy = 7.5, 9.0
	for v := 0; v < render.TileSize; v++ {
		for u := 0; u < render.TileSize; u++ {
			d := math.Hypot(float64(u)-cx, float64(v)-cy)
			if d > 6.5 {
				continue
			}
			hue := uint8(3)
			if (u*5+v*3)%11 == 0 {
				hue = 1
			}
			t.SetTexel(u, v, hue)
		}
	}
	return t
}
