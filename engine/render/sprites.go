package render

import (
	"math"
	"sort"

	"warren/engine/raycast"
)

// Sprite is a movable billboard in the level. The depth-sort key is derived
// per frame, never stored. ID ties equal depths so repeated runs render
// identically.
type Sprite struct {
	ID    int
	X, Y  float64
	Tex   int
	Alive bool
}

// nearClip rejects sprites on or behind the camera plane before the
// projection can divide by a non-positive depth.
const nearClip = 0.05

type visSprite struct {
	depth float64
	side  float64
	tex   int
	id    int
}

// drawSprites projects, sorts and composites the live sprites over the wall
// pass, occluding against the per-column depth buffer.
func (r *Renderer) drawSprites(cam raycast.Camera, sprites []Sprite) {
	cosA := math.Cos(cam.Angle)
	sinA := math.Sin(cam.Angle)

	vis := r.vis[:0]
	for i := range sprites {
		s := &sprites[i]
		if !s.Alive {
			continue
		}
		dx := s.X - cam.X
		dy := s.Y - cam.Y
		// Camera-basis transform: depth along the view axis, side across it.
		depth := dx*cosA + dy*sinA
		if depth <= nearClip {
			continue
		}
		vis = append(vis, visSprite{
			depth: depth,
			side:  -dx*sinA + dy*cosA,
			tex:   s.Tex,
			id:    s.ID,
		})
	}
	r.vis = vis

	// Farthest first; nearer sprites then take the last write per pixel.
	sort.Slice(vis, func(i, j int) bool {
		if vis[i].depth != vis[j].depth {
			return vis[i].depth > vis[j].depth
		}
		return vis[i].id < vis[j].id
	})

	for i := range vis {
		r.drawSprite(cam, &vis[i])
	}
}

func (r *Renderer) drawSprite(cam raycast.Camera, s *visSprite) {
	tile, ok := r.atlas.Tile(s.tex)
	if !ok {
		// Unknown texture id: drop this sprite for the frame only.
		return
	}

	// Screen column from the same angle mapping the caster uses, so depth
	// comparisons line up with the wall buffer.
	ang := math.Atan2(s.side, s.depth)
	center := (ang/cam.FOV + 0.5) * float64(r.w)

	size := int(float64(r.h) / s.depth)
	if size < 1 {
		return
	}
	x0 := int(center) - size/2
	x1 := x0 + size
	if x1 <= 0 || x0 >= r.w {
		// Outside the field of view.
		return
	}
	y0 := (r.h - size) / 2
	y1 := y0 + size

	sh := shade(s.depth)
	pix := r.frame.pix

	for x := max(x0, 0); x < min(x1, r.w); x++ {
		if s.depth >= r.hits[x].Dist {
			continue // occluded by geometry at this column
		}
		texU := (x - x0) * TileSize / size
		for y := max(y0, 0); y < min(y1, r.h); y++ {
			texV := (y - y0) * TileSize / size
			hue := tile.Texel(texU, texV)
			if hue == 0 {
				continue // transparent texel
			}
			pix[y*r.w+x] = paletteIndex(hue, sh)
		}
	}
}
