package render

// minDepth clamps the projection divisor so a wall touching the camera
// cannot blow up the span height.
const minDepth = 1e-4

// drawWalls fills every pixel of every column: flat ceiling above the wall
// span, the textured span itself, flat floor below.
func (r *Renderer) drawWalls() {
	for c := 0; c < r.w; c++ {
		r.drawColumn(c)
	}
}

func (r *Renderer) drawColumn(c int) {
	hit := r.hits[c]

	dist := hit.Dist
	if dist < minDepth {
		dist = minDepth
	}
	lineH := int(float64(r.h) / dist)
	top := (r.h - lineH) / 2
	bottom := top + lineH

	drawTop := top
	if drawTop < 0 {
		drawTop = 0
	}
	drawBottom := bottom
	if drawBottom > r.h {
		drawBottom = r.h
	}

	pix := r.frame.pix
	for y := 0; y < drawTop; y++ {
		pix[y*r.w+c] = r.cfg.Ceiling
	}
	for y := drawBottom; y < r.h; y++ {
		pix[y*r.w+c] = r.cfg.Floor
	}
	if drawTop >= drawBottom {
		return
	}

	sh := shade(hit.Dist)
	if hit.Face.Vertical() && sh < shadeLevels-1 {
		sh++
	}

	tile, ok := r.atlas.Tile(hit.Tex)
	if hit.Sentinel() || !ok {
		// No texture for this column this frame: flat fill, keep going.
		idx := paletteIndex(r.cfg.Fallback, sh)
		for y := drawTop; y < drawBottom; y++ {
			pix[y*r.w+c] = idx
		}
		return
	}

	texU := int(hit.U * TileSize)
	if texU >= TileSize {
		texU = TileSize - 1
	}

	// Interpolate v across the full span, which may extend past the screen.
	vStep := float64(TileSize) / float64(lineH)
	v := float64(drawTop-top) * vStep
	for y := drawTop; y < drawBottom; y++ {
		texV := int(v)
		if texV >= TileSize {
			texV = TileSize - 1
		}
		pix[y*r.w+c] = paletteIndex(tile.Texel(texU, texV), sh)
		v += vStep
	}
}
