// Package raycast marches view rays through the level grid, one per screen
// column, producing the per-frame wall depth buffer.
package raycast

import (
	"errors"
	"fmt"
	"math"

	"warren/engine/world"
)

// MaxDist is the sentinel distance reported when a ray runs out of range
// or steps. Always finite; depth comparisons rely on that.
const MaxDist = 64.0

// Face identifies which cardinal side of a wall cell a ray struck.
type Face uint8

const (
	FaceNorth Face = iota // crossing a horizontal grid line, stepping +y
	FaceSouth             // crossing a horizontal grid line, stepping -y
	FaceWest              // crossing a vertical grid line, stepping +x
	FaceEast              // crossing a vertical grid line, stepping -x
)

// Vertical reports whether the face lies on a vertical grid line. Those
// faces render one shade darker so adjoining walls read as separate planes.
func (f Face) Vertical() bool { return f == FaceWest || f == FaceEast }

var ErrBadFOV = errors.New("raycast: degenerate field of view")

// Camera is the viewpoint: continuous position, facing angle in radians,
// and horizontal field of view. Mutated only by the simulation phase.
type Camera struct {
	X, Y  float64
	Angle float64
	FOV   float64
}

// NewCamera validates the field of view at configuration time so the render
// path never has to deal with a degenerate frustum.
func NewCamera(x, y, angle, fov float64) (Camera, error) {
	if fov <= 0 || fov >= math.Pi {
		return Camera{}, fmt.Errorf("%w: %v rad", ErrBadFOV, fov)
	}
	return Camera{X: x, Y: y, Angle: angle, FOV: fov}, nil
}

// Hit is the result of marching one column's ray.
type Hit struct {
	Dist  float64 // perpendicular distance to the wall (fisheye-corrected)
	Tex   int     // wall texture id; 0 on the max-distance sentinel
	Face  Face
	U     float64 // fractional wall coordinate in [0,1)
	Steps int     // grid boundary crossings taken
}

// Sentinel reports whether the ray exhausted its range without a wall.
func (h Hit) Sentinel() bool { return h.Tex == 0 }

// Cast marches one ray per entry of dst. Column c gets the ray at angle
// cam.Angle + (c/len(dst) - 0.5)*cam.FOV. Pure function of its inputs:
// no state survives between calls.
func Cast(g *world.Grid, cam Camera, dst []Hit) {
	n := len(dst)
	if n == 0 {
		return
	}
	maxSteps := 2 * (g.Width() + g.Height())
	for c := 0; c < n; c++ {
		rel := (float64(c)/float64(n) - 0.5) * cam.FOV
		dst[c] = march(g, cam, rel, maxSteps)
	}
}

// march runs the DDA for a single ray at angle cam.Angle+rel.
func march(g *world.Grid, cam Camera, rel float64, maxSteps int) Hit {
	ang := cam.Angle + rel
	dirX := math.Cos(ang)
	dirY := math.Sin(ang)

	mapX := int(math.Floor(cam.X))
	mapY := int(math.Floor(cam.Y))

	// Distance along the ray between successive grid lines of each axis.
	deltaX := math.Inf(1)
	if dirX != 0 {
		deltaX = math.Abs(1 / dirX)
	}
	deltaY := math.Inf(1)
	if dirY != 0 {
		deltaY = math.Abs(1 / dirY)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if dirX < 0 {
		stepX = -1
		sideX = (cam.X - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - cam.X) * deltaX
	}
	if dirY < 0 {
		stepY = -1
		sideY = (cam.Y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - cam.Y) * deltaY
	}

	for steps := 1; steps <= maxSteps; steps++ {
		// Step across whichever grid line is nearer.
		var dist float64
		var face Face
		if sideX < sideY {
			dist = sideX
			sideX += deltaX
			mapX += stepX
			if stepX > 0 {
				face = FaceWest
			} else {
				face = FaceEast
			}
		} else {
			dist = sideY
			sideY += deltaY
			mapY += stepY
			if stepY > 0 {
				face = FaceNorth
			} else {
				face = FaceSouth
			}
		}

		if dist > MaxDist {
			return Hit{Dist: MaxDist, Steps: steps}
		}

		cell := g.Cell(mapX, mapY)
		if !cell.IsWall() {
			continue
		}

		// Project the marched distance onto the camera's forward axis;
		// at the screen center rel is zero and the two are equal.
		perp := dist * math.Cos(rel)

		var wallX float64
		if face.Vertical() {
			wallX = cam.Y + dist*dirY
		} else {
			wallX = cam.X + dist*dirX
		}
		u := wallX - math.Floor(wallX)
		// Mirror so textures read left-to-right on every face.
		if face.Vertical() && dirX > 0 {
			u = 1 - u
		}
		if !face.Vertical() && dirY < 0 {
			u = 1 - u
		}
		if u >= 1 {
			u = 0
		}

		return Hit{Dist: perp, Tex: cell.Texture(), Face: face, U: u, Steps: steps}
	}

	return Hit{Dist: MaxDist, Steps: maxSteps}
}
