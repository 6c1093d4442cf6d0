//go:build !tinygo

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"os"
	"strings"

	"warren/cart"
	"warren/engine/render"
	"warren/engine/world"
	"warren/hal"
)

func main() {
	var (
		mode  = flag.String("mode", "encode", "encode|decode.")
		level = flag.String("level", "", "Level text file (encode mode).")
		tiles = flag.String("tiles", "", "PNG tile sheet, 16x16 tiles (encode mode; empty = built-in tiles).")
		in    = flag.String("in", "", "Cartridge file (decode mode).")
		out   = flag.String("out", "", "Output file.")
	)
	flag.Parse()

	switch strings.ToLower(*mode) {
	case "encode":
		if *level == "" || *out == "" {
			fatalf("usage: mkcart -level level.txt [-tiles sheet.png] -out game.wct")
		}
		if err := encode(*level, *tiles, *out); err != nil {
			fatalf("encode: %v", err)
		}
	case "decode":
		if *in == "" {
			fatalf("usage: mkcart -mode decode -in game.wct [-out level.txt]")
		}
		if err := decode(*in, *out); err != nil {
			fatalf("decode: %v", err)
		}
	default:
		fatalf("unknown mode: %s", *mode)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// encode packs a text level plus an optional tile sheet into a cartridge.
//
// Level text: '#' = wall texture 1, '1'-'9' = wall with that texture,
// '.' or ' ' = floor, '>' '<' '^' 'v' = spawn (facing east/west/north/south),
// 'a'-'z' = sprite using tile id letter-'a'+1.
func encode(levelPath, tilesPath, outPath string) error {
	rows, err := readLevel(levelPath)
	if err != nil {
		return err
	}

	h := len(rows)
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	if w == 0 || h == 0 {
		return errors.New("empty level")
	}

	c := &cart.Cartridge{Palette: hal.DefaultPalette()}

	cells := make([]world.Cell, w*h)
	haveSpawn := false
	for y, row := range rows {
		for x, ch := range row {
			switch {
			case ch == '#':
				cells[y*w+x] = world.Wall(1)
			case ch >= '1' && ch <= '9':
				cells[y*w+x] = world.Wall(int(ch - '0'))
			case ch == '.' || ch == ' ':
			case ch == '>' || ch == '<' || ch == '^' || ch == 'v':
				if haveSpawn {
					return fmt.Errorf("duplicate spawn marker at %d,%d", x, y)
				}
				haveSpawn = true
				c.SpawnX = float64(x) + 0.5
				c.SpawnY = float64(y) + 0.5
				c.SpawnAngle = spawnAngle(ch)
			case ch >= 'a' && ch <= 'z':
				c.Sprites = append(c.Sprites, render.Sprite{
					ID:    len(c.Sprites) + 1,
					X:     float64(x) + 0.5,
					Y:     float64(y) + 0.5,
					Tex:   int(ch-'a') + 1,
					Alive: true,
				})
			default:
				return fmt.Errorf("unknown level char %q at %d,%d", ch, x, y)
			}
		}
	}
	if !haveSpawn {
		return errors.New("level has no spawn marker (one of > < ^ v)")
	}

	c.Grid, err = world.New(w, h, cells)
	if err != nil {
		return err
	}

	if tilesPath != "" {
		c.Atlas, err = readTiles(tilesPath)
		if err != nil {
			return err
		}
	} else {
		c.Atlas = cart.Builtin().Atlas
	}

	blob := c.Encode()
	// Re-decode so every structural rule is enforced before writing.
	if _, err := cart.Decode(blob); err != nil {
		return err
	}
	return os.WriteFile(outPath, blob, 0o644)
}

func spawnAngle(ch rune) float64 {
	switch ch {
	case '<':
		return math.Pi
	case '^':
		return -math.Pi / 2
	case 'v':
		return math.Pi / 2
	default: // '>'
		return 0
	}
}

func readLevel(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.HasPrefix(line, ";") {
			continue // comment
		}
		rows = append(rows, line)
	}
	return rows, sc.Err()
}

// readTiles quantises a PNG sheet of 16x16 tiles, read row-major, to 2-bit
// hues: transparent pixels become texel 0, everything else snaps to the
// nearest default-palette base hue.
func readTiles(path string) (*render.Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx()%render.TileSize != 0 || b.Dy()%render.TileSize != 0 {
		return nil, fmt.Errorf("%s: %dx%d is not a multiple of %d", path, b.Dx(), b.Dy(), render.TileSize)
	}

	pal := hal.DefaultPalette()
	var tiles []render.Tile
	for ty := b.Min.Y; ty < b.Max.Y; ty += render.TileSize {
		for tx := b.Min.X; tx < b.Max.X; tx += render.TileSize {
			var t render.Tile
			for v := 0; v < render.TileSize; v++ {
				for u := 0; u < render.TileSize; u++ {
					t.SetTexel(u, v, quantise(pal, img.At(tx+u, ty+v)))
				}
			}
			tiles = append(tiles, t)
		}
	}
	return render.NewAtlas(tiles), nil
}

func quantise(pal [hal.PaletteSize]hal.RGB, c color.Color) uint8 {
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return 0
	}
	best, bestDist := uint8(0), 1<<30
	for hue := 0; hue < 4; hue++ {
		p := pal[hue*4] // brightest shade of each hue
		dr := int(p.R) - int(r>>8)
		dg := int(p.G) - int(g>>8)
		db := int(p.B) - int(b>>8)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = uint8(hue)
		}
	}
	return best
}

// decode dumps a cartridge back to the text form for inspection.
func decode(inPath, outPath string) error {
	blob, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	c, err := cart.Decode(blob)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "; %dx%d map, %d tiles, %d sprites, spawn (%.2f, %.2f) angle %.3f\n",
		c.Grid.Width(), c.Grid.Height(), c.Atlas.Len(), len(c.Sprites),
		c.SpawnX, c.SpawnY, c.SpawnAngle)
	for y := 0; y < c.Grid.Height(); y++ {
		for x := 0; x < c.Grid.Width(); x++ {
			cell := c.Grid.Cell(x, y)
			switch {
			case !cell.IsWall():
				sb.WriteByte('.')
			case cell.Texture() <= 9:
				sb.WriteByte(byte('0' + cell.Texture()))
			default:
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}

	if outPath == "" {
		fmt.Print(sb.String())
		return nil
	}
	return os.WriteFile(outPath, []byte(sb.String()), 0o644)
}
