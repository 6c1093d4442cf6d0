package world

import (
	"errors"
	"testing"
)

func mustGrid(t *testing.T, rows []string) *Grid {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	cells := make([]Cell, w*h)
	for y, row := range rows {
		for x := range row {
			if row[x] == '#' {
				cells[y*w+x] = Wall(1)
			}
		}
	}
	g, err := New(w, h, cells)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", w, h, err)
	}
	return g
}

func TestNewRejectsBadDimensions(t *testing.T) {
	cases := []struct {
		name  string
		w, h  int
		cells int
	}{
		{"zero width", 0, 4, 0},
		{"zero height", 4, 0, 0},
		{"negative", -1, 4, 4},
		{"short data", 4, 4, 15},
		{"long data", 4, 4, 17},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.w, tc.h, make([]Cell, tc.cells))
			if !errors.Is(err, ErrBadGrid) {
				t.Fatalf("New(%d, %d) error = %v, want ErrBadGrid", tc.w, tc.h, err)
			}
		})
	}
}

func TestCellTotalOverAllInts(t *testing.T) {
	g := mustGrid(t, []string{
		"###",
		"#.#",
		"###",
	})

	if c := g.Cell(1, 1); c.IsWall() {
		t.Fatalf("Cell(1, 1).IsWall() = true, want false")
	}
	for _, p := range [][2]int{{-1, 1}, {3, 1}, {1, -1}, {1, 3}, {-1000, -1000}, {1 << 20, 0}} {
		if c := g.Cell(p[0], p[1]); !c.IsWall() {
			t.Fatalf("Cell(%d, %d).IsWall() = false, want true (out of range)", p[0], p[1])
		}
	}
}

func TestBlocked(t *testing.T) {
	g := mustGrid(t, []string{
		"###",
		"#.#",
		"###",
	})

	if g.Blocked(1.5, 1.5) {
		t.Fatalf("Blocked(1.5, 1.5) = true, want false")
	}
	if !g.Blocked(0.5, 1.5) {
		t.Fatalf("Blocked(0.5, 1.5) = false, want true")
	}
	if !g.Blocked(-0.1, 1.5) {
		t.Fatalf("Blocked(-0.1, 1.5) = false, want true (negative coords round outward)")
	}
}

func TestBordered(t *testing.T) {
	closed := mustGrid(t, []string{
		"####",
		"#..#",
		"####",
	})
	if !closed.Bordered() {
		t.Fatalf("Bordered() = false, want true")
	}

	open := mustGrid(t, []string{
		"####",
		"#...",
		"####",
	})
	if open.Bordered() {
		t.Fatalf("Bordered() = true, want false (open east edge)")
	}
}

func TestWallClamps(t *testing.T) {
	if got := Wall(0).Texture(); got != 1 {
		t.Fatalf("Wall(0).Texture() = %d, want 1", got)
	}
	if got := Wall(300).Texture(); got != 255 {
		t.Fatalf("Wall(300).Texture() = %d, want 255", got)
	}
}
