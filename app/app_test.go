package app

import (
	"image/color"
	"reflect"
	"testing"

	"warren/cart"
	"warren/hal"
)

type stubHAL struct {
	fb hal.Framebuffer
}

func newStubHAL() *stubHAL {
	return &stubHAL{fb: hal.NewNullFramebuffer(hal.ScreenWidth, hal.ScreenHeight)}
}

func (h *stubHAL) Logger() hal.Logger           { return nil }
func (h *stubHAL) Display() hal.Display         { return h }
func (h *stubHAL) Input() hal.Input             { return h }
func (h *stubHAL) Time() hal.Time               { return nil }
func (h *stubHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *stubHAL) Gamepad() hal.Gamepad         { return stubPad{} }

type stubPad struct{}

func (stubPad) Buttons() hal.Buttons { return 0 }

func TestNewBootsBuiltin(t *testing.T) {
	step := New(newStubHAL(), Config{})
	for i := 0; i < 3; i++ {
		if err := step(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}
}

func TestNewValidBlob(t *testing.T) {
	blob := cart.Builtin().Encode()
	step := New(newStubHAL(), Config{Carts: [][]byte{blob}})
	if err := step(); err != nil {
		t.Fatalf("step error = %v", err)
	}
}

func TestNewBadBlobShowsFault(t *testing.T) {
	h := newStubHAL()
	step := New(h, Config{Carts: [][]byte{[]byte("not a cartridge")}})

	// The fault step must not error; it paints the message instead.
	if err := step(); err != nil {
		t.Fatalf("fault step error = %v", err)
	}

	// The buffer is no longer uniformly the clear fill: some text drew.
	buf := h.fb.Buffer()
	uniform := true
	for _, b := range buf {
		if b != buf[0] {
			uniform = false
			break
		}
	}
	if uniform {
		t.Fatalf("fault screen drew nothing")
	}

	if err := step(); err != nil {
		t.Fatalf("idle fault step error = %v", err)
	}
}

func TestNearestIndex(t *testing.T) {
	pal := hal.DefaultPalette()
	for i, p := range pal {
		c := color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xFF}
		got := nearestIndex(pal, c)
		if pal[got] != p {
			t.Fatalf("nearestIndex(palette[%d]) = %d with different colour", i, got)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		s    string
		cols int
		want []string
	}{
		{"", 10, nil},
		{"short", 10, []string{"short"}},
		{"one two three", 7, []string{"one two", "three"}},
		{"overlongword", 4, []string{"overlongword"}},
		{"a b c", 1, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		got := wrapText(tt.s, tt.cols)
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("wrapText(%q, %d) = %q, want %q", tt.s, tt.cols, got, tt.want)
		}
	}
}
