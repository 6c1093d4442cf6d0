package hal

import "testing"

func TestPackedIndex4RoundTrip(t *testing.T) {
	row := make([]byte, 4)
	vals := []uint8{0x1, 0xF, 0x0, 0x7, 0xA, 0x3, 0xC, 0x5}
	for x, v := range vals {
		setPackedIndex4(row, x, v)
	}
	for x, v := range vals {
		if got := packedIndex4(row, x); got != v {
			t.Fatalf("packedIndex4(row, %d) = %#x, want %#x", x, got, v)
		}
	}
}

func TestPackedIndex4NibbleOrder(t *testing.T) {
	row := []byte{0x21}
	if got := packedIndex4(row, 0); got != 1 {
		t.Fatalf("packedIndex4(0x21, 0) = %d, want 1 (low nibble is the left pixel)", got)
	}
	if got := packedIndex4(row, 1); got != 2 {
		t.Fatalf("packedIndex4(0x21, 1) = %d, want 2", got)
	}
}

func TestSetPackedIndex4PreservesNeighbour(t *testing.T) {
	row := []byte{0xFF}
	setPackedIndex4(row, 0, 0x3)
	if row[0] != 0xF3 {
		t.Fatalf("row[0] = %#x, want 0xf3", row[0])
	}
	setPackedIndex4(row, 1, 0x8)
	if row[0] != 0x83 {
		t.Fatalf("row[0] = %#x, want 0x83", row[0])
	}
}

func TestRGB565(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint16
	}{
		{0x00, 0x00, 0x00, 0x0000},
		{0xFF, 0xFF, 0xFF, 0xFFFF},
		{0xFF, 0x00, 0x00, 0xF800},
		{0x00, 0xFF, 0x00, 0x07E0},
		{0x00, 0x00, 0xFF, 0x001F},
	}
	for _, tt := range tests {
		if got := rgb565(tt.r, tt.g, tt.b); got != tt.want {
			t.Fatalf("rgb565(%#x, %#x, %#x) = %#x, want %#x", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestDefaultPaletteRampsDarken(t *testing.T) {
	p := DefaultPalette()
	for hue := 0; hue < 4; hue++ {
		for shade := 1; shade < 4; shade++ {
			cur := p[hue*4+shade]
			prev := p[hue*4+shade-1]
			if int(cur.R)+int(cur.G)+int(cur.B) >= int(prev.R)+int(prev.G)+int(prev.B) {
				t.Fatalf("palette hue %d shade %d is not darker than shade %d", hue, shade, shade-1)
			}
		}
	}
}

func TestNullFramebufferClear(t *testing.T) {
	fb := NewNullFramebuffer(6, 2)
	fb.Clear(0x4)
	for i, b := range fb.Buffer() {
		if b != 0x44 {
			t.Fatalf("Buffer()[%d] = %#x after Clear(4), want 0x44", i, b)
		}
	}
	if got := fb.StrideBytes(); got != 3 {
		t.Fatalf("StrideBytes() = %d, want 3", got)
	}
}
