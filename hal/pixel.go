package hal

// packedIndex4 reads the palette index of pixel x in a packed 4bpp row.
func packedIndex4(row []byte, x int) uint8 {
	b := row[x>>1]
	if x&1 == 0 {
		return b & 0x0F
	}
	return b >> 4
}

// setPackedIndex4 writes the palette index of pixel x in a packed 4bpp row.
func setPackedIndex4(row []byte, x int, idx uint8) {
	idx &= 0x0F
	if x&1 == 0 {
		row[x>>1] = row[x>>1]&0xF0 | idx
	} else {
		row[x>>1] = row[x>>1]&0x0F | idx<<4
	}
}

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// DefaultPalette is the boot palette: 4 hues with 4 brightness levels each
// (index = hue*4 + shade, shade 0 brightest). Cartridges may replace it.
func DefaultPalette() [PaletteSize]RGB {
	bases := [4]RGB{
		{0xE0, 0xF8, 0xCF}, // bone
		{0xB8, 0x55, 0x3A}, // brick
		{0x4E, 0x7D, 0xA6}, // slate
		{0x6A, 0xA8, 0x4F}, // moss
	}
	var p [PaletteSize]RGB
	for hue, c := range bases {
		for shade := 0; shade < 4; shade++ {
			// Each step keeps 2/3 of the previous brightness.
			num, den := 1, 1
			for i := 0; i < shade; i++ {
				num *= 2
				den *= 3
			}
			p[hue*4+shade] = RGB{
				R: uint8(int(c.R) * num / den),
				G: uint8(int(c.G) * num / den),
				B: uint8(int(c.B) * num / den),
			}
		}
	}
	return p
}
