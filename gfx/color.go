package gfx

import "image/color"

// Color is a packed 15-bit BGR color, five bits per channel with red in
// the low bits. Bit 15 is unused.
type Color uint16

// RGB5 returns the raw channel values in the range 0-31.
func (c Color) RGB5() (r, g, b uint8) {
	return uint8(c & 0x1f), uint8(c >> 5 & 0x1f), uint8(c >> 10 & 0x1f)
}

// RGB8 returns the color expanded to 8 bits per channel. The expansion
// rounds to nearest, so 0 maps to 0 and 31 maps to 255 exactly.
func (c Color) RGB8() (r, g, b uint8) {
	r5, g5, b5 := c.RGB5()
	return expand5(r5), expand5(g5), expand5(b5)
}

func expand5(c uint8) uint8 {
	return uint8((uint16(c)*0xff + 0x1f/2) / 0x1f)
}

// NRGBA returns the color as a fully opaque stdlib color.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.RGB8()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// ColorFromRGB8 packs 8-bit channels down to five bits each. The low
// three bits of every channel are discarded; exact reports whether they
// were all zero, so callers can warn about lost precision.
func ColorFromRGB8(r, g, b uint8) (c Color, exact bool) {
	exact = (r|g|b)&0b111 == 0
	c = Color(r>>3) | Color(g>>3)<<5 | Color(b>>3)<<10
	return c, exact
}
