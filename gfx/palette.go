package gfx

import (
	"errors"
	"image/color"
)

const (
	// Line4bppLen is the number of colors addressed by a 4-bit pixel index.
	Line4bppLen = 16
	// Line2bppLen is the number of colors addressed by a 2-bit pixel index.
	Line2bppLen = 4
	// AddressablePalettes is the number of palette lines a tilemap entry
	// can select.
	AddressablePalettes = 8
)

// Palette is an ordered list of packed colors, conceptually grouped
// into lines of Line4bppLen entries.
type Palette []Color

// Line is one complete palette line of 16 colors.
type Line [Line4bppLen]Color

// PaletteLine is one palette line expanded to opaque 8-bit colors,
// ready for blitting.
type PaletteLine [Line4bppLen]color.NRGBA

// NRGBA expands the line for blitting.
func (l Line) NRGBA() PaletteLine {
	var out PaletteLine
	for i, c := range l {
		out[i] = c.NRGBA()
	}
	return out
}

// Lines splits the palette into complete 16-color lines. Entries
// beyond the last complete line are dropped; leftover is how many, so
// callers can report it.
func (p Palette) Lines() (lines []Line, leftover int) {
	n := len(p) / Line4bppLen
	lines = make([]Line, n)
	for i := range lines {
		copy(lines[i][:], p[i*Line4bppLen:])
	}
	return lines, len(p) - n*Line4bppLen
}

// ErrNonZeroTruncated is returned by TruncateChecked when truncation
// would drop a non-zero color.
var ErrNonZeroTruncated = errors.New("gfx: palette truncation drops non-zero entries")

// TruncateChecked returns the palette shortened to n entries. It fails
// if n exceeds the palette's length or if any removed entry is not the
// zero color; non-blank data is never silently dropped.
func (p Palette) TruncateChecked(n int) (Palette, error) {
	if n > len(p) {
		return nil, ErrNonZeroTruncated
	}
	for _, c := range p[n:] {
		if c != 0 {
			return nil, ErrNonZeroTruncated
		}
	}
	return p[:n], nil
}
