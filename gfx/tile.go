package gfx

import "image"

// Tile is one 8x8 tile in 4bpp planar form, immutable once built from
// bytes. See the package documentation for the plane layout.
type Tile [TileBytes]byte

// TilesFromBytes reinterprets raw graphics data as tiles. Data beyond
// the last whole tile is ignored; leftover is the number of trailing
// bytes dropped, so callers can report or reject it.
func TilesFromBytes(data []byte) (tiles []Tile, leftover int) {
	n := len(data) / TileBytes
	tiles = make([]Tile, n)
	for i := range tiles {
		copy(tiles[i][:], data[i*TileBytes:])
	}
	return tiles, len(data) - n*TileBytes
}

// spread4 spaces the 8 bits of x four positions apart, moving bit k to
// bit 4k.
func spread4(x uint8) uint32 {
	v := uint32(x)
	v = (v | v<<12) & 0x000f000f
	v = (v | v<<6) & 0x03030303
	v = (v | v<<3) & 0x11111111
	return v
}

// Row decodes row y into a word of eight 4-bit pixel indices, with the
// leftmost pixel in the most significant nibble.
func (t *Tile) Row(y int) uint32 {
	p01 := t[y*2 : y*2+2]
	p23 := t[TileSize*2+y*2 : TileSize*2+y*2+2]
	return spread4(p01[0]) | spread4(p01[1])<<1 | spread4(p23[0])<<2 | spread4(p23[1])<<3
}

// PixelIndices decodes the whole tile into a grid of 4-bit color
// indices with the requested flips applied, indexed [y][x].
func (t *Tile) PixelIndices(hFlip, vFlip bool) [TileSize][TileSize]uint8 {
	var out [TileSize][TileSize]uint8
	for y := 0; y < TileSize; y++ {
		sy := y
		if vFlip {
			sy = TileSize - 1 - y
		}
		row := t.Row(sy)
		for x := 0; x < TileSize; x++ {
			if hFlip {
				out[y][x] = uint8(row & 0xf)
				row >>= 4
			} else {
				out[y][x] = uint8(row >> 28)
				row <<= 4
			}
		}
	}
	return out
}

// Draw blits the tile into img with its top-left corner at (x, y),
// coloring pixels through line. When transparent is set, index 0
// pixels leave the destination untouched. Pixels falling outside img
// are clipped by the caller arranging bounds; Draw assumes the full
// 8x8 area is in range.
func (t *Tile) Draw(img *image.NRGBA, x, y int, line *PaletteLine, hFlip, vFlip, transparent bool) {
	t.blit(img.Pix[img.PixOffset(x, y):], img.Stride, line, hFlip, vFlip, transparent)
}

// blit writes the tile's pixels into dst, an NRGBA pixel buffer whose
// rows are stride bytes apart. The 8 output rows are not contiguous;
// they land wherever stride puts them, which lets a whole sheet be
// filled in one pass without per-tile buffers.
func (t *Tile) blit(dst []byte, stride int, line *PaletteLine, hFlip, vFlip, transparent bool) {
	for y := 0; y < TileSize; y++ {
		sy := y
		if vFlip {
			sy = TileSize - 1 - y
		}
		row := t.Row(sy)
		out := dst[y*stride : y*stride+TileSize*4]
		for x := 0; x < TileSize; x++ {
			var idx uint32
			if hFlip {
				idx = row & 0xf
				row >>= 4
			} else {
				idx = row >> 28
				row <<= 4
			}
			if transparent && idx == 0 {
				continue
			}
			c := line[idx]
			o := x * 4
			out[o+0] = c.R
			out[o+1] = c.G
			out[o+2] = c.B
			out[o+3] = c.A
		}
	}
}
