/*
Package gfx implements the SNES 4bpp planar graphics format used by
tileset exports.

Graphics are stored as 8 by 8 pixel tiles of 32 bytes each. A tile is
split into four 1-bit planes: the first 16 bytes interleave one row byte
of plane 0 and plane 1 for each of the 8 rows, the last 16 bytes do the
same for planes 2 and 3. The four bits at the same position across
planes form a 4-bit index into one line of 16 colors. Colors are packed
15-bit BGR values, five bits per channel.

Tilemaps reference tiles through packed 16-bit entries carrying a tile
id, a palette line, and flip flags. Four such entries form a 16x16
block, and level data references blocks through a second packed entry
with its own flips.
*/
package gfx

const (
	// TileSize is the width and height of a tile in pixels.
	TileSize = 8
	// TileBytes is the storage size of one 4bpp planar tile.
	TileBytes = 32
)
