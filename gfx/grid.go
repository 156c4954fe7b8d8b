package gfx

// GridModel is a logical 2D grid of addressable entries, walked by the
// compositor. At returns false for coordinates with no backing data,
// which lets grids be sparse (e.g. a partially filled last row).
type GridModel[T any] interface {
	Dimensions() (w, h int)
	At(x, y int) (T, bool)
}

const (
	// TilesPerRow is the width of a flat tile preview grid.
	TilesPerRow = 16
	// BlocksPerRow is the width of a flat block preview grid.
	BlocksPerRow = 32
)

// TileGrid lays out tiles 0..Len-1 in reading order, TilesPerRow per
// row, for previewing every tile addressable through a layout.
type TileGrid struct {
	Len     int
	Palette int
}

func (g TileGrid) Dimensions() (int, int) {
	return TilesPerRow, ceilDiv(g.Len, TilesPerRow)
}

func (g TileGrid) At(x, y int) (TilemapEntry, bool) {
	id := y*TilesPerRow + x
	if id >= g.Len {
		return 0, false
	}
	return TilemapEntryForTile(id).WithPalette(g.Palette), true
}

// BlockGrid lays out blocks 0..Len-1 in reading order, BlocksPerRow
// per row.
type BlockGrid struct {
	Len int
}

func (g BlockGrid) Dimensions() (int, int) {
	return BlocksPerRow, ceilDiv(g.Len, BlocksPerRow)
}

func (g BlockGrid) At(x, y int) (LevelDataEntry, bool) {
	id := y*BlocksPerRow + x
	if id >= g.Len {
		return 0, false
	}
	return LevelDataEntryForBlock(id), true
}

// SubtileGrid resolves a grid of 16x16 blocks down to their 8x8
// subtiles. A block flipped as a unit mirrors which subtile each
// position selects and XORs the block's flips into the subtile's own
// flip flags, so unflipped subtile data is reused.
type SubtileGrid struct {
	Blocks    GridModel[LevelDataEntry]
	Tiletable func(i int) (TiletableEntry, bool)
}

func (g SubtileGrid) Dimensions() (int, int) {
	w, h := g.Blocks.Dimensions()
	return w * 2, h * 2
}

func (g SubtileGrid) At(x, y int) (TilemapEntry, bool) {
	block, ok := g.Blocks.At(x/2, y/2)
	if !ok {
		return 0, false
	}
	subtiles, ok := g.Tiletable(block.BlockID())
	if !ok {
		return 0, false
	}

	sx, sy := x%2, y%2
	if block.HFlip() {
		sx ^= 1
	}
	if block.VFlip() {
		sy ^= 1
	}

	sub := subtiles[sy*2+sx]
	if block.HFlip() {
		sub ^= HFlipFlag
	}
	if block.VFlip() {
		sub ^= VFlipFlag
	}
	return sub, true
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
