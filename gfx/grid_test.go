package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileGridPartialLastRow(t *testing.T) {
	g := TileGrid{Len: TilesPerRow + 3, Palette: 2}

	w, h := g.Dimensions()
	assert.Equal(t, TilesPerRow, w)
	assert.Equal(t, 2, h)

	e, ok := g.At(2, 1)
	require.True(t, ok)
	assert.Equal(t, TilesPerRow+2, e.TileID())
	assert.Equal(t, 2, e.Palette())

	_, ok = g.At(3, 1)
	assert.False(t, ok, "cells past Len have no backing data")
}

func TestBlockGrid(t *testing.T) {
	g := BlockGrid{Len: BlocksPerRow*2 + 1}

	w, h := g.Dimensions()
	assert.Equal(t, BlocksPerRow, w)
	assert.Equal(t, 3, h)

	e, ok := g.At(0, 2)
	require.True(t, ok)
	assert.Equal(t, BlocksPerRow*2, e.BlockID())

	_, ok = g.At(1, 2)
	assert.False(t, ok)
}

type singleBlockGrid struct {
	block LevelDataEntry
}

func (g singleBlockGrid) Dimensions() (int, int) { return 1, 1 }

func (g singleBlockGrid) At(x, y int) (LevelDataEntry, bool) {
	if x != 0 || y != 0 {
		return 0, false
	}
	return g.block, true
}

func TestSubtileGridHFlipSelection(t *testing.T) {
	// Distinct subtiles so selection is observable; top-left subtile
	// carries its own h-flip.
	block := TiletableEntry{
		TilemapEntryForTile(10) | HFlipFlag,
		TilemapEntryForTile(11),
		TilemapEntryForTile(12),
		TilemapEntryForTile(13),
	}

	g := SubtileGrid{
		Blocks: singleBlockGrid{block: LevelDataEntry(0).WithFlips(true, false)},
		Tiletable: func(i int) (TiletableEntry, bool) {
			if i != 0 {
				return TiletableEntry{}, false
			}
			return block, true
		},
	}

	w, h := g.Dimensions()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)

	// With the block h-flipped, position (1,0) selects the local
	// subtile at (0,0) and toggles its h-flip.
	e, ok := g.At(1, 0)
	require.True(t, ok)
	assert.Equal(t, 10, e.TileID())
	assert.False(t, e.HFlip(), "subtile's own h-flip XOR block h-flip")
	assert.False(t, e.VFlip())

	e, ok = g.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, 11, e.TileID())
	assert.True(t, e.HFlip())
}

func TestSubtileGridVFlip(t *testing.T) {
	block := TiletableEntry{
		TilemapEntryForTile(10),
		TilemapEntryForTile(11),
		TilemapEntryForTile(12),
		TilemapEntryForTile(13),
	}

	g := SubtileGrid{
		Blocks: singleBlockGrid{block: LevelDataEntry(0).WithFlips(false, true)},
		Tiletable: func(i int) (TiletableEntry, bool) { return block, true },
	}

	e, ok := g.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, 12, e.TileID(), "v-flip selects the bottom row")
	assert.True(t, e.VFlip())
}

func TestSubtileGridMissingBlock(t *testing.T) {
	g := SubtileGrid{
		Blocks:    singleBlockGrid{block: LevelDataEntryForBlock(5)},
		Tiletable: func(i int) (TiletableEntry, bool) { return TiletableEntry{}, false },
	}

	_, ok := g.At(0, 0)
	assert.False(t, ok, "unresolvable tiletable entries are sparse")
}
