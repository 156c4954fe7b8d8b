package gfx

// TilemapEntry is a packed 16-bit tile reference as stored in
// tiletables and tilemaps:
//
//	bits 0-9   tile id
//	bits 10-12 palette line
//	bit 13     priority (unused when decoding)
//	bit 14     horizontal flip
//	bit 15     vertical flip
type TilemapEntry uint16

const (
	// HFlipFlag is the horizontal flip bit of a TilemapEntry.
	HFlipFlag TilemapEntry = 1 << 14
	// VFlipFlag is the vertical flip bit of a TilemapEntry.
	VFlipFlag TilemapEntry = 1 << 15
)

// TileID returns the referenced tile index.
func (e TilemapEntry) TileID() int { return int(e & 0x3ff) }

// Palette returns the palette line index.
func (e TilemapEntry) Palette() int { return int(e >> 10 & 0x7) }

// Priority returns the layering priority flag.
func (e TilemapEntry) Priority() bool { return e&(1<<13) != 0 }

// HFlip returns the horizontal flip flag.
func (e TilemapEntry) HFlip() bool { return e&HFlipFlag != 0 }

// VFlip returns the vertical flip flag.
func (e TilemapEntry) VFlip() bool { return e&VFlipFlag != 0 }

// TilemapEntryForTile builds an entry referencing tile id. Ids above
// the 10-bit range are truncated, not saturated.
func TilemapEntryForTile(id int) TilemapEntry {
	return TilemapEntry(id & (1<<10 - 1))
}

// WithPalette returns the entry with its palette line replaced.
func (e TilemapEntry) WithPalette(pal int) TilemapEntry {
	return e&^(0x7<<10) | TilemapEntry(pal&0x7)<<10
}

// TiletableEntry is one 16x16 block: four subtile references in
// row-major order (top-left, top-right, bottom-left, bottom-right).
type TiletableEntry [4]TilemapEntry

// LevelDataEntry is a packed 16-bit block reference from level data,
// carrying its own flip flags:
//
//	bits 0-9 block id
//	bit 11   horizontal flip
//	bit 12   vertical flip
type LevelDataEntry uint16

// BlockID returns the referenced tiletable index.
func (e LevelDataEntry) BlockID() int { return int(e & 0x3ff) }

// HFlip returns the horizontal flip flag.
func (e LevelDataEntry) HFlip() bool { return e&(1<<11) != 0 }

// VFlip returns the vertical flip flag.
func (e LevelDataEntry) VFlip() bool { return e&(1<<12) != 0 }

// LevelDataEntryForBlock builds an entry referencing block id. Ids
// above the 10-bit range are truncated, not saturated.
func LevelDataEntryForBlock(id int) LevelDataEntry {
	return LevelDataEntry(id & (1<<10 - 1))
}

// WithFlips returns the entry with both flip flags replaced.
func (e LevelDataEntry) WithFlips(h, v bool) LevelDataEntry {
	e &^= 1<<11 | 1<<12
	if h {
		e |= 1 << 11
	}
	if v {
		e |= 1 << 12
	}
	return e
}
