package smded

import (
	"github.com/yuriks/smded/gfx"
	"github.com/yuriks/smded/vram"
)

// Conventional VRAM placement constants, counted in tiles for graphics
// and in blocks for tiletables.
const (
	commonGfxBase = 0x280
	areaTtbBase   = 0x100

	// A tiletable with more than 0x300 entries would overflow the
	// conventional buffer, so it's a good guess that the tileset
	// expects the extended loading scheme.
	extendedTtbThreshold = 0x300
)

// DetectLayouts builds the graphics and tiletable overlay layouts for
// an area tileset, optionally stacked with a common tileset.
//
// Common graphics sit at a fixed high base while the area tileset
// starts at zero; the area entry is appended last so it wins wherever
// the two overlap. For the tiletable, an area table past the extended
// threshold is placed at base zero with the common table omitted
// entirely; otherwise the common table sits at zero and the area table
// at its conventional base. Downstream address math depends on these
// placements bit-for-bit.
func DetectLayouts(area, common *Tileset) (gfxLayout, ttbLayout vram.Layout[*Tileset]) {
	extended := len(area.Tiletable) > extendedTtbThreshold

	if common != nil {
		gfxLayout = append(gfxLayout, vram.Entry[*Tileset]{
			Base:   commonGfxBase,
			Size:   len(common.Gfx),
			Source: common,
		})
	}
	gfxLayout = append(gfxLayout, vram.Entry[*Tileset]{
		Base:   0,
		Size:   len(area.Gfx),
		Source: area,
	})

	if common != nil && !extended {
		ttbLayout = append(ttbLayout, vram.Entry[*Tileset]{
			Base:   0,
			Size:   len(common.Tiletable),
			Source: common,
		})
	}
	base := areaTtbBase
	if extended {
		base = 0
	}
	ttbLayout = append(ttbLayout, vram.Entry[*Tileset]{
		Base:   base,
		Size:   len(area.Tiletable),
		Source: area,
	})

	return gfxLayout, ttbLayout
}

// FindPalette returns the last layout source with a non-empty palette,
// matching lookup priority, or nil.
func FindPalette(l vram.Layout[*Tileset]) *Tileset {
	for i := len(l) - 1; i >= 0; i-- {
		if len(l[i].Source.Palette) > 0 {
			return l[i].Source
		}
	}
	return nil
}

// gfxTileSource resolves flat tile ids through the overlay layout.
// Unmapped or out-of-range ids report false so the compositor leaves
// those pixels transparent.
func gfxTileSource(l vram.Layout[*Tileset]) func(int) (*gfx.Tile, bool) {
	return func(id int) (*gfx.Tile, bool) {
		t, off, ok := l.Lookup(id)
		if !ok || off >= len(t.Gfx) {
			return nil, false
		}
		return &t.Gfx[off], true
	}
}

// ttbSource resolves flat block ids through the overlay layout.
func ttbSource(l vram.Layout[*Tileset]) func(int) (gfx.TiletableEntry, bool) {
	return func(id int) (gfx.TiletableEntry, bool) {
		t, off, ok := l.Lookup(id)
		if !ok || off >= len(t.Tiletable) {
			return gfx.TiletableEntry{}, false
		}
		return t.Tiletable[off], true
	}
}
