package smded

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/yuriks/smded/gfx"
	"github.com/yuriks/smded/texcache"
	"github.com/yuriks/smded/vram"
)

// cacheKey canonically encodes everything a render depends on: the
// base, size and source ref of every overlay entry, in order, plus the
// selection parameters. Two renders share a cache slot only when every
// component matches.
type cacheKey string

func writeLayoutKey(sb *strings.Builder, l vram.Layout[TilesetRef]) {
	for _, e := range l {
		fmt.Fprintf(sb, "-%#x+%#x[%d]", e.Base, e.Size, e.Source)
	}
}

func gfxSheetKey(l vram.Layout[TilesetRef], palSource TilesetRef, palLine uint8) cacheKey {
	var sb strings.Builder
	sb.WriteString("gfx")
	writeLayoutKey(&sb, l)
	fmt.Fprintf(&sb, "-pal%X[%d]", palLine, palSource)
	return cacheKey(sb.String())
}

func ttbSheetKey(gfxL, ttbL vram.Layout[TilesetRef]) cacheKey {
	var sb strings.Builder
	sb.WriteString("ttb")
	writeLayoutKey(&sb, gfxL)
	sb.WriteString("|")
	writeLayoutKey(&sb, ttbL)
	return cacheKey(sb.String())
}

func refs(l vram.Layout[*Tileset]) vram.Layout[TilesetRef] {
	return vram.Map(l, (*Tileset).Ref)
}

// Renderer composites tile and block sheets, memoizing results between
// draw cycles. It owns its cache outright; create one per rendering
// context, call Maintain once per draw cycle, and keep all access on
// one goroutine.
type Renderer struct {
	cache  *texcache.Cache[cacheKey, *image.NRGBA]
	logger *log.Logger
}

// NewRenderer returns a renderer with an empty cache. logger receives
// diagnostic warnings and may be nil.
func NewRenderer(logger *log.Logger) *Renderer {
	return &Renderer{
		cache:  texcache.New[cacheKey, *image.NRGBA](),
		logger: logger,
	}
}

// Maintain ages the render cache by one draw cycle.
func (r *Renderer) Maintain() {
	r.cache.Maintain()
}

// CacheLen returns the number of memoized renders.
func (r *Renderer) CacheLen() int {
	return r.cache.Len()
}

func (r *Renderer) paletteLines(p gfx.Palette) []gfx.Line {
	lines, leftover := p.Lines()
	if leftover != 0 && r.logger != nil {
		r.logger.Printf("palette contains %d leftover entries", leftover)
	}
	return lines
}

// RenderGfx composites every tile addressable through gfxLayout into a
// sheet 16 tiles wide, colored with a single palette line. Tiles with
// no backing data stay transparent.
func (r *Renderer) RenderGfx(gfxLayout vram.Layout[*Tileset], palLine uint8) *image.NRGBA {
	palTileset := FindPalette(gfxLayout)
	palSource := NoTileset
	if palTileset != nil {
		palSource = palTileset.Ref()
	}

	key := gfxSheetKey(refs(gfxLayout), palSource, palLine)
	return r.cache.GetOrCompute(key, func() *image.NRGBA {
		var palettes [gfx.AddressablePalettes]gfx.PaletteLine
		if palTileset != nil {
			lines := r.paletteLines(palTileset.Palette)
			if int(palLine) < len(lines) {
				palettes[0] = lines[palLine].NRGBA()
			}
		}

		_, end, _ := gfxLayout.ValidRange()
		return gfx.Compose(
			gfx.TileGrid{Len: end, Palette: 0},
			gfxTileSource(gfxLayout),
			&palettes,
		)
	})
}

// RenderTiletable composites every block addressable through ttbLayout
// into a sheet 32 blocks wide, with all palette lines available.
func (r *Renderer) RenderTiletable(gfxLayout, ttbLayout vram.Layout[*Tileset]) *image.NRGBA {
	key := ttbSheetKey(refs(gfxLayout), refs(ttbLayout))
	return r.cache.GetOrCompute(key, func() *image.NRGBA {
		_, end, _ := ttbLayout.ValidRange()
		return r.composeBlocks(gfx.BlockGrid{Len: end}, gfxLayout, ttbLayout)
	})
}

// RenderLevel composites an arbitrary grid of level data entries, such
// as a room's block map, through the same overlay resolution as the
// block sheet. Level renders are not memoized: their grids are not
// part of the overlay topology.
func (r *Renderer) RenderLevel(blocks gfx.GridModel[gfx.LevelDataEntry], gfxLayout, ttbLayout vram.Layout[*Tileset]) *image.NRGBA {
	return r.composeBlocks(blocks, gfxLayout, ttbLayout)
}

func (r *Renderer) composeBlocks(blocks gfx.GridModel[gfx.LevelDataEntry], gfxLayout, ttbLayout vram.Layout[*Tileset]) *image.NRGBA {
	var palettes [gfx.AddressablePalettes]gfx.PaletteLine
	if t := FindPalette(ttbLayout); t != nil {
		lines := r.paletteLines(t.Palette)
		for i := 0; i < len(lines) && i < gfx.AddressablePalettes; i++ {
			palettes[i] = lines[i].NRGBA()
		}
	}

	return gfx.Compose(
		gfx.SubtileGrid{Blocks: blocks, Tiletable: ttbSource(ttbLayout)},
		gfxTileSource(gfxLayout),
		&palettes,
	)
}
