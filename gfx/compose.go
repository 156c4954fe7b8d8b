package gfx

import "image"

// Compose renders every cell of grid into a single image. The output
// is grid width by height in tiles, scaled by TileSize, and starts
// fully transparent. Cells without backing data, and entries whose
// tile id getTile cannot supply, are skipped and stay transparent;
// composition never fails.
func Compose(grid GridModel[TilemapEntry], getTile func(id int) (*Tile, bool), palettes *[AddressablePalettes]PaletteLine) *image.NRGBA {
	gw, gh := grid.Dimensions()
	img := image.NewNRGBA(image.Rect(0, 0, gw*TileSize, gh*TileSize))

	for ty := 0; ty < gh; ty++ {
		for tx := 0; tx < gw; tx++ {
			e, ok := grid.At(tx, ty)
			if !ok {
				continue
			}
			tile, ok := getTile(e.TileID())
			if !ok {
				continue
			}
			tile.Draw(img, tx*TileSize, ty*TileSize, &palettes[e.Palette()], e.HFlip(), e.VFlip(), false)
		}
	}

	return img
}
