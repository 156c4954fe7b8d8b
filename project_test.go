package smded

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuriks/smded/gfx"
)

// writeProject lays out a minimal SMART project on disk. files maps
// paths relative to the tileset directory, e.g.
// "Export/Tileset/SCE/00/8x8tiles.gfx".
func writeProject(t *testing.T, files map[string][]byte) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.xml"), []byte("<Project/>"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Export"), 0o755))

	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	return dir
}

func minimalTilesetFiles() map[string][]byte {
	return map[string][]byte{
		"Export/Tileset/SCE/00/8x8tiles.gfx":   make([]byte, gfx.TileBytes),
		"Export/Tileset/SCE/00/16x16tiles.ttb": make([]byte, 8),
		"Export/Tileset/SCE/00/palette.tpl":    []byte("TPL\x02\x1f\x00"),
	}
}

func TestValidateProjectDir(t *testing.T) {
	dir := writeProject(t, nil)
	assert.NoError(t, ValidateProjectDir(dir))

	assert.Error(t, ValidateProjectDir(filepath.Join(dir, "nope")))

	empty := t.TempDir()
	assert.Error(t, ValidateProjectDir(empty), "missing project.xml")
}

func TestLoadProjectMinimal(t *testing.T) {
	dir := writeProject(t, minimalTilesetFiles())

	reg, err := LoadProject(dir, nil)
	require.NoError(t, err)

	all := reg.All()
	require.Len(t, all, 1)
	ts := all[0]
	assert.Equal(t, KindArea, ts.Kind())
	assert.Equal(t, 0, ts.Index())
	assert.Equal(t, "Unnamed Tileset", ts.Name)
	assert.Len(t, ts.Gfx, 1)
	assert.Len(t, ts.Tiletable, 1)
	require.Len(t, ts.Palette, 1)
	assert.Equal(t, gfx.Color(0x1f), ts.Palette[0])
}

func TestLoadProjectMetadataName(t *testing.T) {
	files := minimalTilesetFiles()
	files["Data/Tileset/SCE/00.xml"] = []byte("<Tileset><Name>Crateria</Name></Tileset>")
	dir := writeProject(t, files)

	reg, err := LoadProject(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "Crateria", reg.All()[0].Name)
}

func TestLoadProjectBothKinds(t *testing.T) {
	files := minimalTilesetFiles()
	files["Export/Tileset/CRE/00/8x8tiles.gfx"] = make([]byte, gfx.TileBytes*2)
	files["Export/Tileset/CRE/00/16x16tiles.ttb"] = make([]byte, 16)
	dir := writeProject(t, files)

	reg, err := LoadProject(dir, nil)
	require.NoError(t, err)

	common := reg.DefaultCommon()
	require.NotNil(t, common)
	assert.Len(t, common.Gfx, 2)
	assert.Empty(t, common.Palette, "common tilesets have no palette file")
	require.Len(t, reg.ByKind(KindArea), 1)
}

func TestLoadProjectBadGfxLength(t *testing.T) {
	files := minimalTilesetFiles()
	files["Export/Tileset/SCE/00/8x8tiles.gfx"] = make([]byte, gfx.TileBytes+1)
	dir := writeProject(t, files)

	_, err := LoadProject(dir, nil)
	assert.ErrorContains(t, err, "not evenly divisible")
}

func TestLoadProjectBadTiletableLength(t *testing.T) {
	files := minimalTilesetFiles()
	files["Export/Tileset/SCE/00/16x16tiles.ttb"] = make([]byte, 7)
	dir := writeProject(t, files)

	_, err := LoadProject(dir, nil)
	assert.ErrorContains(t, err, "truncated trailing entry")
}

func TestLoadProjectBadTPL(t *testing.T) {
	files := minimalTilesetFiles()
	files["Export/Tileset/SCE/00/palette.tpl"] = []byte("NOP\x00ab")
	dir := writeProject(t, files)

	_, err := LoadProject(dir, nil)
	assert.ErrorContains(t, err, "wrong magic")
}

func TestLoadProjectOverlongPalette(t *testing.T) {
	// 129 non-zero colors cannot be truncated to the 8 addressable
	// lines.
	pal := []byte("TPL\x02")
	for i := 0; i < gfx.Line4bppLen*gfx.AddressablePalettes+1; i++ {
		pal = append(pal, 0x01, 0x00)
	}
	files := minimalTilesetFiles()
	files["Export/Tileset/SCE/00/palette.tpl"] = pal
	dir := writeProject(t, files)

	_, err := LoadProject(dir, nil)
	assert.ErrorContains(t, err, "too many")

	// With blank spill-over the truncation is legal.
	pal = append(pal[:len(pal)-2], 0x00, 0x00)
	files["Export/Tileset/SCE/00/palette.tpl"] = pal
	dir = writeProject(t, files)

	reg, err := LoadProject(dir, nil)
	require.NoError(t, err)
	assert.Len(t, reg.All()[0].Palette, gfx.Line4bppLen*gfx.AddressablePalettes)
}

func TestLoadProjectRGBPaletteWarns(t *testing.T) {
	files := minimalTilesetFiles()
	delete(files, "Export/Tileset/SCE/00/palette.tpl")
	files["Export/Tileset/SCE/00/palette.pal"] = []byte{0xf9, 0x00, 0x00} // low bits set
	dir := writeProject(t, files)

	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	reg, err := LoadProject(dir, logger)
	require.NoError(t, err)

	require.Len(t, reg.All()[0].Palette, 1)
	r, _, _ := reg.All()[0].Palette[0].RGB5()
	assert.Equal(t, uint8(31), r)
	assert.Contains(t, buf.String(), "excessive color precision")
}

func TestLoadProjectGzippedGfx(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(make([]byte, gfx.TileBytes*3))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	files := minimalTilesetFiles()
	files["Export/Tileset/SCE/00/8x8tiles.gfx"] = buf.Bytes()
	dir := writeProject(t, files)

	reg, err := LoadProject(dir, nil)
	require.NoError(t, err)
	assert.Len(t, reg.All()[0].Gfx, 3)
}

func TestLoadProjectIgnoresNonHexDirs(t *testing.T) {
	files := minimalTilesetFiles()
	files["Export/Tileset/SCE/notatileset/junk.txt"] = []byte("x")
	dir := writeProject(t, files)

	reg, err := LoadProject(dir, nil)
	require.NoError(t, err)
	assert.Len(t, reg.All(), 1)
}
