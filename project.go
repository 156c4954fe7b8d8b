package smded

import (
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"github.com/yuriks/smded/gfx"
)

const ttbEntryBytes = 8 // 4 packed 16-bit tile references

// ValidateProjectDir checks that dir looks like a SMART project before
// committing to a full load.
func ValidateProjectDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return errors.New("smded: not a directory")
	}
	if _, err := os.Stat(filepath.Join(dir, "project.xml")); err != nil {
		return errors.New("smded: does not contain project.xml")
	}
	if _, err := os.Stat(filepath.Join(dir, "Export")); err != nil {
		return errors.New("smded: does not contain an Export/ directory")
	}
	return nil
}

// LoadProject reads every tileset exported under dir into a fresh
// registry. Diagnostics (discarded color precision, leftover palette
// entries) go to logger, which may be nil; data integrity problems are
// returned as errors.
func LoadProject(dir string, logger *log.Logger) (*Registry, error) {
	reg := NewRegistry()
	for _, kind := range []Kind{KindCommon, KindArea} {
		if err := loadTilesetDir(reg, dir, kind, logger); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func loadTilesetDir(reg *Registry, dir string, kind Kind, logger *log.Logger) error {
	exportDir := filepath.Join(dir, "Export", "Tileset", kind.String())
	entries, err := os.ReadDir(exportDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, e := range entries {
		// Tileset directories are named by hex id; anything else is
		// not a tileset export.
		index, err := strconv.ParseUint(e.Name(), 16, 8)
		if err != nil || !e.IsDir() {
			continue
		}

		ts, err := loadTileset(dir, kind, int(index), e.Name(), logger)
		if err != nil {
			return err
		}
		reg.Add(ts)
	}
	return nil
}

func loadTileset(projectDir string, kind Kind, index int, dirName string, logger *log.Logger) (*Tileset, error) {
	tilesetDir := filepath.Join(projectDir, "Export", "Tileset", kind.String(), dirName)

	gfxData, err := readFileMaybeGzip(filepath.Join(tilesetDir, "8x8tiles.gfx"))
	if err != nil {
		return nil, err
	}
	tiles, leftover := gfx.TilesFromBytes(gfxData)
	if leftover != 0 {
		return nil, fmt.Errorf("smded: tileset %s %02X: gfx not evenly divisible as tiles", kind, index)
	}

	ttbData, err := readFileMaybeGzip(filepath.Join(tilesetDir, "16x16tiles.ttb"))
	if err != nil {
		return nil, err
	}
	tiletable, err := parseTiletable(ttbData)
	if err != nil {
		return nil, fmt.Errorf("smded: tileset %s %02X: %w", kind, index, err)
	}

	palette, err := loadPalette(filepath.Join(tilesetDir, "palette"), logger)
	if err != nil {
		return nil, fmt.Errorf("smded: tileset %s %02X: %w", kind, index, err)
	}
	if limit := gfx.Line4bppLen * gfx.AddressablePalettes; len(palette) > limit {
		palette, err = palette.TruncateChecked(limit)
		if err != nil {
			return nil, fmt.Errorf("smded: tileset %s %02X: palette has too many (non-blank) lines", kind, index)
		}
	}

	name := "Unnamed Tileset"
	if meta, err := loadTilesetMetadata(projectDir, kind, dirName); err != nil {
		return nil, err
	} else if meta != nil && meta.Name != "" {
		name = meta.Name
	}

	ts := NewTileset(kind, index, name)
	ts.Palette = palette
	ts.Gfx = tiles
	ts.Tiletable = tiletable
	return ts, nil
}

func parseTiletable(data []byte) ([]gfx.TiletableEntry, error) {
	if len(data)%ttbEntryBytes != 0 {
		return nil, errors.New("tiletable has truncated trailing entry")
	}
	entries := make([]gfx.TiletableEntry, len(data)/ttbEntryBytes)
	for i := range entries {
		for j := 0; j < 4; j++ {
			entries[i][j] = gfx.TilemapEntry(binary.LittleEndian.Uint16(data[i*ttbEntryBytes+j*2:]))
		}
	}
	return entries, nil
}

type tilesetMetadata struct {
	XMLName xml.Name `xml:"Tileset"`
	Name    string   `xml:"Name"`
}

func loadTilesetMetadata(projectDir string, kind Kind, dirName string) (*tilesetMetadata, error) {
	path := filepath.Join(projectDir, "Data", "Tileset", kind.String(), dirName+".xml")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var meta tilesetMetadata
	if err := xml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("smded: %s: %w", path, err)
	}
	return &meta, nil
}

// loadPalette probes the palette file next to the graphics, trying TPL
// first, then 8-bit RGB triplets, then raw packed 15-bit words. A
// missing palette is not an error; common tilesets usually have none.
func loadPalette(base string, logger *log.Logger) (gfx.Palette, error) {
	if data, err := readFileMaybeGzip(base + ".tpl"); err == nil {
		if len(data) < 4 {
			return nil, errors.New("invalid TPL file: missing header")
		}
		header, entries := data[:4], data[4:]
		if !bytes.Equal(header[0:3], []byte("TPL")) {
			return nil, errors.New("invalid TPL file: wrong magic")
		}
		switch header[3] {
		case 0: // RGB format
			return rgbPalette(entries, logger), nil
		case 2: // packed 15-bit format
			return packedPalette(entries), nil
		default:
			return nil, errors.New("invalid TPL file: unsupported format")
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if data, err := readFileMaybeGzip(base + ".pal"); err == nil {
		return rgbPalette(data, logger), nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	for _, ext := range []string{".raw", ".snes", ".bin"} {
		if data, err := readFileMaybeGzip(base + ext); err == nil {
			return packedPalette(data), nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	return nil, nil
}

func rgbPalette(data []byte, logger *log.Logger) gfx.Palette {
	pal := make(gfx.Palette, len(data)/3)
	for i := range pal {
		r, g, b := data[i*3], data[i*3+1], data[i*3+2]
		c, exact := gfx.ColorFromRGB8(r, g, b)
		if !exact && logger != nil {
			logger.Printf("excessive color precision in palette entry discarded: #%02X%02X%02X", r, g, b)
		}
		pal[i] = c
	}
	return pal
}

func packedPalette(data []byte) gfx.Palette {
	pal := make(gfx.Palette, len(data)/2)
	for i := range pal {
		pal[i] = gfx.Color(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return pal
}

// readFileMaybeGzip reads a file, transparently decompressing gzip
// content so compressed exports load like plain ones.
func readFileMaybeGzip(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}
	return data, nil
}
