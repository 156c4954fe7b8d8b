package smded

import (
	"fmt"
	"sort"

	"github.com/yuriks/smded/gfx"
)

// Kind distinguishes the two tileset families a project carries.
type Kind int

const (
	// KindCommon tilesets (CRE) hold graphics shared by every area.
	KindCommon Kind = iota
	// KindArea tilesets (SCE) hold graphics specific to one area.
	KindArea
)

func (k Kind) String() string {
	switch k {
	case KindCommon:
		return "CRE"
	case KindArea:
		return "SCE"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// TilesetRef is a stable handle identifying a tileset within its
// registry. Equality and hashing are by identity, never by content.
type TilesetRef uint32

// NoTileset is the zero ref, held by no tileset.
const NoTileset TilesetRef = 0

// Tileset bundles one loaded tileset's palette, tile graphics and
// block table. Tilesets are owned by a Registry; everything else
// borrows them for the duration of a render or decode call.
type Tileset struct {
	ref   TilesetRef
	kind  Kind
	index int
	Name  string

	Palette   gfx.Palette
	Gfx       []gfx.Tile
	Tiletable []gfx.TiletableEntry
}

// NewTileset creates an unregistered tileset. index is the project's
// numeric id for it, or -1 when unknown.
func NewTileset(kind Kind, index int, name string) *Tileset {
	return &Tileset{kind: kind, index: index, Name: name}
}

// Ref returns the tileset's registry handle, or NoTileset before the
// tileset is registered.
func (t *Tileset) Ref() TilesetRef { return t.ref }

// Kind returns the tileset's family.
func (t *Tileset) Kind() Kind { return t.kind }

// Index returns the tileset's numeric project index, or -1.
func (t *Tileset) Index() int { return t.index }

// Title renders a display name like "[1B] Wrecked Ship".
func (t *Tileset) Title() string {
	if t.index >= 0 {
		return fmt.Sprintf("[%02X] %s", t.index, t.Name)
	}
	return fmt.Sprintf("[??] %s", t.Name)
}

// Registry owns every tileset loaded from a project and hands out
// stable refs for them.
type Registry struct {
	nextRef  TilesetRef
	tilesets map[TilesetRef]*Tileset
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{nextRef: 1, tilesets: make(map[TilesetRef]*Tileset)}
}

// Add takes ownership of t and assigns it a ref.
func (r *Registry) Add(t *Tileset) TilesetRef {
	ref := r.nextRef
	r.nextRef++
	t.ref = ref
	r.tilesets[ref] = t
	return ref
}

// Get returns the tileset for ref, or nil.
func (r *Registry) Get(ref TilesetRef) *Tileset {
	return r.tilesets[ref]
}

// All returns every tileset, ordered by kind then project index.
func (r *Registry) All() []*Tileset {
	out := make([]*Tileset, 0, len(r.tilesets))
	for _, t := range r.tilesets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].kind != out[j].kind {
			return out[i].kind < out[j].kind
		}
		if out[i].index != out[j].index {
			return out[i].index < out[j].index
		}
		return out[i].ref < out[j].ref
	})
	return out
}

// ByKind returns the tilesets of one kind, ordered by project index.
func (r *Registry) ByKind(kind Kind) []*Tileset {
	var out []*Tileset
	for _, t := range r.All() {
		if t.kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// ByIndex returns the tileset with the given kind and project index,
// or nil.
func (r *Registry) ByIndex(kind Kind, index int) *Tileset {
	for _, t := range r.tilesets {
		if t.kind == kind && t.index == index {
			return t
		}
	}
	return nil
}

// DefaultCommon returns the common tileset with the lowest project
// index, used when a selection does not name one explicitly. It
// returns nil if the project has no common tilesets.
func (r *Registry) DefaultCommon() *Tileset {
	common := r.ByKind(KindCommon)
	if len(common) == 0 {
		return nil
	}
	return common[0]
}
