/*
Package vram models how multiple tileset data sources are overlaid into
a single logical address space, the way a game loads several asset
banks into a shared region of video memory.
*/
package vram

// Entry places one source's data at a base offset within the shared
// address space.
type Entry[T any] struct {
	Base   int
	Size   int
	Source T
}

// Layout is an ordered stack of entries. Where ranges overlap, later
// entries take priority over earlier ones, modeling last-write-wins
// loading into the shared region.
type Layout[T any] []Entry[T]

// Lookup resolves a flat index to the owning source and the offset
// local to it, scanning from the last entry to the first. The bound is
// deliberately inclusive: an index exactly Size past a base still
// matches that entry, and the conventional base constants are tuned
// around this.
func (l Layout[T]) Lookup(i int) (source T, offset int, ok bool) {
	for n := len(l) - 1; n >= 0; n-- {
		e := l[n]
		if i >= e.Base && i-e.Base <= e.Size {
			return e.Source, i - e.Base, true
		}
	}
	var zero T
	return zero, 0, false
}

// ValidRange returns the union span covered by the layout as a
// half-open [lo, hi) pair. ok is false for an empty layout.
func (l Layout[T]) ValidRange() (lo, hi int, ok bool) {
	if len(l) == 0 {
		return 0, 0, false
	}
	lo, hi = l[0].Base, l[0].Base+l[0].Size
	for _, e := range l[1:] {
		lo = min(lo, e.Base)
		hi = max(hi, e.Base+e.Size)
	}
	return lo, hi, true
}

// Map returns a copy of the layout with every source converted by f,
// keeping bases and sizes. Used to strip a layout of borrowed tilesets
// down to their handles for cache keys.
func Map[T, U any](l Layout[T], f func(T) U) Layout[U] {
	out := make(Layout[U], len(l))
	for i, e := range l {
		out[i] = Entry[U]{Base: e.Base, Size: e.Size, Source: f(e.Source)}
	}
	return out
}
