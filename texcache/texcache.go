/*
Package texcache memoizes rendered pixel buffers between draw cycles.

Entries are aged by a global epoch that advances once per Maintain
call; anything untouched for maxAge cycles is dropped. This bounds
memory held for stale source combinations without explicit
invalidation hooks. A cache belongs to a single rendering goroutine
and does no locking of its own.
*/
package texcache

// maxAge is how many maintenance cycles an entry survives unused.
const maxAge = 15

type entry[V any] struct {
	// lastUse holds the cache epoch at the entry's last access.
	lastUse uint32
	value   V
}

// Cache memoizes computed values keyed by the full description of what
// produced them. Use New; the zero value has no entry map.
type Cache[K comparable, V any] struct {
	epoch   uint32
	entries map[K]entry[V]
}

// New returns an empty cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]entry[V])}
}

// GetOrCompute returns the value cached for key, calling compute
// exactly once to fill a miss. A hit restamps the entry to the current
// epoch so it survives upcoming maintenance passes.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() V) V {
	if e, ok := c.entries[key]; ok {
		e.lastUse = c.epoch
		c.entries[key] = e
		return e.value
	}
	v := compute()
	c.entries[key] = entry[V]{lastUse: c.epoch, value: v}
	return v
}

// Maintain ages the cache by one cycle, evicting every entry that has
// gone maxAge cycles without use. The subtraction is wraparound-safe,
// so the epoch may roll over freely. Call once per draw cycle.
func (c *Cache[K, V]) Maintain() {
	for k, e := range c.entries {
		if c.epoch-e.lastUse >= maxAge {
			delete(c.entries, k)
		}
	}
	c.epoch++
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}
