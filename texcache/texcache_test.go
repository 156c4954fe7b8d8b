package texcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrComputeSingleCompute(t *testing.T) {
	c := New[string, int]()

	calls := 0
	compute := func() int {
		calls++
		return 42
	}

	assert.Equal(t, 42, c.GetOrCompute("k", compute))
	assert.Equal(t, 42, c.GetOrCompute("k", compute))
	assert.Equal(t, 1, calls, "a hit must not re-invoke compute")
	assert.Equal(t, 1, c.Len())
}

func TestDistinctKeysComputeSeparately(t *testing.T) {
	c := New[string, int]()

	calls := 0
	compute := func() int {
		calls++
		return calls
	}

	assert.Equal(t, 1, c.GetOrCompute("a", compute))
	assert.Equal(t, 2, c.GetOrCompute("b", compute))
	assert.Equal(t, 2, c.Len())
}

func TestMaintainEvictsAfter16Cycles(t *testing.T) {
	c := New[string, int]()
	c.GetOrCompute("k", func() int { return 1 })

	for i := 0; i < 15; i++ {
		c.Maintain()
	}
	require.Equal(t, 1, c.Len(), "entry must survive 15 cycles")

	c.Maintain()
	assert.Equal(t, 0, c.Len(), "entry must be gone after 16 cycles")
}

func TestAccessRestampsEntry(t *testing.T) {
	c := New[string, int]()
	c.GetOrCompute("k", func() int { return 1 })

	for i := 0; i < 10; i++ {
		c.Maintain()
	}
	// Touch the entry; its age resets.
	calls := 0
	c.GetOrCompute("k", func() int { calls++; return 2 })
	assert.Equal(t, 0, calls)

	for i := 0; i < 15; i++ {
		c.Maintain()
	}
	assert.Equal(t, 1, c.Len(), "restamped entry survives another 15 cycles")

	c.Maintain()
	assert.Equal(t, 0, c.Len())
}

func TestEvictionIsPerEntry(t *testing.T) {
	c := New[string, int]()
	c.GetOrCompute("old", func() int { return 1 })

	for i := 0; i < 10; i++ {
		c.Maintain()
	}
	c.GetOrCompute("new", func() int { return 2 })

	for i := 0; i < 6; i++ {
		c.Maintain()
	}
	assert.Equal(t, 1, c.Len(), "only the stale entry is evicted")

	v := c.GetOrCompute("new", func() int { return -1 })
	assert.Equal(t, 2, v)
}
