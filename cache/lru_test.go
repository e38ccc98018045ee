package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/poiesic/folio/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func materials(ids ...string) []*core.Material {
	out := make([]*core.Material, len(ids))
	for i, id := range ids {
		out[i] = &core.Material{Id: id, Title: "title " + id, Type: core.MaterialTypeBook}
	}
	return out
}

func TestNewResultCache(t *testing.T) {
	t.Run("valid capacity", func(t *testing.T) {
		c, err := NewResultCache(3)
		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("zero capacity", func(t *testing.T) {
		_, err := NewResultCache(0)
		assert.Equal(t, ErrInvalidCapacity, err)
	})

	t.Run("negative capacity", func(t *testing.T) {
		_, err := NewResultCache(-5)
		assert.Equal(t, ErrInvalidCapacity, err)
	})
}

func TestGet_Missing(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	value, ok := c.Get("absent")
	assert.False(t, ok)
	assert.Nil(t, value)

	stats := c.Stats()
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestPutGet(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	want := materials("E1", "E2")
	require.NoError(t, c.Put("prefix:java", want))

	got, ok := c.Get("prefix:java")
	require.True(t, ok)
	assert.Equal(t, want, got)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 2, stats.Capacity)
	assert.Equal(t, uint64(1), stats.Hits)
}

func TestPut_Validation(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	assert.Equal(t, ErrEmptyKey, c.Put("", materials("E1")))
	assert.Equal(t, ErrNilValue, c.Put("k", nil))
}

func TestPut_OverwriteDoesNotConsumeCapacity(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	require.NoError(t, c.Put("k1", materials("E1")))
	require.NoError(t, c.Put("k2", materials("E2")))
	require.NoError(t, c.Put("k1", materials("E1", "E3")))

	assert.Equal(t, 2, c.Len())

	got, ok := c.Get("k1")
	require.True(t, ok)
	assert.Len(t, got, 2)

	// k2 must not have been evicted by the overwrite
	_, ok = c.Get("k2")
	assert.True(t, ok)
}

func TestEviction_LeastRecentlyUsed(t *testing.T) {
	c, err := NewResultCache(3)
	require.NoError(t, err)

	require.NoError(t, c.Put("k1", materials("E1")))
	require.NoError(t, c.Put("k2", materials("E2")))
	require.NoError(t, c.Put("k3", materials("E3")))

	// k1 is the least recently used entry
	require.NoError(t, c.Put("k4", materials("E4")))

	_, ok := c.Get("k1")
	assert.False(t, ok, "k1 should have been evicted")
	for _, key := range []string{"k2", "k3", "k4"} {
		_, ok := c.Get(key)
		assert.True(t, ok, "%s should remain", key)
	}
}

func TestEviction_GetPromotes(t *testing.T) {
	c, err := NewResultCache(3)
	require.NoError(t, err)

	require.NoError(t, c.Put("k1", materials("E1")))
	require.NoError(t, c.Put("k2", materials("E2")))
	require.NoError(t, c.Put("k3", materials("E3")))

	// Touching k1 makes k2 the eviction candidate
	_, ok := c.Get("k1")
	require.True(t, ok)

	require.NoError(t, c.Put("k4", materials("E4")))

	_, ok = c.Get("k2")
	assert.False(t, ok, "k2 should have been evicted")
	for _, key := range []string{"k1", "k3", "k4"} {
		_, ok := c.Get(key)
		assert.True(t, ok, "%s should remain", key)
	}
}

func TestRemove(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	require.NoError(t, c.Put("k1", materials("E1")))

	assert.True(t, c.Remove("k1"))
	assert.False(t, c.Remove("k1"))
	assert.Equal(t, 0, c.Len())
}

func TestClear_ResetsStats(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	require.NoError(t, c.Put("k1", materials("E1")))
	c.Get("k1")
	c.Get("absent")

	c.Clear()

	stats := c.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(0), stats.Misses)
	assert.Equal(t, float64(0), stats.HitRatio())
}

func TestStats_HitRatio(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	require.NoError(t, c.Put("k1", materials("E1")))
	c.Get("k1")     // hit
	c.Get("k1")     // hit
	c.Get("absent") // miss

	stats := c.Stats()
	assert.InDelta(t, 2.0/3.0, stats.HitRatio(), 1e-9)
}

func TestConcurrentAccess(t *testing.T) {
	c, err := NewResultCache(64)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("k%d", i%100)
				if i%2 == 0 {
					_ = c.Put(key, materials(fmt.Sprintf("E%d", i)))
				} else {
					c.Get(key)
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 64)
}
