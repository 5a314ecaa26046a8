package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStringCache(t *testing.T, name string) *Cache[string] {
	t.Helper()
	c, err := New(func(value string) int64 {
		return int64(len(value))
	}, name)
	require.NoError(t, err)
	return c
}

func TestSetWithTTLAndGet(t *testing.T) {
	c := newStringCache(t, "Test Cache")

	c.SetWithTTL("test-key", "test value", 0, time.Minute)
	c.Wait()

	value, found := c.Get("test-key")
	require.True(t, found)
	assert.Equal(t, "test value", value)

	_, found = c.Get("missing-key")
	assert.False(t, found)
}

func TestTTLExpiry(t *testing.T) {
	c := newStringCache(t, "Expiry Cache")

	c.SetWithTTL("short-lived", "value", 0, 50*time.Millisecond)
	c.Wait()

	_, found := c.Get("short-lived")
	require.True(t, found)

	require.Eventually(t, func() bool {
		_, found := c.Get("short-lived")
		return !found
	}, time.Second, 20*time.Millisecond)
}

func TestClear(t *testing.T) {
	c := newStringCache(t, "Clear Cache")

	c.SetWithTTL("key1", "a", 0, time.Minute)
	c.SetWithTTL("key2", "b", 0, time.Minute)
	c.Wait()

	c.Clear()

	_, found := c.Get("key1")
	assert.False(t, found)
	_, found = c.Get("key2")
	assert.False(t, found)
}

func TestPointerValues(t *testing.T) {
	type page struct{ items []string }

	c, err := New(func(p *page) int64 {
		return int64(len(p.items) + 1)
	}, "Pointer Cache")
	require.NoError(t, err)

	stored := &page{items: []string{"a", "b"}}
	c.SetWithTTL("key", stored, 0, time.Minute)
	c.Wait()

	got, found := c.Get("key")
	require.True(t, found)
	assert.Same(t, stored, got)
}

func TestStats(t *testing.T) {
	c := newStringCache(t, "Stats Cache")

	c.SetWithTTL("key1", "value", 0, time.Minute)
	c.SetWithTTL("key2", "value", 0, time.Minute)
	c.Wait()

	c.Get("key1") // hit
	c.Get("key2") // hit
	c.Get("key3") // miss

	stats := c.Stats()

	expectedKeys := []string{
		"cache_type", "hits", "misses", "sets", "total_requests",
		"hit_rate", "cost_added", "cost_evicted", "memory_used",
		"memory_used_kb", "current_items",
	}
	for _, key := range expectedKeys {
		assert.Contains(t, stats, key, "expected key %s in stats", key)
	}

	assert.Equal(t, "Stats Cache", stats["cache_type"])
	assert.Equal(t, uint64(2), stats["hits"])
	assert.Equal(t, uint64(1), stats["misses"])
	assert.Equal(t, uint64(3), stats["total_requests"])

	hitRate := stats["hit_rate"].(float64)
	assert.InDelta(t, 100.0*2/3, hitRate, 0.01)
}

func TestStatsEmptyCache(t *testing.T) {
	c := newStringCache(t, "Empty Cache")

	stats := c.Stats()

	assert.Equal(t, "Empty Cache", stats["cache_type"])
	assert.Equal(t, uint64(0), stats["hits"])
	assert.Equal(t, uint64(0), stats["misses"])
	assert.Equal(t, uint64(0), stats["total_requests"])
	assert.Equal(t, 0.0, stats["hit_rate"])
	assert.Equal(t, int64(0), stats["current_items"].(int64))
}
