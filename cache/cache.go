// Package cache wraps ristretto behind a small generic interface. The map
// front end uses it as the staleness window for backend search responses;
// eviction policy is ristretto's default.
package cache

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache is a typed view over a ristretto cache.
type Cache[T any] struct {
	impl *ristretto.Cache[string, T]
	name string
}

// New creates a cache. costFunc prices entries for eviction; name labels the
// cache in admin stats.
func New[T any](costFunc func(T) int64, name string) (*Cache[T], error) {
	impl, err := ristretto.NewCache(&ristretto.Config[string, T]{
		NumCounters: 1e5,     // keys tracked for frequency
		MaxCost:     1 << 24, // 16MB
		BufferItems: 64,
		Metrics:     true,
		Cost:        costFunc,
	})
	if err != nil {
		return nil, err
	}

	return &Cache[T]{impl: impl, name: name}, nil
}

// Get retrieves a value from the cache.
func (c *Cache[T]) Get(key string) (T, bool) {
	return c.impl.Get(key)
}

// SetWithTTL stores a value that expires after ttl.
func (c *Cache[T]) SetWithTTL(key string, value T, cost int64, ttl time.Duration) bool {
	return c.impl.SetWithTTL(key, value, cost, ttl)
}

// Clear removes all items.
func (c *Cache[T]) Clear() {
	c.impl.Clear()
}

// Wait blocks until buffered writes have been applied. Tests use it to make
// a set visible before the next Get.
func (c *Cache[T]) Wait() {
	c.impl.Wait()
}

// ItemCount returns the current number of live items.
func (c *Cache[T]) ItemCount() int64 {
	return int64(c.impl.Metrics.KeysAdded() - c.impl.Metrics.KeysEvicted())
}

// Stats returns cache metrics for admin monitoring.
func (c *Cache[T]) Stats() map[string]interface{} {
	m := c.impl.Metrics

	hitRate := 0.0
	total := m.Hits() + m.Misses()
	if total > 0 {
		hitRate = float64(m.Hits()) / float64(total) * 100
	}

	memoryUsed := m.CostAdded() - m.CostEvicted()

	return map[string]interface{}{
		"cache_type":     c.name,
		"hits":           m.Hits(),
		"misses":         m.Misses(),
		"sets":           m.KeysAdded(),
		"total_requests": total,
		"hit_rate":       hitRate,
		"cost_added":     m.CostAdded(),
		"cost_evicted":   m.CostEvicted(),
		"memory_used":    memoryUsed,
		"memory_used_kb": float64(memoryUsed) / 1024,
		"current_items":  c.ItemCount(),
	}
}
