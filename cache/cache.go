// Package cache provides a small bounded key/value cache with
// least-recently-used eviction.
//
// All rendering in this module happens synchronously inside one render
// pass, so the cache is deliberately unsynchronized. It must not be
// shared across goroutines.
package cache

// Cache is a bounded map with LRU eviction. Keys should be small typed
// structs (content hashes, version tokens, generation counters) rather
// than large values.
type Cache[K comparable, V any] struct {
	maxSize int
	entries map[K]V
	order   []K // recency order, most recent last
}

// New creates a cache holding at most maxSize entries. A maxSize < 1 is
// treated as 1.
func New[K comparable, V any](maxSize int) *Cache[K, V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Cache[K, V]{
		maxSize: maxSize,
		entries: make(map[K]V),
	}
}

// Get returns the cached value for key, calling build to compute and
// store it on a miss. A miss never fails; build is always consulted.
func (c *Cache[K, V]) Get(key K, build func() V) V {
	if v, ok := c.entries[key]; ok {
		c.touch(key)
		return v
	}

	v := build()
	c.entries[key] = v
	c.order = append(c.order, key)

	for len(c.entries) > c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	return v
}

// Lookup returns the cached value for key without computing anything.
func (c *Cache[K, V]) Lookup(key K) (V, bool) {
	v, ok := c.entries[key]
	if ok {
		c.touch(key)
	}
	return v, ok
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.entries = make(map[K]V)
	c.order = c.order[:0]
}

func (c *Cache[K, V]) touch(key K) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}
