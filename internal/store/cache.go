// Package store holds the console's page-lifetime entity caches. Each cache
// keeps the last-fetched collection of one entity type, replaced wholesale
// on reload and read by renderers and client-side search.
package store

import "sync"

// Cache is a generation-guarded in-memory collection. Loaders call Begin
// before fetching and Complete when the fetch resolves; a reload that was
// overtaken by a newer one is discarded instead of clobbering fresher data.
type Cache[T any] struct {
	mu     sync.RWMutex
	items  []T
	loaded bool
	gen    uint64
	issued uint64
}

// NewCache returns an empty cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{}
}

// Begin issues a generation token for a reload that is about to start.
func (c *Cache[T]) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// Complete installs items for the reload identified by gen. It reports
// whether the cache accepted the result; a superseded generation is a no-op.
func (c *Cache[T]) Complete(gen uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen <= c.gen {
		return false
	}
	c.gen = gen
	c.items = items
	c.loaded = true
	return true
}

// Items returns a copy of the cached collection.
func (c *Cache[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of cached items.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Loaded reports whether any reload has completed yet.
func (c *Cache[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
