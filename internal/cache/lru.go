// Package cache provides the bounded, expiring memoization used by the
// renderer: a generic LRU cache with hit/miss accounting and a Manager
// holding one cache per kind of cached value.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Stats is a snapshot of a cache's counters.
type Stats struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	Size      int     `json:"size"`
	MaxSize   int     `json:"maxSize"`
	HitRate   float64 `json:"hitRate"`
}

type entry[K comparable, V any] struct {
	key     K
	value   V
	touched time.Time
}

// Cache is a fixed-capacity LRU cache with optional expiry.
//
// Cache is safe for concurrent use. Get mutates recency order, so every
// operation takes the same mutex.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	items     map[K]*list.Element
	order     *list.List // front is most recently used
	maxSize   int
	maxAge    time.Duration
	refresh   bool
	now       func() time.Time
	onEvict   func(K)
	hits      uint64
	misses    uint64
	evictions uint64
}

// Option tweaks a Cache at construction.
type Option[K comparable, V any] func(*Cache[K, V])

// WithClock replaces time.Now, for tests.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *Cache[K, V]) { c.now = now }
}

// WithEvictHook registers a callback run (under the lock) for every key
// dropped because the cache was full.
func WithEvictHook[K comparable, V any](fn func(K)) Option[K, V] {
	return func(c *Cache[K, V]) { c.onEvict = fn }
}

// New creates a cache from opts. A MaxSize below 1 is treated as 1; a zero
// MaxAge disables expiry.
func New[K comparable, V any](opts Options, extra ...Option[K, V]) *Cache[K, V] {
	size := opts.MaxSize
	if size < 1 {
		size = 1
	}
	c := &Cache[K, V]{
		items:   make(map[K]*list.Element, size),
		order:   list.New(),
		maxSize: size,
		maxAge:  opts.MaxAge,
		refresh: opts.RefreshOnAccess,
		now:     time.Now,
	}
	for _, o := range extra {
		o(c)
	}
	return c
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	e := el.Value.(*entry[K, V])
	now := c.now()
	if c.expired(e, now) {
		c.removeElement(el)
		c.misses++
		var zero V
		return zero, false
	}

	c.hits++
	c.order.MoveToFront(el)
	if c.refresh {
		e.touched = now
	}
	return e.value, true
}

// Set inserts or replaces the value for key, evicting the least recently
// used entry when the cache is full.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[K, V])
		e.value = value
		e.touched = now
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.maxSize {
		c.evictOldest()
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, touched: now})
}

// GetOrSet returns the cached value for key or stores the result of load.
// Errors from load are returned and never cached.
func (c *Cache[K, V]) GetOrSet(key K, load func() (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}
	v, err := load()
	if err != nil {
		var zero V
		return zero, false, err
	}
	c.Set(key, v)
	return v, false, nil
}

// Has reports whether key holds a live entry. It does not count as an
// access: counters and recency are unchanged.
func (c *Cache[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	if c.expired(el.Value.(*entry[K, V]), c.now()) {
		c.removeElement(el)
		return false
	}
	return true
}

// Delete removes key and reports whether anything was removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeElement(el)
	return true
}

// Clear drops every entry and resets the counters.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element, c.maxSize)
	c.order.Init()
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// Keys returns live keys, most recently used first.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	keys := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry[K, V])
		if !c.expired(e, now) {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Prune removes expired entries and returns how many were dropped.
func (c *Cache[K, V]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxAge <= 0 {
		return 0
	}
	now := c.now()
	pruned := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if c.expired(el.Value.(*entry[K, V]), now) {
			c.removeElement(el)
			pruned++
		}
		el = prev
	}
	return pruned
}

// Len returns the number of stored entries, expired ones included until
// they are read or pruned.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.order.Len(),
		MaxSize:   c.maxSize,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// caller must hold c.mu
func (c *Cache[K, V]) expired(e *entry[K, V], now time.Time) bool {
	return c.maxAge > 0 && now.Sub(e.touched) > c.maxAge
}

// caller must hold c.mu
func (c *Cache[K, V]) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	key := el.Value.(*entry[K, V]).key
	c.removeElement(el)
	c.evictions++
	if c.onEvict != nil {
		c.onEvict(key)
	}
}

// caller must hold c.mu
func (c *Cache[K, V]) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry[K, V]).key)
}
