package cache

import (
	"container/list"
	"sync"

	"github.com/poiesic/folio/core"
)

// ResultCache is a bounded least-recently-used cache for search results.
// It maintains a doubly-linked list for recency ordering and a map for
// O(1) lookups. Both Get and Put count as a touch: the touched entry moves
// to the most-recently-used position, and the entry at the opposite end is
// the eviction candidate.
//
// All methods are safe for concurrent use. Promotion on Get mutates the
// internal order, so even read paths go through the mutex.
type ResultCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = most recently used
	hits     uint64
	misses   uint64
}

type entry struct {
	key   string
	value []*core.Material
}

// Stats is a point-in-time snapshot of cache occupancy and hit rate.
// Tracked for observability only, never for correctness.
type Stats struct {
	Size     int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// HitRatio returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// NewResultCache creates a cache holding at most capacity entries.
// Returns ErrInvalidCapacity if capacity is not positive.
func NewResultCache(capacity int) (*ResultCache, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &ResultCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}, nil
}

// Get returns the value stored under key, promoting the entry to
// most-recently-used. The second return value reports whether the key was
// present; an absent key is not an error.
func (c *ResultCache) Get(key string) ([]*core.Material, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.order.MoveToFront(elem)
	c.hits++
	return elem.Value.(*entry).value, true
}

// Put stores value under key. An existing key is overwritten in place and
// promoted without consuming extra capacity. Inserting a new key at
// capacity first evicts the least-recently-used entry.
// Returns ErrEmptyKey for an empty key and ErrNilValue for a nil value.
func (c *ResultCache) Put(key string, value []*core.Material) error {
	if key == "" {
		return ErrEmptyKey
	}
	if value == nil {
		return ErrNilValue
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry).value = value
		c.order.MoveToFront(elem)
		return nil
	}

	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}

	c.items[key] = c.order.PushFront(&entry{key: key, value: value})
	return nil
}

// Remove deletes the entry under key, if present.
// Returns true if an entry was removed.
func (c *ResultCache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(elem)
	delete(c.items, key)
	return true
}

// Clear drops all entries and resets the hit and miss counters.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order = list.New()
	c.hits = 0
	c.misses = 0
}

// Len returns the current number of entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the cache's occupancy and counters.
func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:     c.order.Len(),
		Capacity: c.capacity,
		Hits:     c.hits,
		Misses:   c.misses,
	}
}

// evictOldest removes the least-recently-used entry. Caller holds c.mu.
func (c *ResultCache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*entry).key)
}
