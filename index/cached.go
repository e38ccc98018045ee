package index

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/poiesic/folio/cache"
	"github.com/poiesic/folio/core"
	"github.com/poiesic/folio/storage"
)

// keyPrefix prefixes every cache key so that future key families cannot
// collide with prefix-search keys.
const keyPrefix = "prefix:"

// CachedIndex composes the title trie with a bounded LRU result cache.
// It owns cache key construction and the invalidation policy on mutation.
//
// Invalidation is deliberately coarse: a mutation drops the cache entry
// for every prefix of the material's lower-cased title, whether or not the
// cached result would actually change. Recomputing a handful of prefix
// queries is cheap; reasoning about which cached lists a mutation can
// reach is not.
type CachedIndex struct {
	trie   *Trie
	cache  *cache.ResultCache
	logger *slog.Logger

	// limitsMu guards limits, the set of limit-suffixed key variants
	// observed per base key, so invalidation can reach all of them.
	limitsMu sync.Mutex
	limits   map[string]map[int]struct{}
}

// Option configures a CachedIndex.
type Option func(*CachedIndex) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ci *CachedIndex) error {
		if logger == nil {
			logger = slog.Default()
		}
		ci.logger = logger
		return nil
	}
}

// NewCachedIndex creates a cached index whose result cache holds at most
// cacheCapacity entries. Returns cache.ErrInvalidCapacity if the capacity
// is not positive.
func NewCachedIndex(cacheCapacity int, opts ...Option) (*CachedIndex, error) {
	resultCache, err := cache.NewResultCache(cacheCapacity)
	if err != nil {
		return nil, err
	}

	ci := &CachedIndex{
		trie:   NewTrie(),
		cache:  resultCache,
		logger: slog.Default(),
		limits: make(map[string]map[int]struct{}),
	}

	for _, opt := range opts {
		if err := opt(ci); err != nil {
			return nil, err
		}
	}

	return ci, nil
}

// SearchByPrefix returns all materials whose titles start with prefix,
// consulting the cache before the trie. A blank prefix returns an empty
// list and is never cached. The returned slice is an independent copy;
// the cached slice itself is never handed out, so callers mutating their
// result cannot corrupt what later queries see.
func (ci *CachedIndex) SearchByPrefix(prefix string) []*core.Material {
	normalized := Normalize(prefix)
	if normalized == "" {
		return []*core.Material{}
	}

	key := keyPrefix + normalized
	if hit, ok := ci.cache.Get(key); ok {
		return copyResult(hit)
	}

	result := ci.trie.SearchByPrefix(normalized)
	if err := ci.cache.Put(key, result); err != nil {
		ci.logger.Warn("failed to cache search result", "key", key, "err", err)
	}
	return copyResult(result)
}

// SearchByPrefixWithLimit behaves like SearchByPrefix but returns at most
// limit materials. The cache key encodes the limit so differently-limited
// queries do not collide.
func (ci *CachedIndex) SearchByPrefixWithLimit(prefix string, limit int) []*core.Material {
	if limit <= 0 {
		return []*core.Material{}
	}
	normalized := Normalize(prefix)
	if normalized == "" {
		return []*core.Material{}
	}

	base := keyPrefix + normalized
	key := base + ":limit:" + strconv.Itoa(limit)
	if hit, ok := ci.cache.Get(key); ok {
		return copyResult(hit)
	}

	result := ci.trie.SearchByPrefixWithLimit(normalized, limit)
	if err := ci.cache.Put(key, result); err != nil {
		ci.logger.Warn("failed to cache search result", "key", key, "err", err)
	}
	ci.recordLimit(base, limit)
	return copyResult(result)
}

// HasPrefix reports whether any indexed material's title starts with
// prefix. Bypasses the cache; the trie walk is already O(prefix length).
func (ci *CachedIndex) HasPrefix(prefix string) bool {
	return ci.trie.HasPrefix(prefix)
}

// AddMaterial indexes the material and invalidates every cache entry its
// title can affect, so a subsequent identical query recomputes and sees
// it. Returns ErrNilMaterial for a nil material.
func (ci *CachedIndex) AddMaterial(material *core.Material) error {
	if err := ci.trie.Insert(material); err != nil {
		return err
	}
	ci.invalidateTitle(material.Title)
	return nil
}

// RemoveMaterial removes the material from the trie and invalidates the
// same key set as AddMaterial. Returns true if the trie actually removed
// an occurrence; a nil material is an error.
func (ci *CachedIndex) RemoveMaterial(material *core.Material) (bool, error) {
	if material == nil {
		return false, ErrNilMaterial
	}
	removed := ci.trie.Remove(material)
	ci.invalidateTitle(material.Title)
	return removed, nil
}

// Refresh discards the trie and the cache and re-indexes every material in
// the repository snapshot. Used to resynchronize the index with the
// authoritative store after out-of-band changes.
func (ci *CachedIndex) Refresh(ctx context.Context, repository storage.MaterialRepository) error {
	if repository == nil {
		return ErrRepositoryRequired
	}

	loaded, err := repository.LoadAll(ctx)
	if err != nil {
		return err
	}

	ci.Clear()
	for _, material := range loaded {
		if material == nil {
			continue
		}
		if err := ci.trie.Insert(material); err != nil {
			return err
		}
	}
	ci.logger.Debug("index refreshed", "materials", len(loaded))
	return nil
}

// Clear empties the trie, the cache, and the limit-variant bookkeeping.
func (ci *CachedIndex) Clear() {
	ci.trie.Clear()
	ci.cache.Clear()
	ci.limitsMu.Lock()
	ci.limits = make(map[string]map[int]struct{})
	ci.limitsMu.Unlock()
}

// Size returns the number of indexed material references, duplicates
// included.
func (ci *CachedIndex) Size() int {
	return ci.trie.Size()
}

// All returns a copy of every indexed material in insertion order.
func (ci *CachedIndex) All() []*core.Material {
	return ci.trie.All()
}

// CacheStats returns a snapshot of the result cache's counters.
func (ci *CachedIndex) CacheStats() cache.Stats {
	return ci.cache.Stats()
}

// invalidateTitle drops the cache entry for every non-empty prefix of the
// lower-cased title, including all observed limit-suffixed variants.
func (ci *CachedIndex) invalidateTitle(title string) {
	lowered := Normalize(title)

	ci.limitsMu.Lock()
	defer ci.limitsMu.Unlock()

	var b strings.Builder
	for _, ch := range lowered {
		b.WriteRune(ch)
		base := keyPrefix + b.String()
		ci.cache.Remove(base)
		for limit := range ci.limits[base] {
			ci.cache.Remove(base + ":limit:" + strconv.Itoa(limit))
		}
		delete(ci.limits, base)
	}
}

// copyResult returns an independent copy of a result slice. Cached slices
// are canonical and must never escape.
func copyResult(materials []*core.Material) []*core.Material {
	out := make([]*core.Material, len(materials))
	copy(out, materials)
	return out
}

func (ci *CachedIndex) recordLimit(base string, limit int) {
	ci.limitsMu.Lock()
	defer ci.limitsMu.Unlock()
	variants, ok := ci.limits[base]
	if !ok {
		variants = make(map[int]struct{})
		ci.limits[base] = variants
	}
	variants[limit] = struct{}{}
}
