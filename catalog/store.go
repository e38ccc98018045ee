package catalog

import (
	"context"
	"log/slog"
	"maps"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/folio/cache"
	"github.com/poiesic/folio/core"
	"github.com/poiesic/folio/index"
	"github.com/poiesic/folio/storage"
)

const defaultCacheCapacity = 128

// Store is the catalog of record: a thread-safe id-to-material map with a
// cached prefix index for title search and an async facade over a bounded
// worker pool.
//
// Mutations are serialized by an exclusive lock. Point reads are
// optimistic: they load a version stamp and an immutable map snapshot
// without blocking, then revalidate the stamp; a detected write race falls
// back to a shared read lock on the authoritative map. Writers publish a
// fresh snapshot and bump the stamp before releasing the lock.
//
// The index is updated after the map mutation completes, not atomically
// with it, so there is a bounded window in which a search can observe
// state older than a point read. Callers needing strict map/index
// agreement must call Refresh.
type Store struct {
	mu        sync.RWMutex
	materials map[string]*core.Material // authoritative; guarded by mu
	snapshot  atomic.Pointer[map[string]*core.Material]
	version   atomic.Uint64
	closed    atomic.Bool
	idx       *index.CachedIndex
	pool      *ants.Pool
	logger    *slog.Logger

	// construction settings, fixed once NewStore returns
	poolSize      int
	cacheCapacity int
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for the async facade.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Store) error {
		if size < 1 {
			size = 1
		}
		s.poolSize = size
		return nil
	}
}

// WithCacheCapacity sets the search result cache capacity.
// Default is 128 entries.
func WithCacheCapacity(capacity int) Option {
	return func(s *Store) error {
		s.cacheCapacity = capacity
		return nil
	}
}

// NewStore creates an empty catalog store. The worker pool and the index
// are constructed only after every option has been applied, so option
// order is irrelevant.
func NewStore(opts ...Option) (*Store, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	s := &Store{
		materials:     make(map[string]*core.Material),
		logger:        slog.Default(),
		poolSize:      poolSize,
		cacheCapacity: defaultCacheCapacity,
	}
	empty := make(map[string]*core.Material)
	s.snapshot.Store(&empty)

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, err
	}
	idx, err := index.NewCachedIndex(s.cacheCapacity, index.WithLogger(s.logger))
	if err != nil {
		pool.Release()
		return nil, err
	}
	s.pool = pool
	s.idx = idx

	return s, nil
}

// Add inserts a material into the catalog. Returns false without error if
// a material with the same id already exists; the existing material is
// never overwritten. A nil or invalid material is a validation error.
// The new material is visible to all subsequent reads once Add returns.
func (s *Store) Add(material *core.Material) (bool, error) {
	if s.closed.Load() {
		return false, ErrStoreClosed
	}
	if err := core.ValidateMaterial(material); err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return false, ErrStoreClosed
	}
	if _, exists := s.materials[material.Id]; exists {
		s.mu.Unlock()
		return false, nil
	}
	s.materials[material.Id] = material
	s.publishLocked()
	s.mu.Unlock()

	// Index update runs after the map write; see the staleness note on Store.
	if err := s.idx.AddMaterial(material); err != nil {
		s.logger.Error("failed to index material", "id", material.Id, "err", err)
	}
	return true, nil
}

// Remove deletes the material with the given id and returns it.
// Returns nil without error if no such material exists.
func (s *Store) Remove(id string) (*core.Material, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return nil, ErrStoreClosed
	}
	material, exists := s.materials[id]
	if !exists {
		s.mu.Unlock()
		return nil, nil
	}
	delete(s.materials, id)
	s.publishLocked()
	s.mu.Unlock()

	if _, err := s.idx.RemoveMaterial(material); err != nil {
		s.logger.Error("failed to unindex material", "id", id, "err", err)
	}
	return material, nil
}

// FindByID returns the material with the given id, or nil if the id is
// blank or unknown. The common path is an optimistic lock-free read.
func (s *Store) FindByID(id string) (*core.Material, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}

	stamp := s.version.Load()
	snap := s.snapshot.Load()
	material := (*snap)[id]
	if s.version.Load() == stamp {
		return material, nil
	}

	// A write raced the optimistic read; retry under the read lock.
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.materials[id], nil
}

// SearchByTitle returns all materials whose titles start with prefix,
// case-insensitively, in insertion order. A blank prefix returns an empty
// list, never an error.
func (s *Store) SearchByTitle(prefix string) ([]*core.Material, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}
	return s.idx.SearchByPrefix(prefix), nil
}

// SearchByTitleWithLimit behaves like SearchByTitle but returns at most
// limit materials.
func (s *Store) SearchByTitleWithLimit(prefix string, limit int) ([]*core.Material, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}
	return s.idx.SearchByPrefixWithLimit(prefix, limit), nil
}

// SearchByCreator returns all materials whose creator contains the query,
// case-insensitively, ordered by id. A blank query returns an empty list.
func (s *Store) SearchByCreator(query string) ([]*core.Material, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}
	q := index.Normalize(query)
	if q == "" {
		return []*core.Material{}, nil
	}

	snap := s.snapshot.Load()
	matches := make([]*core.Material, 0)
	for _, material := range *snap {
		if strings.Contains(strings.ToLower(material.Creator), q) {
			matches = append(matches, material)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Id < matches[j].Id })
	return matches, nil
}

// List returns every material in the catalog, ordered by title.
func (s *Store) List() ([]*core.Material, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}
	snap := s.snapshot.Load()
	out := make([]*core.Material, 0, len(*snap))
	for _, material := range *snap {
		out = append(out, material)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Size returns the number of materials in the catalog.
func (s *Store) Size() (int, error) {
	if s.closed.Load() {
		return 0, ErrStoreClosed
	}
	return len(*s.snapshot.Load()), nil
}

// IsEmpty reports whether the catalog holds no materials.
func (s *Store) IsEmpty() (bool, error) {
	size, err := s.Size()
	return size == 0, err
}

// Clear removes every material from the catalog and the derived index.
func (s *Store) Clear() error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	s.materials = make(map[string]*core.Material)
	s.publishLocked()
	s.mu.Unlock()

	s.idx.Clear()
	return nil
}

// Refresh replaces the catalog contents with the repository snapshot and
// rebuilds the index. Used to resynchronize after out-of-band changes.
func (s *Store) Refresh(ctx context.Context, repository storage.MaterialRepository) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	if repository == nil {
		return index.ErrRepositoryRequired
	}

	loaded, err := repository.LoadAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	s.materials = make(map[string]*core.Material, len(loaded))
	for _, material := range loaded {
		if material == nil {
			continue
		}
		s.materials[material.Id] = material
	}
	s.publishLocked()
	s.mu.Unlock()

	s.idx.Clear()
	for _, material := range loaded {
		if material == nil {
			continue
		}
		if err := s.idx.AddMaterial(material); err != nil {
			return err
		}
	}
	s.logger.Debug("catalog refreshed", "materials", len(loaded))
	return nil
}

// CacheStats returns a snapshot of the search cache's counters.
func (s *Store) CacheStats() (cache.Stats, error) {
	if s.closed.Load() {
		return cache.Stats{}, ErrStoreClosed
	}
	return s.idx.CacheStats(), nil
}

// Close transitions the store to the closed state and releases the worker
// pool. Every subsequent operation fails with ErrStoreClosed. Closing an
// already closed store is a no-op.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	// Take the write lock so no mutation is mid-flight when we release.
	s.mu.Lock()
	s.mu.Unlock()
	s.pool.Release()
	s.logger.Debug("catalog store closed")
	return nil
}

// publishLocked snapshots the authoritative map and bumps the version
// stamp. Caller holds s.mu. The snapshot is never mutated after
// publication, which is what makes the optimistic read safe.
func (s *Store) publishLocked() {
	snap := make(map[string]*core.Material, len(s.materials))
	maps.Copy(snap, s.materials)
	s.snapshot.Store(&snap)
	s.version.Add(1)
}
