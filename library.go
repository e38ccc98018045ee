// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package folio

import (
	"context"
	"log/slog"

	"github.com/poiesic/folio/cache"
	"github.com/poiesic/folio/catalog"
	"github.com/poiesic/folio/core"
	"github.com/poiesic/folio/storage"
	"github.com/poiesic/folio/storage/badger"
)

// Library combines the durable material repository with the in-memory
// catalog store. The catalog never persists anything itself; Library
// orchestrates persistence alongside catalog mutation, which keeps the
// store free of I/O under its locks.
type Library struct {
	backend *badger.Backend
	repo    storage.MaterialRepository
	store   *catalog.Store
	logger  *slog.Logger
}

// LibraryStats summarizes catalog and cache state.
type LibraryStats struct {
	Size   int
	ByType map[core.MaterialType]int
	Cache  cache.Stats
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	inMemory  bool
	storeOpts []catalog.Option
	logger    *slog.Logger
}

// WithInMemory opens the backing database in memory. Used by tests and
// throwaway sessions; nothing survives Close.
func WithInMemory() LibraryOption {
	return func(o *libraryOptions) {
		o.inMemory = true
	}
}

// WithStoreOptions forwards options to the underlying catalog store.
func WithStoreOptions(opts ...catalog.Option) LibraryOption {
	return func(o *libraryOptions) {
		o.storeOpts = append(o.storeOpts, opts...)
	}
}

// WithLibraryLogger sets a custom logger.
// Default is slog.Default().
func WithLibraryLogger(logger *slog.Logger) LibraryOption {
	return func(o *libraryOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// NewLibrary opens the database at filePath and loads the catalog from it.
func NewLibrary(filePath string, opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewMaterialRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	storeOpts := append([]catalog.Option{catalog.WithLogger(options.logger)}, options.storeOpts...)
	store, err := catalog.NewStore(storeOpts...)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	lib := &Library{
		backend: backend,
		repo:    repo,
		store:   store,
		logger:  options.logger,
	}

	if err := lib.Refresh(context.Background()); err != nil {
		lib.Close()
		return nil, err
	}

	return lib, nil
}

// Add inserts the material into the catalog and persists it. The store
// arbitrates duplicate ids under its own lock, so concurrent adds of the
// same id agree on a single winner; the losers never touch storage.
// Returns false if a material with the same id already exists. A failed
// persistence write undoes the catalog insert.
func (l *Library) Add(ctx context.Context, material *core.Material) (bool, error) {
	added, err := l.store.Add(material)
	if err != nil || !added {
		return false, err
	}

	if err := l.repo.Save(ctx, material); err != nil {
		if _, remErr := l.store.Remove(material.Id); remErr != nil {
			l.logger.Error("failed to undo catalog insert", "id", material.Id, "err", remErr)
		}
		return false, err
	}
	return true, nil
}

// Remove deletes the material from the catalog and from storage.
// Returns the removed material, or nil if the id is unknown.
func (l *Library) Remove(ctx context.Context, id string) (*core.Material, error) {
	removed, err := l.store.Remove(id)
	if err != nil {
		return nil, err
	}
	if removed == nil {
		return nil, nil
	}

	if err := l.repo.Delete(ctx, id); err != nil {
		return removed, err
	}
	return removed, nil
}

// FindByID returns the material with the given id, or nil if absent.
func (l *Library) FindByID(id string) (*core.Material, error) {
	return l.store.FindByID(id)
}

// SearchByTitle returns materials whose title starts with prefix.
func (l *Library) SearchByTitle(prefix string) ([]*core.Material, error) {
	return l.store.SearchByTitle(prefix)
}

// SearchByTitleWithLimit returns at most limit materials whose title
// starts with prefix.
func (l *Library) SearchByTitleWithLimit(prefix string, limit int) ([]*core.Material, error) {
	return l.store.SearchByTitleWithLimit(prefix, limit)
}

// SearchByCreator returns materials whose creator contains query.
func (l *Library) SearchByCreator(query string) ([]*core.Material, error) {
	return l.store.SearchByCreator(query)
}

// List returns every material in the catalog ordered by title.
func (l *Library) List() ([]*core.Material, error) {
	return l.store.List()
}

// Stats reports catalog size, per-type counts from the durable index,
// and cache performance.
func (l *Library) Stats(ctx context.Context) (*LibraryStats, error) {
	size, err := l.store.Size()
	if err != nil {
		return nil, err
	}
	cacheStats, err := l.store.CacheStats()
	if err != nil {
		return nil, err
	}

	byType := make(map[core.MaterialType]int)
	for _, mt := range []core.MaterialType{
		core.MaterialTypeBook,
		core.MaterialTypeEBook,
		core.MaterialTypeAudio,
		core.MaterialTypeVideo,
		core.MaterialTypeMagazine,
	} {
		materials, err := l.repo.ListByType(ctx, mt)
		if err != nil {
			return nil, err
		}
		if len(materials) > 0 {
			byType[mt] = len(materials)
		}
	}

	return &LibraryStats{
		Size:   size,
		ByType: byType,
		Cache:  cacheStats,
	}, nil
}

// Refresh rebuilds the catalog and its index from the repository.
func (l *Library) Refresh(ctx context.Context) error {
	return l.store.Refresh(ctx, l.repo)
}

// Store exposes the catalog store for reads and async composition.
func (l *Library) Store() *catalog.Store {
	return l.store
}

// Repository exposes the durable material repository.
func (l *Library) Repository() storage.MaterialRepository {
	return l.repo
}

// Close shuts down the catalog store and the storage backend.
func (l *Library) Close() error {
	if err := l.store.Close(); err != nil {
		l.logger.Error("error closing catalog store", "err", err)
		return err
	}
	if err := l.repo.Close(); err != nil {
		l.logger.Error("error closing material repository", "err", err)
		return err
	}
	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
