package storage

import (
	"context"

	"github.com/poiesic/folio/core"
)

// MaterialRepository provides persistent storage for catalog materials.
// Implementations must be thread-safe and support concurrent access.
//
// The repository is the durability layer below the in-memory catalog: the
// catalog never calls Save or Delete itself; a layer above orchestrates
// persistence alongside catalog mutation and uses LoadAll to rebuild
// derived state.
type MaterialRepository interface {
	// LoadAll returns every stored material. Order is unspecified.
	LoadAll(ctx context.Context) ([]*core.Material, error)

	// Save stores a material, overwriting any previous version with the
	// same id.
	Save(ctx context.Context, material *core.Material) error

	// Delete removes the material with the given id.
	// Returns ErrNotFound if no such material exists.
	Delete(ctx context.Context, id string) error

	// Exists reports whether a material with the given id is stored.
	Exists(ctx context.Context, id string) (bool, error)

	// ListByType returns every stored material of the given type.
	ListByType(ctx context.Context, materialType core.MaterialType) ([]*core.Material, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
