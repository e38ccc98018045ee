package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/folio/core"
	"github.com/poiesic/folio/storage"
)

// MaterialRepository implements storage.MaterialRepository for BadgerDB.
type MaterialRepository struct {
	backend *Backend
}

var _ storage.MaterialRepository = (*MaterialRepository)(nil)

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(backend *Backend) (*MaterialRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &MaterialRepository{backend: backend}, nil
}

// Close is a no-op; the backend is closed by its owner.
func (r *MaterialRepository) Close() error {
	return nil
}

// LoadAll returns every stored material.
func (r *MaterialRepository) LoadAll(ctx context.Context) ([]*core.Material, error) {
	var materials []*core.Material

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(materialPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(value []byte) error {
				material, err := storage.UnmarshalMaterial(value)
				if err != nil {
					return err
				}
				materials = append(materials, material)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return materials, nil
}

// Save stores a material, overwriting any previous version with the same
// id. The type index is kept consistent when an overwrite changes the type.
func (r *MaterialRepository) Save(ctx context.Context, material *core.Material) error {
	if err := core.ValidateMaterial(material); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeMaterialKey(material.Id)

		old, err := r.readMaterial(tx, key)
		if err != nil {
			return err
		}

		if err := tx.Set(key, storage.MarshalMaterial(material)); err != nil {
			return err
		}

		if old != nil && old.Type != material.Type {
			if err := tx.Delete(makeMaterialTypeKey(int(old.Type), old.Id)); err != nil {
				return err
			}
		}
		if err := tx.Set(makeMaterialTypeKey(int(material.Type), material.Id), []byte(material.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// Delete removes the material with the given id and its index entries.
// Returns storage.ErrNotFound if no such material exists.
func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeMaterialKey(id)

		material, err := r.readMaterial(tx, key)
		if err != nil {
			return err
		}
		if material == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(key); err != nil {
			return err
		}
		if err := tx.Delete(makeMaterialTypeKey(int(material.Type), material.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// Exists reports whether a material with the given id is stored.
func (r *MaterialRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeMaterialKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	}, false)
	return exists, err
}

// ListByType returns every stored material of the given type, resolved
// through the type index.
func (r *MaterialRepository) ListByType(ctx context.Context, materialType core.MaterialType) ([]*core.Material, error) {
	var materials []*core.Material

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialMaterialTypeKey(int(materialType))
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id string
			err := iter.Item().Value(func(value []byte) error {
				id = string(value)
				return nil
			})
			if err != nil {
				return err
			}

			material, err := r.readMaterial(tx, makeMaterialKey(id))
			if err != nil {
				return err
			}
			if material == nil {
				// Dangling index entry; the primary record wins.
				continue
			}
			materials = append(materials, material)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return materials, nil
}

// readMaterial reads and decodes a material within a transaction.
// Returns nil without error if the key doesn't exist.
func (r *MaterialRepository) readMaterial(tx *badger.Txn, key []byte) (*core.Material, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var material *core.Material
	err = item.Value(func(value []byte) error {
		material, err = storage.UnmarshalMaterial(value)
		return err
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}
