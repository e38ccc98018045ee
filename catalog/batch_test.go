package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/folio/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAllAsync(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	batch := []*core.Material{
		material("E1", "Java Basics"),
		material("E2", "Java Advanced"),
		material("E3", "Go in Action"),
	}

	result, err := s.AddAllAsync(batch).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)

	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestAddAllAsync_PartialFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// [A, B, A]: the duplicate fails, the rest of the batch proceeds.
	batch := []*core.Material{
		material("A", "Java Basics"),
		material("B", "Java Advanced"),
		material("A", "Java Basics"),
	}

	result, err := s.AddAllAsync(batch).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.ErrorIs(t, result.Errors["A"], ErrDuplicateID)

	// No partial corruption: exactly the unique materials are present.
	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestAddAllAsync_InvalidItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	batch := []*core.Material{
		material("E1", "Java Basics"),
		nil,
		{Id: "E2", Type: core.MaterialTypeBook}, // missing title
	}

	result, err := s.AddAllAsync(batch).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
	assert.ErrorIs(t, result.Errors["#1"], core.ErrInvalidMaterial)
	assert.ErrorIs(t, result.Errors["E2"], core.ErrEmptyTitle)
}

func TestAddAllAsync_Empty(t *testing.T) {
	s := newTestStore(t)

	result, err := s.AddAllAsync(nil).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
}

func TestRemoveAllAsync(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Add(material(fmt.Sprintf("E%d", i), fmt.Sprintf("Title %d", i)))
		require.NoError(t, err)
	}

	// Absent ids count as successes: absence is a normal outcome.
	result, err := s.RemoveAllAsync([]string{"E0", "E1", "missing"}).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 0, result.Failed)

	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestRemoveAllAsync_ClosedStore(t *testing.T) {
	s, err := NewStore()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	result, err := s.RemoveAllAsync([]string{"E0", "E1"}).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
	for _, itemErr := range result.Errors {
		assert.ErrorIs(t, itemErr, ErrStoreClosed)
	}
}

func TestBatchOrderIndependence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 50
	batch := make([]*core.Material, n)
	for i := range batch {
		batch[i] = material(fmt.Sprintf("E%d", i), fmt.Sprintf("Title %d", i))
	}

	result, err := s.AddAllAsync(batch).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, result.Succeeded)

	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, n, size)
}
