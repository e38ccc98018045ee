package folio

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/folio/core"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := NewLibrary("", WithInMemory())
	require.NoError(t, err)
	t.Cleanup(func() {
		lib.Close()
	})
	return lib
}

func testMaterial(id, title, creator string) *core.Material {
	return &core.Material{
		Id:      id,
		Title:   title,
		Creator: creator,
		Price:   24.99,
		Year:    2021,
		Type:    core.MaterialTypeBook,
	}
}

func TestNewLibrary(t *testing.T) {
	t.Run("create new library", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_library")
		lib, err := NewLibrary(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, lib)
		defer lib.Close()

		// Verify components are initialized
		assert.NotNil(t, lib.Store())
		assert.NotNil(t, lib.Repository())
		assert.NotNil(t, lib.backend)
		assert.NotNil(t, lib.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a library at a file path instead of a directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		lib, err := NewLibrary(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, lib)
	})
}

func TestLibrary_AddAndFind(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	added, err := lib.Add(ctx, testMaterial("B1", "Go in Practice", "Matt Butcher"))
	require.NoError(t, err)
	assert.True(t, added)

	found, err := lib.FindByID("B1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Go in Practice", found.Title)

	// Same id again is rejected without error.
	added, err = lib.Add(ctx, testMaterial("B1", "Go in Practice", "Matt Butcher"))
	require.NoError(t, err)
	assert.False(t, added)

	// Storage was not duplicated either.
	all, err := lib.Repository().LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLibrary_ConcurrentAddSameID(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	// All racers carry the same id; exactly one may win, and the losers
	// must not disturb the winner's persisted record.
	const n = 8
	var wg sync.WaitGroup
	var wins atomic.Int32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			added, err := lib.Add(ctx, testMaterial("B1", "Go in Practice", "Matt Butcher"))
			assert.NoError(t, err)
			if added {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())

	exists, err := lib.Repository().Exists(ctx, "B1")
	require.NoError(t, err)
	assert.True(t, exists)

	all, err := lib.Repository().LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	found, err := lib.FindByID("B1")
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestLibrary_AddRejectsInvalid(t *testing.T) {
	lib := newTestLibrary(t)

	added, err := lib.Add(context.Background(), &core.Material{Id: "B1"})
	assert.ErrorIs(t, err, core.ErrInvalidMaterial)
	assert.False(t, added)
}

func TestLibrary_Remove(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	_, err := lib.Add(ctx, testMaterial("B1", "The Go Programming Language", "Alan Donovan"))
	require.NoError(t, err)

	removed, err := lib.Remove(ctx, "B1")
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, "B1", removed.Id)

	found, err := lib.FindByID("B1")
	require.NoError(t, err)
	assert.Nil(t, found)

	exists, err := lib.Repository().Exists(ctx, "B1")
	require.NoError(t, err)
	assert.False(t, exists)

	// Removing an unknown id is not an error.
	removed, err = lib.Remove(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, removed)
}

func TestLibrary_SurvivesReopen(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "library")
	ctx := context.Background()

	lib, err := NewLibrary(tmpDir)
	require.NoError(t, err)
	_, err = lib.Add(ctx, testMaterial("B1", "Learning Go", "Jon Bodner"))
	require.NoError(t, err)
	_, err = lib.Add(ctx, testMaterial("B2", "Learning SQL", "Alan Beaulieu"))
	require.NoError(t, err)
	require.NoError(t, lib.Close())

	lib, err = NewLibrary(tmpDir)
	require.NoError(t, err)
	defer lib.Close()

	size, err := lib.Store().Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	results, err := lib.SearchByTitle("learning")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestLibrary_SearchAndList(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	_, err := lib.Add(ctx, testMaterial("B1", "Java Basics", "Kathy Sierra"))
	require.NoError(t, err)
	_, err = lib.Add(ctx, testMaterial("B2", "Java Advanced", "Kathy Sierra"))
	require.NoError(t, err)
	_, err = lib.Add(ctx, testMaterial("B3", "Rust in Action", "Tim McNamara"))
	require.NoError(t, err)

	byTitle, err := lib.SearchByTitle("java")
	require.NoError(t, err)
	assert.Len(t, byTitle, 2)

	limited, err := lib.SearchByTitleWithLimit("java", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	byCreator, err := lib.SearchByCreator("sierra")
	require.NoError(t, err)
	assert.Len(t, byCreator, 2)

	all, err := lib.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Java Advanced", all[0].Title)
}

func TestLibrary_Stats(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	book := testMaterial("B1", "Clean Code", "Robert Martin")
	audio := testMaterial("A1", "Clean Code Audiobook", "Robert Martin")
	audio.Type = core.MaterialTypeAudio
	audio.Media = &core.MediaFields{DurationSec: 32400, Format: "mp3"}

	_, err := lib.Add(ctx, book)
	require.NoError(t, err)
	_, err = lib.Add(ctx, audio)
	require.NoError(t, err)

	stats, err := lib.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, 1, stats.ByType[core.MaterialTypeBook])
	assert.Equal(t, 1, stats.ByType[core.MaterialTypeAudio])
	assert.Positive(t, stats.Cache.Capacity)
}

func TestLibrary_Close(t *testing.T) {
	tmpDir := t.TempDir()
	lib, err := NewLibrary(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, lib)

	err = lib.Close()
	assert.NoError(t, err)
}
