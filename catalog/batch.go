package catalog

import (
	"strconv"
	"sync"

	"github.com/poiesic/folio/core"
)

// BatchResult aggregates the per-item outcomes of a batch operation.
// There is deliberately no single pass/fail flag: each item succeeds or
// fails on its own, and one item's failure never aborts or rolls back the
// rest of the batch.
type BatchResult struct {
	Succeeded int
	Failed    int
	// Errors holds the failure per item, keyed by material id. Items
	// without an id (nil materials) are keyed by batch position, "#0".
	Errors map[string]error
}

type batchRecorder struct {
	mu     sync.Mutex
	result BatchResult
}

func newBatchRecorder() *batchRecorder {
	return &batchRecorder{result: BatchResult{Errors: make(map[string]error)}}
}

func (r *batchRecorder) success() {
	r.mu.Lock()
	r.result.Succeeded++
	r.mu.Unlock()
}

func (r *batchRecorder) failure(key string, err error) {
	r.mu.Lock()
	r.result.Failed++
	r.result.Errors[key] = err
	r.mu.Unlock()
}

// AddAllAsync adds each material independently on the worker pool. Items
// may complete in any order, concurrently. A duplicate id is recorded as
// ErrDuplicateID for that item; the rest of the batch proceeds.
func (s *Store) AddAllAsync(materials []*core.Material) *Future[*BatchResult] {
	future := newFuture[*BatchResult]()
	recorder := newBatchRecorder()

	var wg sync.WaitGroup
	for i, material := range materials {
		key := "#" + strconv.Itoa(i)
		if material != nil {
			key = material.Id
		}

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			added, err := s.Add(material)
			switch {
			case err != nil:
				recorder.failure(key, err)
			case !added:
				recorder.failure(key, ErrDuplicateID)
			default:
				recorder.success()
			}
		})
		if err != nil {
			wg.Done()
			recorder.failure(key, ErrStoreClosed)
		}
	}

	go func() {
		wg.Wait()
		future.complete(&recorder.result, nil)
	}()
	return future
}

// RemoveAllAsync removes each id independently on the worker pool. An id
// that is not present counts as a success: absence is a normal outcome,
// not a failure. Only operational errors (a closed store) are recorded.
func (s *Store) RemoveAllAsync(ids []string) *Future[*BatchResult] {
	future := newFuture[*BatchResult]()
	recorder := newBatchRecorder()

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			if _, err := s.Remove(id); err != nil {
				recorder.failure(id, err)
				return
			}
			recorder.success()
		})
		if err != nil {
			wg.Done()
			recorder.failure(id, ErrStoreClosed)
		}
	}

	go func() {
		wg.Wait()
		future.complete(&recorder.result, nil)
	}()
	return future
}
