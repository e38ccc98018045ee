package catalog

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/folio/core"
)

// Future is the handle for an operation running on the store's worker
// pool. It completes exactly once.
//
// Cancellation is advisory to the consumer, not an abort signal to the
// store: Cancel only prevents the caller from observing the result. An
// operation that has already started runs to completion, so cancelling
// one pending future never corrupts store state or affects other
// in-flight operations.
type Future[T any] struct {
	done      chan struct{}
	value     T
	err       error
	cancelled atomic.Bool
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// complete records the outcome and releases waiters. Called exactly once.
func (f *Future[T]) complete(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Wait blocks until the operation completes, the context is done, or the
// future is cancelled, and returns the operation's result.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	var zero T
	if f.cancelled.Load() {
		return zero, ErrFutureCancelled
	}
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-f.done:
		if f.cancelled.Load() {
			return zero, ErrFutureCancelled
		}
		return f.value, f.err
	}
}

// Done returns a channel that is closed when the operation completes,
// for select-based composition.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Cancel marks the future cancelled. Subsequent Wait calls return
// ErrFutureCancelled. The underlying operation is not stopped.
func (f *Future[T]) Cancel() {
	f.cancelled.Store(true)
}

// submit schedules fn on the store's worker pool and returns its future.
// A pool that refuses the task (released after Close) fails the future
// immediately instead of blocking the caller.
func submit[T any](s *Store, fn func() (T, error)) *Future[T] {
	future := newFuture[T]()
	if err := s.pool.Submit(func() {
		future.complete(fn())
	}); err != nil {
		var zero T
		future.complete(zero, ErrStoreClosed)
	}
	return future
}

// AddAsync runs Add on the worker pool.
func (s *Store) AddAsync(material *core.Material) *Future[bool] {
	return submit(s, func() (bool, error) {
		return s.Add(material)
	})
}

// RemoveAsync runs Remove on the worker pool.
func (s *Store) RemoveAsync(id string) *Future[*core.Material] {
	return submit(s, func() (*core.Material, error) {
		return s.Remove(id)
	})
}

// FindByIDAsync runs FindByID on the worker pool.
func (s *Store) FindByIDAsync(id string) *Future[*core.Material] {
	return submit(s, func() (*core.Material, error) {
		return s.FindByID(id)
	})
}

// SearchByTitleAsync runs SearchByTitle on the worker pool.
func (s *Store) SearchByTitleAsync(prefix string) *Future[[]*core.Material] {
	return submit(s, func() ([]*core.Material, error) {
		return s.SearchByTitle(prefix)
	})
}

// SearchByTitleWithLimitAsync runs SearchByTitleWithLimit on the worker pool.
func (s *Store) SearchByTitleWithLimitAsync(prefix string, limit int) *Future[[]*core.Material] {
	return submit(s, func() ([]*core.Material, error) {
		return s.SearchByTitleWithLimit(prefix, limit)
	})
}

// SearchByCreatorAsync runs SearchByCreator on the worker pool.
func (s *Store) SearchByCreatorAsync(query string) *Future[[]*core.Material] {
	return submit(s, func() ([]*core.Material, error) {
		return s.SearchByCreator(query)
	})
}

// SizeAsync runs Size on the worker pool.
func (s *Store) SizeAsync() *Future[int] {
	return submit(s, func() (int, error) {
		return s.Size()
	})
}

// IsEmptyAsync runs IsEmpty on the worker pool.
func (s *Store) IsEmptyAsync() *Future[bool] {
	return submit(s, func() (bool, error) {
		return s.IsEmpty()
	})
}

// ClearAsync runs Clear on the worker pool.
func (s *Store) ClearAsync() *Future[struct{}] {
	return submit(s, func() (struct{}, error) {
		return struct{}{}, s.Clear()
	})
}
