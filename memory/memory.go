// Package memory provides an in-memory Repository backed by a slice.
//
// It is the reference data source for tests, examples, and demos: pages
// are slices of the backing data, continuation and totals are computed
// exactly, and failures and latency can be injected to exercise error and
// loading transitions.
//
// Example usage:
//
//	repo := memory.NewRepository([]string{"a", "b", "c", "d"})
//	bloc := pagebloc.New[string](repo, pagebloc.WithPageSize[string](2))
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"

	"github.com/rakeshchandrapal/go-pagebloc"
)

// ErrInvalidPage is returned for page numbers below 1.
var ErrInvalidPage = errors.New("memory: page must be >= 1")

// FilterMatch decides whether an item satisfies a filter mapping.
// Configured with WithFilterMatch; when absent, filters are ignored.
type FilterMatch[T any] func(item T, filters map[string]any) bool

// Repository is an in-memory pagebloc.Repository implementation.
// All methods are safe for concurrent use, so tests can rewire failures
// and data while a Bloc is fetching.
type Repository[T any] struct {
	mu      sync.Mutex
	items   []T
	latency time.Duration
	failure error
	match   FilterMatch[T]
	calls   int
}

// Option configures a Repository.
type Option[T any] func(*Repository[T])

// WithLatency makes every fetch sleep for d before responding, honoring
// context cancellation.
func WithLatency[T any](d time.Duration) Option[T] {
	return func(r *Repository[T]) {
		r.latency = d
	}
}

// WithFilterMatch enables filter support: items failing match against the
// fetch's filter mapping are excluded before slicing pages.
func WithFilterMatch[T any](match FilterMatch[T]) Option[T] {
	return func(r *Repository[T]) {
		r.match = match
	}
}

// NewRepository creates a repository over a copy of items.
func NewRepository[T any](items []T, opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{
		items: append([]T(nil), items...),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchPage implements pagebloc.Repository.
func (r *Repository[T]) FetchPage(ctx context.Context, page, limit int, filters map[string]any) (pagebloc.PageResult[T], error) {
	if page < 1 {
		return pagebloc.PageResult[T]{}, ErrInvalidPage
	}
	if limit < 1 {
		return pagebloc.PageResult[T]{}, errors.New("memory: limit must be >= 1")
	}

	r.mu.Lock()
	r.calls++
	latency := r.latency
	failure := r.failure
	data := append([]T(nil), r.items...)
	match := r.match
	r.mu.Unlock()

	if latency > 0 {
		select {
		case <-ctx.Done():
			return pagebloc.PageResult[T]{}, ctx.Err()
		case <-time.After(latency):
		}
	}

	if failure != nil {
		return pagebloc.PageResult[T]{}, failure
	}

	if match != nil && len(filters) > 0 {
		filtered := data[:0]
		for _, item := range data {
			if match(item, filters) {
				filtered = append(filtered, item)
			}
		}
		data = filtered
	}

	total := len(data)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	totalPages := (total + limit - 1) / limit

	return pagebloc.PageResult[T]{
		Items:       append([]T(nil), data[start:end]...),
		HasMore:     end < total,
		CurrentPage: null.IntFrom(page),
		TotalPages:  null.IntFrom(totalPages),
		TotalItems:  null.IntFrom(total),
	}, nil
}

// SetItems replaces the backing data. Useful for refresh scenarios where
// the source changed between fetches.
func (r *Repository[T]) SetItems(items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]T(nil), items...)
}

// FailWith makes every subsequent fetch return err until ClearFailure.
func (r *Repository[T]) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure = err
}

// ClearFailure restores normal fetching.
func (r *Repository[T]) ClearFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure = nil
}

// Calls returns how many times FetchPage has been invoked.
func (r *Repository[T]) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
