package pagebloc

import (
	"reflect"

	"github.com/aarondl/null/v8"
)

// Status identifies the current phase of the pagination state machine.
type Status string

const (
	// StatusInitial is the construction-time status, before any fetch.
	StatusInitial Status = "initial"

	// StatusFirstPageLoading means a first-page fetch is in flight.
	StatusFirstPageLoading Status = "first_page_loading"

	// StatusFirstPageSuccess means the first page loaded successfully.
	StatusFirstPageSuccess Status = "first_page_success"

	// StatusFirstPageError means the first-page fetch failed.
	StatusFirstPageError Status = "first_page_error"

	// StatusLoadingMore means a next-page fetch is in flight.
	StatusLoadingMore Status = "loading_more"

	// StatusLoadMoreSuccess means a next page was appended successfully.
	StatusLoadMoreSuccess Status = "load_more_success"

	// StatusLoadMoreError means a next-page fetch failed. The page counter
	// is untouched, so re-dispatching LoadMore retries the same page.
	StatusLoadMoreError Status = "load_more_error"

	// StatusRefreshing means a refresh fetch is in flight.
	StatusRefreshing Status = "refreshing"

	// StatusRefreshSuccess means a refresh replaced the list successfully.
	StatusRefreshSuccess Status = "refresh_success"

	// StatusRefreshError means a refresh fetch failed.
	StatusRefreshError Status = "refresh_error"
)

// IsLoading reports whether a fetch is currently in flight.
func (s Status) IsLoading() bool {
	return s == StatusFirstPageLoading || s == StatusLoadingMore || s == StatusRefreshing
}

// IsError reports whether the last transition failed.
func (s Status) IsError() bool {
	return s == StatusFirstPageError || s == StatusLoadMoreError || s == StatusRefreshError
}

// IsSuccess reports whether the last transition completed a fetch.
func (s Status) IsSuccess() bool {
	return s == StatusFirstPageSuccess || s == StatusLoadMoreSuccess || s == StatusRefreshSuccess
}

// State is an immutable snapshot of pagination state. The owning Bloc
// replaces the whole snapshot on every transition; callers only ever read
// it. Consecutive snapshots compare with Equal, which is what observers
// use to skip redundant re-renders.
//
// Type parameter T is the item type being paginated.
type State[T any] struct {
	// Status is the explicit state-machine phase. Items and CurrentPage are
	// auxiliary data carried alongside it.
	Status Status `json:"status"`

	// Items holds the items accumulated across all pages fetched so far.
	// A nil slice means "never loaded", which is distinct from an empty
	// slice (loaded, zero results).
	Items []T `json:"items,omitempty"`

	// CurrentPage is the 1-based number of the last successfully fetched
	// page. Zero until the first page loads.
	CurrentPage int `json:"currentPage"`

	// HasReachedMax is set once a fetch reports no further pages. While
	// set, LoadMore events are absorbed without fetching; a refresh or
	// reset clears it.
	HasReachedMax bool `json:"hasReachedMax"`

	// IsFirstLoad is true until the first page has loaded successfully.
	// A refresh does not reset it.
	IsFirstLoad bool `json:"isFirstLoad"`

	// Error holds the display message of the last failed fetch, empty
	// otherwise. The Status field says which operation failed.
	Error string `json:"error,omitempty"`

	// TotalItems is the source-reported total item count, when known.
	TotalItems null.Int `json:"totalItems,omitempty"`

	// TotalPages is the source-reported total page count, when known.
	TotalPages null.Int `json:"totalPages,omitempty"`
}

// NewState returns the default initial snapshot: initial status, no items,
// page 0, first-load pending.
func NewState[T any]() State[T] {
	return State[T]{
		Status:      StatusInitial,
		IsFirstLoad: true,
	}
}

// IsEmpty reports whether the list loaded and resolved to zero items.
// It is false while a fetch is in flight, before anything has loaded, and
// whenever items are present.
func (s State[T]) IsEmpty() bool {
	if s.Items == nil || len(s.Items) > 0 {
		return false
	}
	return !s.Status.IsLoading() && s.Status != StatusInitial
}

// HasItems reports whether the snapshot carries at least one item.
func (s State[T]) HasItems() bool {
	return len(s.Items) > 0
}

// LoadProgress returns the fraction of known items loaded so far, in
// [0, 1]. The second return is false when TotalItems is unknown or zero.
func (s State[T]) LoadProgress() (float64, bool) {
	if !s.TotalItems.Valid || s.TotalItems.Int <= 0 {
		return 0, false
	}
	progress := float64(len(s.Items)) / float64(s.TotalItems.Int)
	if progress > 1 {
		progress = 1
	}
	return progress, true
}

// Equal reports structural equality with another snapshot. Items are
// compared element-wise with reflect.DeepEqual; a nil and an empty item
// slice are not equal.
func (s State[T]) Equal(other State[T]) bool {
	if s.Status != other.Status ||
		s.CurrentPage != other.CurrentPage ||
		s.HasReachedMax != other.HasReachedMax ||
		s.IsFirstLoad != other.IsFirstLoad ||
		s.Error != other.Error ||
		s.TotalItems != other.TotalItems ||
		s.TotalPages != other.TotalPages {
		return false
	}

	if (s.Items == nil) != (other.Items == nil) {
		return false
	}
	if len(s.Items) != len(other.Items) {
		return false
	}
	for i := range s.Items {
		if !reflect.DeepEqual(s.Items[i], other.Items[i]) {
			return false
		}
	}
	return true
}
