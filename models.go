package pagebloc

import (
	"github.com/aarondl/null/v8"
)

// PageResult is the value a Repository returns for a single page fetch.
//
// Type parameter T is the item type being paginated.
type PageResult[T any] struct {
	// Items contains the page's payload in the order the source returned it.
	Items []T `json:"items"`

	// HasMore reports whether further pages exist. It is the authoritative
	// termination signal: once a fetch returns HasMore=false the Bloc stops
	// issuing load-more fetches until a refresh or reset.
	//
	// Returning an empty Items slice with HasMore=true is permitted but
	// discouraged: a consumer that keeps requesting the next page will
	// probe indefinitely without accumulating anything.
	HasMore bool `json:"hasMore"`

	// CurrentPage is the page number this result corresponds to, when the
	// source knows it. Informational only; the Bloc tracks its own page
	// counter.
	CurrentPage null.Int `json:"currentPage,omitempty"`

	// TotalPages is the total number of pages, when known.
	TotalPages null.Int `json:"totalPages,omitempty"`

	// TotalItems is the total number of items across all pages, when known.
	// It feeds State.LoadProgress and is adjusted by item add/remove events.
	TotalItems null.Int `json:"totalItems,omitempty"`
}
