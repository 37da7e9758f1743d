package pagebloc

import "context"

// Repository is the data-source contract the Bloc fetches pages through.
// It is the only external call the Bloc makes; everything else happens
// in-process.
//
// Type parameter T is the item type being paginated (e.g., Article, User).
//
// Implementations may be backed by anything: an HTTP API, a database (see
// the sqlboiler subpackage), or a slice in memory (see the memory
// subpackage). Any error returned is captured by the Bloc as a display
// string on the failing transition; the Bloc never retries on its own.
type Repository[T any] interface {
	// FetchPage retrieves one page of items.
	//
	// page is 1-based. limit is the configured page size. filters is the
	// static filter mapping supplied at Bloc construction, passed through
	// verbatim on every call (nil when none was configured).
	FetchPage(ctx context.Context, page, limit int, filters map[string]any) (PageResult[T], error)
}

// RepositoryFunc adapts a plain function to the Repository interface.
//
// Example:
//
//	repo := pagebloc.RepositoryFunc[User](func(ctx context.Context, page, limit int, filters map[string]any) (pagebloc.PageResult[User], error) {
//	    return client.ListUsers(ctx, page, limit)
//	})
type RepositoryFunc[T any] func(ctx context.Context, page, limit int, filters map[string]any) (PageResult[T], error)

// FetchPage implements the Repository interface.
func (f RepositoryFunc[T]) FetchPage(ctx context.Context, page, limit int, filters map[string]any) (PageResult[T], error) {
	return f(ctx, page, limit, filters)
}

// MatchFunc decides whether an existing element should be replaced by a
// candidate during an UpdateItem event. It receives the element currently
// in the list and the updated item carried by the event.
//
// Example matching on identity:
//
//	match := func(existing, updated Article) bool {
//	    return existing.ID == updated.ID
//	}
type MatchFunc[T any] func(existing, updated T) bool

// PredicateFunc selects elements during a RemoveItem event. Every element
// for which it returns true is removed.
type PredicateFunc[T any] func(item T) bool

// EqualsFunc is the fallback value-equality used by UpdateItem and
// RemoveItem events when no MatchFunc or PredicateFunc is supplied.
// Configure it with WithEquals; the default is reflect.DeepEqual.
// State.Equal always compares item slices with reflect.DeepEqual.
type EqualsFunc[T any] func(a, b T) bool
