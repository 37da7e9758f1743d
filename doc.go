// Package pagebloc provides event-driven pagination state management for
// list-based consumers.
//
// A Bloc owns an immutable pagination snapshot (State) and is its only
// writer. Callers dispatch events (load first page, load more, refresh,
// reset, item mutations) and observe the resulting stream of snapshots;
// the Bloc fetches pages from a pluggable Repository and folds the results
// into new snapshots.
//
// Events are processed strictly one at a time through a per-instance
// mailbox: an event's handler runs to completion, including its repository
// fetch, before the next queued event is handled. This sequencing is the
// core concurrency guarantee of the package: there are no interleaved
// writes to the item list or page counter, and no locks are needed around
// transition logic.
//
// Example usage:
//
//	repo := pagebloc.RepositoryFunc[Article](func(ctx context.Context, page, limit int, filters map[string]any) (pagebloc.PageResult[Article], error) {
//	    return api.ListArticles(ctx, page, limit)
//	})
//
//	bloc := pagebloc.New(repo, pagebloc.WithPageSize[Article](25))
//	defer bloc.Close()
//
//	states, cancel := bloc.Subscribe()
//	defer cancel()
//
//	bloc.Dispatch(pagebloc.LoadFirstPage{})
//	for state := range states {
//	    render(state)
//	}
//
// Strategy adapters live in subpackages:
//   - memory: in-memory Repository for tests and demos
//   - sqlboiler: Repository backed by SQLBoiler queries
package pagebloc
