// Package sqlboiler provides a pagebloc.Repository backed by SQLBoiler
// queries.
//
// The adapter converts a page request (page number, limit, filters) into
// SQLBoiler query mods and delegates execution to caller-supplied query
// functions, so it works with any SQLBoiler-generated model without being
// coupled to a specific schema.
//
// Example usage:
//
//	repo := sqlboiler.NewRepository(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Article, error) {
//	        return models.Articles(mods...).All(ctx, db)
//	    },
//	    sqlboiler.WithCount[*models.Article](func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
//	        return models.Articles(mods...).Count(ctx, db)
//	    }),
//	    sqlboiler.WithOrderBy[*models.Article](sqlboiler.OrderBy{Column: "created_at", Desc: true}),
//	)
//
//	bloc := pagebloc.New[*models.Article](repo)
package sqlboiler

import (
	"context"
	"sort"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"

	"github.com/rakeshchandrapal/go-pagebloc"
)

// ErrInvalidPage is returned for page numbers below 1.
var ErrInvalidPage = errors.New("sqlboiler: page must be >= 1")

// QueryFunc executes a SQLBoiler query and returns results.
//
// Type parameter T is the SQLBoiler model type (e.g., *models.Article).
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc executes a SQLBoiler count query.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// OrderBy represents a sort directive applied to every page query.
type OrderBy struct {
	Column string
	Desc   bool
}

// defaultOrderBy keeps pagination deterministic when the caller does not
// configure sorting.
var defaultOrderBy = []OrderBy{{Column: "created_at", Desc: true}}

// Repository implements pagebloc.Repository over SQLBoiler queries.
//
// Continuation detection depends on whether a CountFunc is configured:
//   - with WithCount, each fetch also counts matching rows, giving exact
//     TotalItems/TotalPages and HasMore
//   - without it, each fetch requests limit+1 rows and trims, giving
//     accurate HasMore with no count query; totals stay unknown
type Repository[T any] struct {
	queryFunc QueryFunc[T]
	countFunc CountFunc
	orderBy   []OrderBy
}

// Option configures a Repository.
type Option[T any] func(*Repository[T])

// WithCount enables exact totals via a count query per fetch.
func WithCount[T any](countFunc CountFunc) Option[T] {
	return func(r *Repository[T]) {
		r.countFunc = countFunc
	}
}

// WithOrderBy sets the sort directives applied to every page query.
// The default is created_at DESC.
func WithOrderBy[T any](orderBy ...OrderBy) Option[T] {
	return func(r *Repository[T]) {
		if len(orderBy) > 0 {
			r.orderBy = orderBy
		}
	}
}

// NewRepository creates a SQLBoiler-backed repository.
func NewRepository[T any](queryFunc QueryFunc[T], opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{
		queryFunc: queryFunc,
		orderBy:   defaultOrderBy,
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
		return pagebloc.PageResult[T]{}, errors.New("sqlboiler: limit must be >= 1")
	}

	offset := (page - 1) * limit

	if r.countFunc == nil {
		return r.fetchProbing(ctx, offset, limit, filters)
	}
	return r.fetchCounting(ctx, page, offset, limit, filters)
}

// fetchProbing requests limit+1 rows and trims, detecting continuation
// without a count query.
func (r *Repository[T]) fetchProbing(ctx context.Context, offset, limit int, filters map[string]any) (pagebloc.PageResult[T], error) {
	mods := PageQueryMods(offset, limit+1, r.orderBy, filters)

	items, err := r.queryFunc(ctx, mods...)
	if err != nil {
		return pagebloc.PageResult[T]{}, errors.Wrap(err, "sqlboiler: query page")
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	return pagebloc.PageResult[T]{
		Items:   items,
		HasMore: hasMore,
	}, nil
}

// fetchCounting runs the page query plus a count over the same filters,
// yielding exact totals.
func (r *Repository[T]) fetchCounting(ctx context.Context, page, offset, limit int, filters map[string]any) (pagebloc.PageResult[T], error) {
	total, err := r.countFunc(ctx, FilterQueryMods(filters)...)
	if err != nil {
		return pagebloc.PageResult[T]{}, errors.Wrap(err, "sqlboiler: count rows")
	}

	mods := PageQueryMods(offset, limit, r.orderBy, filters)
	items, err := r.queryFunc(ctx, mods...)
	if err != nil {
		return pagebloc.PageResult[T]{}, errors.Wrap(err, "sqlboiler: query page")
	}

	count := int(total)
	totalPages := (count + limit - 1) / limit

	return pagebloc.PageResult[T]{
		Items:       items,
		HasMore:     offset+len(items) < count,
		CurrentPage: null.IntFrom(page),
		TotalPages:  null.IntFrom(totalPages),
		TotalItems:  null.IntFrom(count),
	}, nil
}

// PageQueryMods converts a page window into SQLBoiler query mods:
// filters become WHERE equality clauses, then OFFSET (when non-zero),
// LIMIT, and ORDER BY.
func PageQueryMods(offset, limit int, orderBy []OrderBy, filters map[string]any) []qm.QueryMod {
	mods := FilterQueryMods(filters)

	if offset > 0 {
		mods = append(mods, qm.Offset(offset))
	}

	mods = append(mods, qm.Limit(limit))

	if len(orderBy) > 0 {
		mods = append(mods, qm.OrderBy(buildOrderByClause(orderBy)))
	}

	return mods
}

// FilterQueryMods converts a filter mapping into WHERE equality mods.
// Keys are applied in sorted order so generated queries are
// deterministic.
func FilterQueryMods(filters map[string]any) []qm.QueryMod {
	mods := []qm.QueryMod{}
	if len(filters) == 0 {
		return mods
	}

	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		mods = append(mods, qm.Where(key+" = ?", filters[key]))
	}
	return mods
}

// buildOrderByClause constructs an ORDER BY clause from OrderBy
// directives. The direction is always explicit, ascending included.
// Assumes len(orderBy) > 0 (caller must verify).
func buildOrderByClause(orderBy []OrderBy) string {
	parts := make([]string, len(orderBy))
	for i, o := range orderBy {
		if o.Desc {
			parts[i] = o.Column + " DESC"
		} else {
			parts[i] = o.Column + " ASC"
		}
	}
	return strings.Join(parts, ", ")
}
