package pagebloc

import (
	"context"

	"github.com/friendsofgo/errors"
)

// Map wraps a Repository, converting each fetched item with transform.
// Useful for feeding a Bloc of domain models from a repository of storage
// models. Paging metadata passes through unchanged.
//
// Example:
//
//	repo := pagebloc.Map(dbRepo, func(row *models.Article) (Article, error) {
//	    return toDomainArticle(row)
//	})
func Map[From any, To any](source Repository[From], transform func(From) (To, error)) Repository[To] {
	return RepositoryFunc[To](func(ctx context.Context, page, limit int, filters map[string]any) (PageResult[To], error) {
		result, err := source.FetchPage(ctx, page, limit, filters)
		if err != nil {
			return PageResult[To]{}, err
		}

		items := make([]To, 0, len(result.Items))
		for i, item := range result.Items {
			transformed, err := transform(item)
			if err != nil {
				return PageResult[To]{}, errors.Wrapf(err, "transform item at index %d", i)
			}
			items = append(items, transformed)
		}

		return PageResult[To]{
			Items:       items,
			HasMore:     result.HasMore,
			CurrentPage: result.CurrentPage,
			TotalPages:  result.TotalPages,
			TotalItems:  result.TotalItems,
		}, nil
	})
}

// Filter wraps a Repository, dropping items for which keep returns false.
// Pages may come back shorter than the requested limit; HasMore and the
// totals pass through from the source, so totals become upper bounds
// rather than exact counts.
func Filter[T any](source Repository[T], keep PredicateFunc[T]) Repository[T] {
	return RepositoryFunc[T](func(ctx context.Context, page, limit int, filters map[string]any) (PageResult[T], error) {
		result, err := source.FetchPage(ctx, page, limit, filters)
		if err != nil {
			return PageResult[T]{}, err
		}

		items := make([]T, 0, len(result.Items))
		for _, item := range result.Items {
			if keep(item) {
				items = append(items, item)
			}
		}

		result.Items = items
		return result, nil
	})
}
