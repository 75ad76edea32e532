package dataloader

import (
	"context"
	"fmt"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Labels by id
// ---------------------------------------------------------------------------

func newLabelsBatchFn(repo labelRepo, kind domain.LabelKind) dataloader.BatchFunc[int64, string] {
	return func(ctx context.Context, keys []int64) []*dataloader.Result[string] {
		labels, err := repo.Labels(ctx, kind, keys)
		if err != nil {
			return errorResults[string](len(keys), err)
		}
		return mapResults(keys, labels, func(id int64) error {
			return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
		})
	}
}

// ---------------------------------------------------------------------------
// Authors by id
// ---------------------------------------------------------------------------

func newAuthorsBatchFn(repo authorResolver) dataloader.BatchFunc[int64, domain.ResolvedAuthor] {
	return func(ctx context.Context, keys []int64) []*dataloader.Result[domain.ResolvedAuthor] {
		authors, err := repo.Resolve(ctx, keys)
		if err != nil {
			return errorResults[domain.ResolvedAuthor](len(keys), err)
		}
		return mapResults(keys, authors, func(id int64) error {
			return fmt.Errorf("author %d: %w", id, domain.ErrNotFound)
		})
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// errorResults returns n results all carrying err.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps found values back to key order; missing keys get missErr.
func mapResults[V any](keys []int64, found map[int64]V, missErr func(int64) error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := found[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Error: missErr(key)}
		}
	}
	return results
}
