package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Builder returns a squirrel statement builder that emits $n placeholders.
func Builder() sq.StatementBuilderType {
	return psql
}

// Collect runs a built query and scans every row with scan.
func Collect[T any](ctx context.Context, q Querier, b sq.Sqlizer, scan pgx.RowToFunc[T]) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scan)
}

// Count runs a built single-value query and returns the integer result.
func Count(ctx context.Context, q Querier, b sq.Sqlizer) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountsByID runs a built "id, count" grouping query and returns the counts
// keyed by id. Ids without rows are absent, which callers read as zero.
func CountsByID(ctx context.Context, q Querier, b sq.Sqlizer) (map[int64]int, error) {
	type pair struct {
		id    int64
		count int
	}
	pairs, err := Collect(ctx, q, b, func(row pgx.CollectableRow) (pair, error) {
		var p pair
		err := row.Scan(&p.id, &p.count)
		return p, err
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(pairs))
	for _, p := range pairs {
		counts[p.id] = p.count
	}
	return counts, nil
}
