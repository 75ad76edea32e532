// Package lookup resolves display labels for the small reference tables
// reports refer to by id.
package lookup

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/sapl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/sapl-backend/internal/domain"
)

type labelSource struct {
	table string
	label string
}

// sources is the closed set of tables Labels may read.
var sources = map[domain.LabelKind]labelSource{
	domain.LabelMatterType:  {table: "matter_types", label: "description"},
	domain.LabelStatus:      {table: "tramitacao_statuses", label: "acronym || ' - ' || description"},
	domain.LabelUnit:        {table: "tramitacao_units", label: "name"},
	domain.LabelCommittee:   {table: "committees", label: "name"},
	domain.LabelHearingType: {table: "hearing_types", label: "description"},
	domain.LabelAuthor:      {table: "authors", label: "name"},
}

// Repo provides label lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lookup repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Labels returns the label of every id of kind that exists. Missing ids are
// absent from the result.
func (r *Repo) Labels(ctx context.Context, kind domain.LabelKind, ids []int64) (map[int64]string, error) {
	src, ok := sources[kind]
	if !ok {
		return nil, domain.NewValidationError("kind", fmt.Sprintf("unknown label kind %q", kind))
	}
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("id", src.label).
		From(src.table).
		Where(sq.Eq{"id": ids})

	type pair struct {
		id    int64
		label string
	}
	pairs, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (pair, error) {
		var p pair
		err := row.Scan(&p.id, &p.label)
		return p, err
	})
	if err != nil {
		return nil, postgres.MapError(err, fmt.Sprintf("labels %s", kind))
	}

	out := make(map[int64]string, len(pairs))
	for _, p := range pairs {
		out[p.id] = p.label
	}
	return out, nil
}

// All returns every row of kind as id/label pairs ordered by label, for
// filter choice lists.
func (r *Repo) All(ctx context.Context, kind domain.LabelKind) ([]domain.Choice, error) {
	src, ok := sources[kind]
	if !ok {
		return nil, domain.NewValidationError("kind", fmt.Sprintf("unknown label kind %q", kind))
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("id", src.label+" AS label").
		From(src.table).
		OrderBy("label", "id")

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.Choice, error) {
		var c domain.Choice
		err := row.Scan(&c.ID, &c.Label)
		return c, err
	})
	if err != nil {
		return nil, postgres.MapError(err, fmt.Sprintf("choices %s", kind))
	}
	return out, nil
}
