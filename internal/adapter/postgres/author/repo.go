// Package author reads authors and the entities they stand for.
package author

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/sapl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// Repo provides author persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new author repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var collectiveTables = map[domain.ContentType]string{
	domain.ContentFront: "fronts",
	domain.ContentBench: "benches",
	domain.ContentBloc:  "blocs",
	domain.ContentOrgan: "organs",
}

var authorColumns = []string{"id", "type_id", "content_type", "object_id", "name", "cargo", "user_id"}

func scanAuthor(row pgx.CollectableRow) (domain.Author, error) {
	var (
		a  domain.Author
		ct *string
	)
	if err := row.Scan(&a.ID, &a.TypeID, &ct, &a.ObjectID, &a.Name, &a.Cargo, &a.UserID); err != nil {
		return domain.Author{}, err
	}
	if ct != nil {
		kind := domain.ContentType(*ct)
		a.ContentType = &kind
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// Authors
// ---------------------------------------------------------------------------

// ListPage returns one page of authors ordered by name, and the total count.
func (r *Repo) ListPage(ctx context.Context, limit, offset int) ([]domain.Author, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	total, err := postgres.Count(ctx, q, postgres.Builder().Select("COUNT(*)").From("authors"))
	if err != nil {
		return nil, 0, postgres.MapError(err, "count authors")
	}

	b := postgres.Builder().
		Select(authorColumns...).
		From("authors").
		OrderBy("name", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	out, err := postgres.Collect(ctx, q, b, scanAuthor)
	if err != nil {
		return nil, 0, postgres.MapError(err, "list authors")
	}
	return out, total, nil
}

// GetByIDs returns the authors with the given ids. Missing ids are skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select(authorColumns...).
		From("authors").
		Where(sq.Eq{"id": ids})

	out, err := postgres.Collect(ctx, q, b, scanAuthor)
	if err != nil {
		return nil, postgres.MapError(err, "get authors")
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Subjects
// ---------------------------------------------------------------------------

// Parliamentarians returns the parliamentarians with the given ids.
func (r *Repo) Parliamentarians(ctx context.Context, ids []int64) ([]domain.Parliamentarian, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("id", "full_name", "name", "party", "active").
		From("parliamentarians").
		Where(sq.Eq{"id": ids})

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.Parliamentarian, error) {
		var p domain.Parliamentarian
		err := row.Scan(&p.ID, &p.FullName, &p.Name, &p.Party, &p.Active)
		return p, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "get parliamentarians")
	}
	return out, nil
}

// Committees returns the committees with the given ids.
func (r *Repo) Committees(ctx context.Context, ids []int64) ([]domain.Committee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("id", "name", "acronym").
		From("committees").
		Where(sq.Eq{"id": ids})

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.Committee, error) {
		var c domain.Committee
		err := row.Scan(&c.ID, &c.Name, &c.Acronym)
		return c, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "get committees")
	}
	return out, nil
}

// Collectives returns fronts, benches, blocs or organs, depending on kind,
// with the given ids.
func (r *Repo) Collectives(ctx context.Context, kind domain.ContentType, ids []int64) ([]domain.Collective, error) {
	table, ok := collectiveTables[kind]
	if !ok {
		return nil, domain.NewValidationError("content_type", fmt.Sprintf("%q is not a collective", kind))
	}
	if len(ids) == 0 {
		return nil, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("id", "name", "acronym").
		From(table).
		Where(sq.Eq{"id": ids})

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.Collective, error) {
		c := domain.Collective{Kind: kind}
		err := row.Scan(&c.ID, &c.Name, &c.Acronym)
		return c, err
	})
	if err != nil {
		return nil, postgres.MapError(err, fmt.Sprintf("get %s", table))
	}
	return out, nil
}
