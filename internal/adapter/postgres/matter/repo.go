// Package matter reads legislative matters, their tramitação history and
// authorship counts with filters built by squirrel.
package matter

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/sapl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// Repo provides matter persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new matter repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var matterColumns = []string{
	"m.id", "m.type_id", "m.number", "m.year", "m.presentation_date",
	"m.protocol_number", "m.in_tramitacao", "m.summary",
}

func scanMatter(row pgx.CollectableRow) (domain.Matter, error) {
	var m domain.Matter
	err := row.Scan(&m.ID, &m.TypeID, &m.Number, &m.Year, &m.PresentationDate,
		&m.ProtocolNumber, &m.InTramitacao, &m.Summary)
	return m, err
}

// ---------------------------------------------------------------------------
// Matters
// ---------------------------------------------------------------------------

// List returns the matters matching f, newest first.
func (r *Repo) List(ctx context.Context, f domain.MatterFilter) ([]domain.Matter, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select(matterColumns...).
		From("matters m")
	b = applyMatterFilter(b, f).OrderBy("m.year DESC", "m.number DESC", "m.id")

	out, err := postgres.Collect(ctx, q, b, scanMatter)
	if err != nil {
		return nil, postgres.MapError(err, "list matters")
	}
	return out, nil
}

// CountByType returns the number of matters matching f per type id.
// Types without matters are absent.
func (r *Repo) CountByType(ctx context.Context, f domain.MatterFilter) (map[int64]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("m.type_id", "COUNT(*)").
		From("matters m")
	b = applyMatterFilter(b, f).GroupBy("m.type_id")

	counts, err := postgres.CountsByID(ctx, q, b)
	if err != nil {
		return nil, postgres.MapError(err, "count matters by type")
	}
	return counts, nil
}

// MatterTypes returns every matter type ordered by description.
func (r *Repo) MatterTypes(ctx context.Context) ([]domain.MatterType, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("id", "acronym", "description").
		From("matter_types").
		OrderBy("description", "id")

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.MatterType, error) {
		var mt domain.MatterType
		err := row.Scan(&mt.ID, &mt.Acronym, &mt.Description)
		return mt, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "list matter types")
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Authorship
// ---------------------------------------------------------------------------

// AuthorshipCounts returns, for matters of year, the number of matters per
// (author, type) credited as primary authorship or as co-authorship.
// Rows are ordered by author then type so that equal authors are adjacent.
func (r *Repo) AuthorshipCounts(ctx context.Context, year int, primary bool) ([]domain.AuthorshipCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("a.author_id", "m.type_id", "COUNT(*)").
		From("authorships a").
		Join("matters m ON m.id = a.matter_id").
		Where(sq.Eq{"m.year": year, "a.primary_author": primary}).
		GroupBy("a.author_id", "m.type_id").
		OrderBy("a.author_id", "m.type_id")

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.AuthorshipCount, error) {
		var c domain.AuthorshipCount
		err := row.Scan(&c.AuthorID, &c.TypeID, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "authorship counts")
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Tramitação
// ---------------------------------------------------------------------------

// Tramitacoes returns the tramitação records matching f with the identifying
// fields of their matters.
func (r *Repo) Tramitacoes(ctx context.Context, f domain.TramitacaoFilter) ([]domain.TramitacaoLine, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select(
			"t.id", "t.matter_id", "t.origin_unit_id", "t.destination_unit_id", "t.status_id",
			"t.recorded_date", "t.deadline_date", "t.text",
			"m.type_id", "m.number", "m.year",
		).
		From("tramitacoes t").
		Join("matters m ON m.id = t.matter_id")
	b = applyTramitacaoFilter(b, f).OrderBy("m.year DESC", "m.number DESC", "t.id")

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.TramitacaoLine, error) {
		var l domain.TramitacaoLine
		err := row.Scan(&l.ID, &l.MatterID, &l.OriginUnitID, &l.DestinationUnitID, &l.StatusID,
			&l.RecordedDate, &l.DeadlineDate, &l.Text,
			&l.MatterTypeID, &l.MatterNumber, &l.MatterYear)
		return l, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "list tramitacoes")
	}
	return out, nil
}
