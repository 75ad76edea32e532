// Package committee reads committee meetings and public hearings.
package committee

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/sapl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// Repo provides meeting and hearing persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new committee repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Meetings returns committee meetings held inside f.Range, most recent first.
func (r *Repo) Meetings(ctx context.Context, f domain.MeetingFilter) ([]domain.Meeting, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("id", "committee_id", "number", "name", "date").
		From("meetings").
		Where(sq.Expr("date BETWEEN ? AND ?", f.Range.From, f.Range.To))
	if f.CommitteeID != nil {
		b = b.Where(sq.Eq{"committee_id": *f.CommitteeID})
	}
	b = b.OrderBy("date DESC", "id DESC")

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.Meeting, error) {
		var m domain.Meeting
		err := row.Scan(&m.ID, &m.CommitteeID, &m.Number, &m.Name, &m.Date)
		return m, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "list meetings")
	}
	return out, nil
}

// Hearings returns public hearings held inside f.Range, most recent first.
func (r *Repo) Hearings(ctx context.Context, f domain.HearingFilter) ([]domain.PublicHearing, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("id", "type_id", "number", "name", "date").
		From("public_hearings").
		Where(sq.Expr("date BETWEEN ? AND ?", f.Range.From, f.Range.To))
	if f.TypeID != nil {
		b = b.Where(sq.Eq{"type_id": *f.TypeID})
	}
	b = b.OrderBy("date DESC", "id DESC")

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.PublicHearing, error) {
		var h domain.PublicHearing
		err := row.Scan(&h.ID, &h.TypeID, &h.Number, &h.Name, &h.Date)
		return h, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "list hearings")
	}
	return out, nil
}
