// Package session reads plenary sessions, presences and mandates for the
// attendance and minutes reports.
package session

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/sapl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// Repo provides session persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new session repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Parliamentarians
// ---------------------------------------------------------------------------

// ActiveParliamentarians returns the parliamentarians holding a mandate that
// overlaps period, ordered by name.
func (r *Repo) ActiveParliamentarians(ctx context.Context, period domain.DateRange) ([]domain.Parliamentarian, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("p.id", "p.full_name", "p.name", "p.party", "p.active").
		Distinct().
		From("parliamentarians p").
		Join("mandates m ON m.parliamentarian_id = p.id").
		Where(sq.LtOrEq{"m.start_date": period.To}).
		Where(sq.Or{sq.Eq{"m.end_date": nil}, sq.GtOrEq{"m.end_date": period.From}}).
		OrderBy("p.name", "p.id")

	out, err := postgres.Collect(ctx, q, b, scanParliamentarian)
	if err != nil {
		return nil, postgres.MapError(err, "active parliamentarians")
	}
	return out, nil
}

func scanParliamentarian(row pgx.CollectableRow) (domain.Parliamentarian, error) {
	var p domain.Parliamentarian
	err := row.Scan(&p.ID, &p.FullName, &p.Name, &p.Party, &p.Active)
	return p, err
}

// ---------------------------------------------------------------------------
// Presences
// ---------------------------------------------------------------------------

// SessionPresenceCounts returns, per parliamentarian id, the number of
// session presences in sessions that started inside period.
func (r *Repo) SessionPresenceCounts(ctx context.Context, period domain.DateRange) (map[int64]int, error) {
	counts, err := r.presenceCounts(ctx, "session_presences", period)
	if err != nil {
		return nil, postgres.MapError(err, "session presence counts")
	}
	return counts, nil
}

// AgendaPresenceCounts is SessionPresenceCounts for order-of-the-day presences.
func (r *Repo) AgendaPresenceCounts(ctx context.Context, period domain.DateRange) (map[int64]int, error) {
	counts, err := r.presenceCounts(ctx, "agenda_presences", period)
	if err != nil {
		return nil, postgres.MapError(err, "agenda presence counts")
	}
	return counts, nil
}

func (r *Repo) presenceCounts(ctx context.Context, table string, period domain.DateRange) (map[int64]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("pr.parliamentarian_id", "COUNT(*)").
		From(table + " pr").
		Join("plenary_sessions s ON s.id = pr.session_id").
		Where(sq.Expr("s.start_date BETWEEN ? AND ?", period.From, period.To)).
		GroupBy("pr.parliamentarian_id")

	return postgres.CountsByID(ctx, q, b)
}

// CountSessions returns the number of sessions that started inside period.
func (r *Repo) CountSessions(ctx context.Context, period domain.DateRange) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("COUNT(*)").
		From("plenary_sessions").
		Where(sq.Expr("start_date BETWEEN ? AND ?", period.From, period.To))

	n, err := postgres.Count(ctx, q, b)
	if err != nil {
		return 0, postgres.MapError(err, "count sessions")
	}
	return n, nil
}

// CountAgendaSessions returns the number of distinct sessions inside period
// with at least one order-of-the-day presence.
func (r *Repo) CountAgendaSessions(ctx context.Context, period domain.DateRange) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("COUNT(DISTINCT ap.session_id)").
		From("agenda_presences ap").
		Join("plenary_sessions s ON s.id = ap.session_id").
		Where(sq.Expr("s.start_date BETWEEN ? AND ?", period.From, period.To))

	n, err := postgres.Count(ctx, q, b)
	if err != nil {
		return 0, postgres.MapError(err, "count agenda sessions")
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Minutes
// ---------------------------------------------------------------------------

// SessionsWithMinutes returns sessions inside period that have minutes
// uploaded, most recent first.
func (r *Repo) SessionsWithMinutes(ctx context.Context, period domain.DateRange) ([]domain.Session, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("id", "number", "start_date", "minutes_path").
		From("plenary_sessions").
		Where(sq.Expr("start_date BETWEEN ? AND ?", period.From, period.To)).
		Where(sq.NotEq{"minutes_path": nil}).
		Where(sq.NotEq{"minutes_path": ""}).
		OrderBy("start_date DESC", "id DESC")

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.Session, error) {
		var s domain.Session
		err := row.Scan(&s.ID, &s.Number, &s.StartDate, &s.MinutesPath)
		return s, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "sessions with minutes")
	}
	return out, nil
}
