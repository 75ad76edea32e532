// Package protocol reads protocols and the matters that reference them for
// the consistency audit.
package protocol

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/sapl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// Repo provides protocol persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new protocol repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const countMattersSQL = `
SELECT COUNT(*) FROM matters WHERE year = $1 AND protocol_number = $2`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListAll returns every protocol in primary-key order.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Protocol, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("id", "year", "number", "created_at").
		From("protocols").
		OrderBy("id")

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.Protocol, error) {
		var p domain.Protocol
		err := row.Scan(&p.ID, &p.Year, &p.Number, &p.CreatedAt)
		return p, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "list protocols")
	}
	return out, nil
}

// CountMatters returns how many matters declare the protocol (number, year).
func (r *Repo) CountMatters(ctx context.Context, key domain.ProtocolKey) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var n int
	if err := q.QueryRow(ctx, countMattersSQL, key.Year, key.Number).Scan(&n); err != nil {
		return 0, postgres.MapError(err, fmt.Sprintf("count matters of protocol %d/%d", key.Number, key.Year))
	}
	return n, nil
}

// MattersWithProtocol returns matters that declare a non-zero protocol
// number, ordered by year descending then id.
func (r *Repo) MattersWithProtocol(ctx context.Context) ([]domain.Matter, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Builder().
		Select("id", "type_id", "number", "year", "presentation_date",
			"protocol_number", "in_tramitacao", "summary").
		From("matters").
		Where(sq.NotEq{"protocol_number": nil}).
		Where(sq.NotEq{"protocol_number": 0}).
		OrderBy("year DESC", "id")

	out, err := postgres.Collect(ctx, q, b, func(row pgx.CollectableRow) (domain.Matter, error) {
		var m domain.Matter
		err := row.Scan(&m.ID, &m.TypeID, &m.Number, &m.Year, &m.PresentationDate,
			&m.ProtocolNumber, &m.InTramitacao, &m.Summary)
		return m, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "matters with protocol")
	}
	return out, nil
}
