package matter

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// latestJoin attaches each matter's most recent tramitação record as "lt".
// The join is inner, so matters without any record drop out.
const latestJoin = `LATERAL (
	SELECT t.destination_unit_id, t.status_id
	FROM tramitacoes t
	WHERE t.matter_id = m.id
	ORDER BY t.id DESC
	LIMIT 1
) lt ON TRUE`

// applyMatterFilter adds the WHERE clauses for f to a query selecting from
// "matters m". Nil fields are skipped.
func applyMatterFilter(b sq.SelectBuilder, f domain.MatterFilter) sq.SelectBuilder {
	if f.Year != nil {
		b = b.Where(sq.Eq{"m.year": *f.Year})
	}
	if f.TypeID != nil {
		b = b.Where(sq.Eq{"m.type_id": *f.TypeID})
	}
	if f.Presented != nil {
		b = b.Where(sq.Expr("m.presentation_date BETWEEN ? AND ?", f.Presented.From, f.Presented.To))
	}
	if f.AuthorID != nil {
		b = b.Where(sq.Expr(
			"EXISTS (SELECT 1 FROM authorships a WHERE a.matter_id = m.id AND a.author_id = ?)",
			*f.AuthorID,
		))
	}
	if f.InTramitacao || len(f.Latest) > 0 {
		b = b.Where(sq.Eq{"m.in_tramitacao": true})
	}
	if len(f.Latest) > 0 {
		b = b.JoinClause("JOIN " + latestJoin)
		for _, l := range f.Latest {
			switch l.Field {
			case domain.LatestByDestination:
				b = b.Where(sq.Eq{"lt.destination_unit_id": l.ID})
			case domain.LatestByStatus:
				b = b.Where(sq.Eq{"lt.status_id": l.ID})
			}
		}
	}
	return b
}

// applyTramitacaoFilter adds the WHERE clauses for f to a query selecting
// from "tramitacoes t" joined with "matters m".
func applyTramitacaoFilter(b sq.SelectBuilder, f domain.TramitacaoFilter) sq.SelectBuilder {
	column := "t.recorded_date"
	if f.DateField == domain.TramitacaoDeadline {
		column = "t.deadline_date"
	}
	b = b.Where(sq.Expr(column+" BETWEEN ? AND ?", f.Range.From, f.Range.To))

	if f.MatterTypeID != nil {
		b = b.Where(sq.Eq{"m.type_id": *f.MatterTypeID})
	}
	if f.StatusID != nil {
		b = b.Where(sq.Eq{"t.status_id": *f.StatusID})
	}
	if f.OriginUnitID != nil {
		b = b.Where(sq.Eq{"t.origin_unit_id": *f.OriginUnitID})
	}
	return b
}
