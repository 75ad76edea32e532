package report

import (
	"context"
	"fmt"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// Tramitacoes lists the tramitação records matching f with every id
// resolved to its label. f.DateField picks the history (recorded date) or
// the deadline report.
func (s *Service) Tramitacoes(ctx context.Context, f domain.TramitacaoFilter) (domain.TramitacaoReport, error) {
	return snapshot(ctx, s.tx, func(ctx context.Context) (domain.TramitacaoReport, error) {
		var rep domain.TramitacaoReport

		lines, err := s.matters.Tramitacoes(ctx, f)
		if err != nil {
			return rep, fmt.Errorf("tramitacoes: %w", err)
		}

		var typeIDs, statusIDs, unitIDs []int64
		perType := make(map[int64]int)
		seenMatter := make(map[int64]bool)
		for _, l := range lines {
			typeIDs = append(typeIDs, l.MatterTypeID)
			statusIDs = append(statusIDs, l.StatusID)
			unitIDs = append(unitIDs, l.DestinationUnitID)
			if l.OriginUnitID != nil {
				unitIDs = append(unitIDs, *l.OriginUnitID)
			}
			if !seenMatter[l.MatterID] {
				seenMatter[l.MatterID] = true
				perType[l.MatterTypeID]++
			}
		}

		if rep.TypeCounts, err = s.typeCounts(ctx, perType); err != nil {
			return rep, err
		}

		types := s.labels.Labels(ctx, domain.LabelMatterType, typeIDs)
		statuses := s.labels.Labels(ctx, domain.LabelStatus, statusIDs)
		units := s.labels.Labels(ctx, domain.LabelUnit, unitIDs)

		rep.Rows = make([]domain.TramitacaoRow, 0, len(lines))
		for _, l := range lines {
			row := domain.TramitacaoRow{
				TramitacaoLine:   l,
				MatterTypeLabel:  types[l.MatterTypeID],
				StatusLabel:      statuses[l.StatusID],
				DestinationLabel: units[l.DestinationUnitID],
			}
			if l.OriginUnitID != nil {
				row.OriginLabel = units[*l.OriginUnitID]
			}
			rep.Rows = append(rep.Rows, row)
		}
		return rep, nil
	})
}
