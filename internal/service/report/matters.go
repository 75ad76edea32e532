package report

import (
	"context"
	"fmt"
	"slices"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/pkg/grouping"
)

// CountByType returns, over every matter type, the number of matters
// matching f. Types with no matters are left out.
func (s *Service) CountByType(ctx context.Context, f domain.MatterFilter) ([]domain.TypeCount, error) {
	return snapshot(ctx, s.tx, func(ctx context.Context) ([]domain.TypeCount, error) {
		return s.countByType(ctx, f)
	})
}

func (s *Service) countByType(ctx context.Context, f domain.MatterFilter) ([]domain.TypeCount, error) {
	counts, err := s.matters.CountByType(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}
	return s.typeCounts(ctx, counts)
}

// typeCounts projects counts onto the matter type enumeration.
func (s *Service) typeCounts(ctx context.Context, counts map[int64]int) ([]domain.TypeCount, error) {
	types, err := s.matters.MatterTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("matter types: %w", err)
	}

	out := make([]domain.TypeCount, 0, len(counts))
	for _, mt := range types {
		if n := counts[mt.ID]; n > 0 {
			out = append(out, domain.TypeCount{TypeID: mt.ID, Label: mt.Description, Count: n})
		}
	}
	return out, nil
}

// MattersInTramitacao lists matters in tramitação matching f, with the
// latest-record predicates applied, plus per-type totals.
func (s *Service) MattersInTramitacao(ctx context.Context, f domain.MatterFilter) (domain.MattersReport, error) {
	f.InTramitacao = true
	return s.matterList(ctx, f)
}

// MattersByAuthor lists matters presented in a period, optionally narrowed
// by type and author, plus per-type totals.
func (s *Service) MattersByAuthor(ctx context.Context, f domain.MatterFilter) (domain.MattersReport, error) {
	return s.matterList(ctx, f)
}

func (s *Service) matterList(ctx context.Context, f domain.MatterFilter) (domain.MattersReport, error) {
	return snapshot(ctx, s.tx, func(ctx context.Context) (domain.MattersReport, error) {
		var rep domain.MattersReport

		matters, err := s.matters.List(ctx, f)
		if err != nil {
			return rep, fmt.Errorf("list matters: %w", err)
		}
		if rep.TypeCounts, err = s.countByType(ctx, f); err != nil {
			return rep, err
		}

		typeIDs := make([]int64, 0, len(matters))
		for _, m := range matters {
			typeIDs = append(typeIDs, m.TypeID)
		}
		labels := s.labels.Labels(ctx, domain.LabelMatterType, typeIDs)

		rep.Matters = make([]domain.MatterRow, 0, len(matters))
		for _, m := range matters {
			rep.Matters = append(rep.Matters, domain.MatterRow{Matter: m, TypeLabel: labels[m.TypeID]})
		}
		return rep, nil
	})
}

// ---------------------------------------------------------------------------
// By author and year
// ---------------------------------------------------------------------------

// MattersByAuthorYear groups the matters of year by primary author and by
// co-author, with per-type counts inside each group.
func (s *Service) MattersByAuthorYear(ctx context.Context, year int) (domain.MattersByAuthorYearReport, error) {
	return snapshot(ctx, s.tx, func(ctx context.Context) (domain.MattersByAuthorYearReport, error) {
		rep := domain.MattersByAuthorYearReport{Year: year}

		var err error
		if rep.TypeCounts, err = s.countByType(ctx, domain.MatterFilter{Year: &year}); err != nil {
			return rep, err
		}

		primary, err := s.matters.AuthorshipCounts(ctx, year, true)
		if err != nil {
			return rep, fmt.Errorf("primary authorships: %w", err)
		}
		coAuthors, err := s.matters.AuthorshipCounts(ctx, year, false)
		if err != nil {
			return rep, fmt.Errorf("co-authorships: %w", err)
		}

		authorIDs := make([]int64, 0, len(primary)+len(coAuthors))
		typeIDs := make([]int64, 0, len(primary)+len(coAuthors))
		for _, c := range slices.Concat(primary, coAuthors) {
			authorIDs = append(authorIDs, c.AuthorID)
			typeIDs = append(typeIDs, c.TypeID)
		}
		authors := s.labels.Authors(ctx, authorIDs)
		types := s.labels.Labels(ctx, domain.LabelMatterType, typeIDs)

		name := func(id int64) string {
			if ra, ok := authors[id]; ok {
				return ra.Subject.DisplayName()
			}
			return ""
		}

		rep.Primary = GroupByAuthor(primary, name, types)
		rep.CoAuthors = GroupByAuthor(coAuthors, name, types)
		return rep, nil
	})
}

// GroupByAuthor folds authorship counts, which must be ordered by author,
// into one group per author with a running total.
func GroupByAuthor(counts []domain.AuthorshipCount, name func(int64) string, typeLabels map[int64]string) []domain.AuthorGroup {
	groups := grouping.Adjacent(
		slices.Values(counts),
		func(c domain.AuthorshipCount) int64 { return c.AuthorID },
		func(c domain.AuthorshipCount) domain.AuthorGroup {
			return domain.AuthorGroup{AuthorID: c.AuthorID, Author: name(c.AuthorID)}
		},
		func(g domain.AuthorGroup, c domain.AuthorshipCount) domain.AuthorGroup {
			g.Matters = append(g.Matters, domain.TypeCount{TypeID: c.TypeID, Label: typeLabels[c.TypeID], Count: c.Count})
			g.Total += c.Count
			return g
		},
	)
	return slices.Collect(groups)
}
