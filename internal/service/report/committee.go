package report

import (
	"context"
	"fmt"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// Meetings lists committee meetings matching f with committee names.
func (s *Service) Meetings(ctx context.Context, f domain.MeetingFilter) ([]domain.MeetingRow, error) {
	return snapshot(ctx, s.tx, func(ctx context.Context) ([]domain.MeetingRow, error) {
		meetings, err := s.committees.Meetings(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("meetings: %w", err)
		}

		ids := make([]int64, 0, len(meetings))
		for _, m := range meetings {
			ids = append(ids, m.CommitteeID)
		}
		labels := s.labels.Labels(ctx, domain.LabelCommittee, ids)

		out := make([]domain.MeetingRow, 0, len(meetings))
		for _, m := range meetings {
			out = append(out, domain.MeetingRow{Meeting: m, CommitteeLabel: labels[m.CommitteeID]})
		}
		return out, nil
	})
}

// Hearings lists public hearings matching f with hearing type names.
func (s *Service) Hearings(ctx context.Context, f domain.HearingFilter) ([]domain.HearingRow, error) {
	return snapshot(ctx, s.tx, func(ctx context.Context) ([]domain.HearingRow, error) {
		hearings, err := s.committees.Hearings(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("hearings: %w", err)
		}

		ids := make([]int64, 0, len(hearings))
		for _, h := range hearings {
			ids = append(ids, h.TypeID)
		}
		labels := s.labels.Labels(ctx, domain.LabelHearingType, ids)

		out := make([]domain.HearingRow, 0, len(hearings))
		for _, h := range hearings {
			out = append(out, domain.HearingRow{PublicHearing: h, TypeLabel: labels[h.TypeID]})
		}
		return out, nil
	})
}
