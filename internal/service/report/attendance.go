package report

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// Attendance counts, for every parliamentarian with a mandate overlapping
// period, the session and order-of-the-day presences inside period.
func (s *Service) Attendance(ctx context.Context, period domain.DateRange) (domain.AttendanceReport, error) {
	return snapshot(ctx, s.tx, func(ctx context.Context) (domain.AttendanceReport, error) {
		rep := domain.AttendanceReport{Period: period}

		people, err := s.sessions.ActiveParliamentarians(ctx, period)
		if err != nil {
			return rep, fmt.Errorf("attendance: %w", err)
		}
		sessionCounts, err := s.sessions.SessionPresenceCounts(ctx, period)
		if err != nil {
			return rep, fmt.Errorf("attendance: %w", err)
		}
		agendaCounts, err := s.sessions.AgendaPresenceCounts(ctx, period)
		if err != nil {
			return rep, fmt.Errorf("attendance: %w", err)
		}
		if rep.TotalSessions, err = s.sessions.CountSessions(ctx, period); err != nil {
			return rep, fmt.Errorf("attendance: %w", err)
		}
		if rep.TotalAgendaSessions, err = s.sessions.CountAgendaSessions(ctx, period); err != nil {
			return rep, fmt.Errorf("attendance: %w", err)
		}

		rep.Rows = make([]domain.AttendanceRow, 0, len(people))
		for _, p := range people {
			sc, ok := sessionCounts[p.ID]
			if !ok {
				s.log.DebugContext(ctx, "no session presences", slog.Int64("parliamentarian_id", p.ID))
			}
			ac := agendaCounts[p.ID]
			rep.Rows = append(rep.Rows, domain.AttendanceRow{
				Parliamentarian:   p,
				SessionCount:      sc,
				SessionPercentage: Percentage(sc, rep.TotalSessions),
				AgendaCount:       ac,
				AgendaPercentage:  Percentage(ac, rep.TotalAgendaSessions),
			})
		}
		return rep, nil
	})
}

// Percentage returns count*100/total rounded to two decimals, half to even
// on the exact binary value, as Python's round(x, 2) does. A zero total
// yields 0.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	p := float64(count) * 100 / float64(total)
	// FormatFloat rounds the exact value correctly, ties to even.
	r, _ := strconv.ParseFloat(strconv.FormatFloat(p, 'f', 2, 64), 64)
	return r
}

// Minutes returns the sessions inside period that have minutes uploaded.
func (s *Service) Minutes(ctx context.Context, period domain.DateRange) ([]domain.Session, error) {
	return snapshot(ctx, s.tx, func(ctx context.Context) ([]domain.Session, error) {
		sessions, err := s.sessions.SessionsWithMinutes(ctx, period)
		if err != nil {
			return nil, fmt.Errorf("minutes: %w", err)
		}
		return sessions, nil
	})
}
