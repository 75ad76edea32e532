// Package report builds the legislative reports. Every report reads one
// consistent snapshot of the store and resolves ids to labels through a
// lenient labeler, so a missing label never fails a report.
package report

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

type sessionRepo interface {
	ActiveParliamentarians(ctx context.Context, period domain.DateRange) ([]domain.Parliamentarian, error)
	SessionPresenceCounts(ctx context.Context, period domain.DateRange) (map[int64]int, error)
	AgendaPresenceCounts(ctx context.Context, period domain.DateRange) (map[int64]int, error)
	CountSessions(ctx context.Context, period domain.DateRange) (int, error)
	CountAgendaSessions(ctx context.Context, period domain.DateRange) (int, error)
	SessionsWithMinutes(ctx context.Context, period domain.DateRange) ([]domain.Session, error)
}

type matterRepo interface {
	List(ctx context.Context, f domain.MatterFilter) ([]domain.Matter, error)
	CountByType(ctx context.Context, f domain.MatterFilter) (map[int64]int, error)
	MatterTypes(ctx context.Context) ([]domain.MatterType, error)
	AuthorshipCounts(ctx context.Context, year int, primary bool) ([]domain.AuthorshipCount, error)
	Tramitacoes(ctx context.Context, f domain.TramitacaoFilter) ([]domain.TramitacaoLine, error)
}

type committeeRepo interface {
	Meetings(ctx context.Context, f domain.MeetingFilter) ([]domain.Meeting, error)
	Hearings(ctx context.Context, f domain.HearingFilter) ([]domain.PublicHearing, error)
}

type labeler interface {
	Labels(ctx context.Context, kind domain.LabelKind, ids []int64) map[int64]string
	Authors(ctx context.Context, ids []int64) map[int64]domain.ResolvedAuthor
}

type txManager interface {
	RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides the report operations.
type Service struct {
	sessions   sessionRepo
	matters    matterRepo
	committees committeeRepo
	labels     labeler
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new report Service.
func NewService(
	log *slog.Logger,
	sessions sessionRepo,
	matters matterRepo,
	committees committeeRepo,
	labels labeler,
	tx txManager,
) *Service {
	return &Service{
		sessions:   sessions,
		matters:    matters,
		committees: committees,
		labels:     labels,
		tx:         tx,
		log:        log.With("service", "report"),
	}
}

// snapshot runs fn inside one read-only transaction and returns its value.
func snapshot[T any](ctx context.Context, tx txManager, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}
