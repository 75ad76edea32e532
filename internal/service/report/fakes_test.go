package report

import (
	"context"
	"io"
	"log/slog"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

type sessionRepoFake struct {
	people        []domain.Parliamentarian
	sessionCounts map[int64]int
	agendaCounts  map[int64]int
	sessions      int
	agendas       int
	minutes       []domain.Session
	err           error
}

func (f *sessionRepoFake) ActiveParliamentarians(context.Context, domain.DateRange) ([]domain.Parliamentarian, error) {
	return f.people, f.err
}

func (f *sessionRepoFake) SessionPresenceCounts(context.Context, domain.DateRange) (map[int64]int, error) {
	return f.sessionCounts, f.err
}

func (f *sessionRepoFake) AgendaPresenceCounts(context.Context, domain.DateRange) (map[int64]int, error) {
	return f.agendaCounts, f.err
}

func (f *sessionRepoFake) CountSessions(context.Context, domain.DateRange) (int, error) {
	return f.sessions, f.err
}

func (f *sessionRepoFake) CountAgendaSessions(context.Context, domain.DateRange) (int, error) {
	return f.agendas, f.err
}

func (f *sessionRepoFake) SessionsWithMinutes(context.Context, domain.DateRange) ([]domain.Session, error) {
	return f.minutes, f.err
}

type matterRepoFake struct {
	matters     []domain.Matter
	counts      map[int64]int
	types       []domain.MatterType
	primary     []domain.AuthorshipCount
	coAuthors   []domain.AuthorshipCount
	tramitacoes []domain.TramitacaoLine

	lastFilter domain.MatterFilter
}

func (f *matterRepoFake) List(_ context.Context, mf domain.MatterFilter) ([]domain.Matter, error) {
	f.lastFilter = mf
	return f.matters, nil
}

func (f *matterRepoFake) CountByType(context.Context, domain.MatterFilter) (map[int64]int, error) {
	return f.counts, nil
}

func (f *matterRepoFake) MatterTypes(context.Context) ([]domain.MatterType, error) {
	return f.types, nil
}

func (f *matterRepoFake) AuthorshipCounts(_ context.Context, _ int, primary bool) ([]domain.AuthorshipCount, error) {
	if primary {
		return f.primary, nil
	}
	return f.coAuthors, nil
}

func (f *matterRepoFake) Tramitacoes(context.Context, domain.TramitacaoFilter) ([]domain.TramitacaoLine, error) {
	return f.tramitacoes, nil
}

type committeeRepoFake struct {
	meetings []domain.Meeting
	hearings []domain.PublicHearing
}

func (f *committeeRepoFake) Meetings(context.Context, domain.MeetingFilter) ([]domain.Meeting, error) {
	return f.meetings, nil
}

func (f *committeeRepoFake) Hearings(context.Context, domain.HearingFilter) ([]domain.PublicHearing, error) {
	return f.hearings, nil
}

// labelerFake resolves from fixed tables; unknown ids map to "".
type labelerFake struct {
	labels  map[domain.LabelKind]map[int64]string
	authors map[int64]domain.ResolvedAuthor
}

func (f *labelerFake) Labels(_ context.Context, kind domain.LabelKind, ids []int64) map[int64]string {
	out := make(map[int64]string, len(ids))
	for _, id := range ids {
		out[id] = f.labels[kind][id]
	}
	return out
}

func (f *labelerFake) Authors(_ context.Context, ids []int64) map[int64]domain.ResolvedAuthor {
	out := make(map[int64]domain.ResolvedAuthor)
	for _, id := range ids {
		if ra, ok := f.authors[id]; ok {
			out[id] = ra
		}
	}
	return out
}

type txManagerFake struct {
	runs int
}

func (m *txManagerFake) RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runs++
	return fn(ctx)
}

type fixture struct {
	sessions   *sessionRepoFake
	matters    *matterRepoFake
	committees *committeeRepoFake
	labels     *labelerFake
	tx         *txManagerFake
}

func newFixture() *fixture {
	return &fixture{
		sessions:   &sessionRepoFake{},
		matters:    &matterRepoFake{},
		committees: &committeeRepoFake{},
		labels:     &labelerFake{labels: map[domain.LabelKind]map[int64]string{}},
		tx:         &txManagerFake{},
	}
}

func (f *fixture) service() *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)),
		f.sessions, f.matters, f.committees, f.labels, f.tx)
}
