package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/internal/i18n"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLocalizer() *i18n.Localizer {
	return i18n.New("pt-BR")
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

// reportServiceFake records the last filter it was called with.
type reportServiceFake struct {
	err error

	attendance  domain.AttendanceReport
	matters     domain.MattersReport
	tramitacoes domain.TramitacaoReport
	byYear      domain.MattersByAuthorYearReport

	calls        int
	lastPeriod   domain.DateRange
	lastMatter   domain.MatterFilter
	lastTram     domain.TramitacaoFilter
	lastYear     int
	lastMeeting  domain.MeetingFilter
	lastHearings domain.HearingFilter
}

func (f *reportServiceFake) Minutes(_ context.Context, p domain.DateRange) ([]domain.Session, error) {
	f.calls++
	f.lastPeriod = p
	return nil, f.err
}

func (f *reportServiceFake) Attendance(_ context.Context, p domain.DateRange) (domain.AttendanceReport, error) {
	f.calls++
	f.lastPeriod = p
	return f.attendance, f.err
}

func (f *reportServiceFake) Tramitacoes(_ context.Context, tf domain.TramitacaoFilter) (domain.TramitacaoReport, error) {
	f.calls++
	f.lastTram = tf
	return f.tramitacoes, f.err
}

func (f *reportServiceFake) Meetings(_ context.Context, mf domain.MeetingFilter) ([]domain.MeetingRow, error) {
	f.calls++
	f.lastMeeting = mf
	return nil, f.err
}

func (f *reportServiceFake) Hearings(_ context.Context, hf domain.HearingFilter) ([]domain.HearingRow, error) {
	f.calls++
	f.lastHearings = hf
	return nil, f.err
}

func (f *reportServiceFake) MattersInTramitacao(_ context.Context, mf domain.MatterFilter) (domain.MattersReport, error) {
	f.calls++
	f.lastMatter = mf
	return f.matters, f.err
}

func (f *reportServiceFake) MattersByAuthor(_ context.Context, mf domain.MatterFilter) (domain.MattersReport, error) {
	f.calls++
	f.lastMatter = mf
	return f.matters, f.err
}

func (f *reportServiceFake) MattersByAuthorYear(_ context.Context, year int) (domain.MattersByAuthorYearReport, error) {
	f.calls++
	f.lastYear = year
	return f.byYear, f.err
}

type labelerFake map[domain.LabelKind]map[int64]string

func (f labelerFake) Labels(_ context.Context, kind domain.LabelKind, ids []int64) map[int64]string {
	out := make(map[int64]string, len(ids))
	for _, id := range ids {
		out[id] = f[kind][id]
	}
	return out
}

type choiceSourceFake struct {
	choices map[domain.LabelKind][]domain.Choice
	err     error
}

func (f *choiceSourceFake) All(_ context.Context, kind domain.LabelKind) ([]domain.Choice, error) {
	return f.choices[kind], f.err
}
