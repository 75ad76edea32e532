package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/internal/filter"
	"github.com/heartmarshall/sapl-backend/internal/i18n"
	"github.com/heartmarshall/sapl-backend/internal/service/report"
	"github.com/heartmarshall/sapl-backend/internal/transport/web"
)

type reportService interface {
	Minutes(ctx context.Context, period domain.DateRange) ([]domain.Session, error)
	Attendance(ctx context.Context, period domain.DateRange) (domain.AttendanceReport, error)
	Tramitacoes(ctx context.Context, f domain.TramitacaoFilter) (domain.TramitacaoReport, error)
	Meetings(ctx context.Context, f domain.MeetingFilter) ([]domain.MeetingRow, error)
	Hearings(ctx context.Context, f domain.HearingFilter) ([]domain.HearingRow, error)
	MattersInTramitacao(ctx context.Context, f domain.MatterFilter) (domain.MattersReport, error)
	MattersByAuthor(ctx context.Context, f domain.MatterFilter) (domain.MattersReport, error)
	MattersByAuthorYear(ctx context.Context, year int) (domain.MattersByAuthorYearReport, error)
}

type labeler interface {
	Labels(ctx context.Context, kind domain.LabelKind, ids []int64) map[int64]string
}

type choiceSource interface {
	All(ctx context.Context, kind domain.LabelKind) ([]domain.Choice, error)
}

// selectField is a filter field whose value is an id of a label table.
type selectField struct {
	name string
	kind domain.LabelKind
}

var (
	tramitacaoSelects = []selectField{
		{report.FieldType, domain.LabelMatterType},
		{report.FieldStatus, domain.LabelStatus},
		{report.FieldOrigin, domain.LabelUnit},
	}
	mattersInTramitacaoSelects = []selectField{
		{report.FieldType, domain.LabelMatterType},
		{report.FieldStatus, domain.LabelStatus},
		{report.FieldDestination, domain.LabelUnit},
	}
	mattersByAuthorSelects = []selectField{
		{report.FieldType, domain.LabelMatterType},
		{report.FieldAuthor, domain.LabelAuthor},
	}
	meetingSelects = []selectField{{report.FieldCommittee, domain.LabelCommittee}}
	hearingSelects = []selectField{{report.FieldType, domain.LabelHearingType}}
)

// ReportHandler serves the /relatorios pages.
type ReportHandler struct {
	presenter
	reports  reportService
	labels   labeler
	choices  choiceSource
	mediaURL string
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(
	reports reportService,
	labels labeler,
	choices choiceSource,
	loc *i18n.Localizer,
	mediaURL string,
	logger *slog.Logger,
) *ReportHandler {
	return &ReportHandler{
		presenter: presenter{loc: loc, log: logger.With("handler", "report")},
		reports:   reports,
		labels:    labels,
		choices:   choices,
		mediaURL:  mediaURL,
	}
}

// begin parses the report form and fills the parts of the view every
// report shares.
func (h *ReportHandler) begin(w http.ResponseWriter, r *http.Request, spec filter.Spec, key i18n.Key, selects []selectField) (filter.Form, web.ViewContext) {
	form := filter.Parse(r.URL.Query(), spec)
	vc, tag := h.view(w, r, key)
	vc.ShowResults = form.ShowResults()
	vc.Errors = form.Errors()
	vc.FilterURL = form.Query()
	vc.NoEntriesMessage = h.loc.Text(tag, i18n.NoResults)
	vc.Labels = h.selectedLabels(r.Context(), form, selects)
	if wantsHTML(r) {
		vc.Choices = h.selectChoices(r.Context(), selects)
	}
	return form, vc
}

func (h *ReportHandler) selectedLabels(ctx context.Context, form filter.Form, selects []selectField) map[string]string {
	var out map[string]string
	for _, s := range selects {
		id := form.ID(s.name)
		if id == nil {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[s.name] = h.labels.Labels(ctx, s.kind, []int64{*id})[*id]
	}
	return out
}

func (h *ReportHandler) selectChoices(ctx context.Context, selects []selectField) map[string][]domain.Choice {
	if len(selects) == 0 {
		return nil
	}
	out := make(map[string][]domain.Choice, len(selects))
	for _, s := range selects {
		choices, err := h.choices.All(ctx, s.kind)
		if err != nil {
			h.log.WarnContext(ctx, "load filter choices",
				slog.String("field", s.name), slog.String("error", err.Error()))
			continue
		}
		out[s.name] = choices
	}
	return out
}

// Minutes serves GET /relatorios/atas.
func (h *ReportHandler) Minutes(w http.ResponseWriter, r *http.Request) {
	form, vc := h.begin(w, r, report.MinutesSpec, i18n.TitleMinutes, nil)

	var table web.Table
	if vc.ShowResults {
		period, _ := form.Range(report.FieldSessionStart)
		sessions, err := h.reports.Minutes(r.Context(), period)
		if err != nil {
			h.fail(w, r, "minutes report", err)
			return
		}
		vc.Period = filter.FormatRange(period)
		vc.Data = sessions
		table = minutesTable(sessions, h.mediaURL)
	}
	h.render(w, r, vc, table)
}

// Attendance serves GET /relatorios/presenca.
func (h *ReportHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	form, vc := h.begin(w, r, report.AttendanceSpec, i18n.TitleAttendance, nil)

	var table web.Table
	if vc.ShowResults {
		period, _ := form.Range(report.FieldSessionStart)
		rep, err := h.reports.Attendance(r.Context(), period)
		if err != nil {
			h.fail(w, r, "attendance report", err)
			return
		}
		vc.Period = filter.FormatRange(period)
		vc.Data = rep
		table = attendanceTable(rep)
	}
	h.render(w, r, vc, table)
}

// TramitacaoHistory serves GET /relatorios/historico-tramitacao.
func (h *ReportHandler) TramitacaoHistory(w http.ResponseWriter, r *http.Request) {
	h.tramitacoes(w, r, report.TramitacaoHistorySpec, i18n.TitleTramitacaoHistory, domain.TramitacaoRecorded)
}

// TramitacaoDeadline serves GET /relatorios/fim-prazo-tramitacao.
func (h *ReportHandler) TramitacaoDeadline(w http.ResponseWriter, r *http.Request) {
	h.tramitacoes(w, r, report.TramitacaoDeadlineSpec, i18n.TitleTramitacaoDeadline, domain.TramitacaoDeadline)
}

func (h *ReportHandler) tramitacoes(w http.ResponseWriter, r *http.Request, spec filter.Spec, key i18n.Key, field domain.TramitacaoDateField) {
	form, vc := h.begin(w, r, spec, key, tramitacaoSelects)

	var table web.Table
	if vc.ShowResults {
		f := report.TramitacaoFilterFrom(form, field)
		rep, err := h.reports.Tramitacoes(r.Context(), f)
		if err != nil {
			h.fail(w, r, "tramitacao report", err)
			return
		}
		vc.Period = filter.FormatRange(f.Range)
		vc.Data = rep
		table = tramitacaoTable(rep)
	}
	h.render(w, r, vc, table)
}

// Meetings serves GET /relatorios/reuniao.
func (h *ReportHandler) Meetings(w http.ResponseWriter, r *http.Request) {
	form, vc := h.begin(w, r, report.MeetingsSpec, i18n.TitleMeetings, meetingSelects)

	var table web.Table
	if vc.ShowResults {
		f := report.MeetingFilterFrom(form)
		rows, err := h.reports.Meetings(r.Context(), f)
		if err != nil {
			h.fail(w, r, "meetings report", err)
			return
		}
		vc.Period = filter.FormatRange(f.Range)
		vc.Data = rows
		table = meetingsTable(rows)
	}
	h.render(w, r, vc, table)
}

// Hearings serves GET /relatorios/audiencia.
func (h *ReportHandler) Hearings(w http.ResponseWriter, r *http.Request) {
	form, vc := h.begin(w, r, report.HearingsSpec, i18n.TitleHearings, hearingSelects)

	var table web.Table
	if vc.ShowResults {
		f := report.HearingFilterFrom(form)
		rows, err := h.reports.Hearings(r.Context(), f)
		if err != nil {
			h.fail(w, r, "hearings report", err)
			return
		}
		vc.Period = filter.FormatRange(f.Range)
		vc.Data = rows
		table = hearingsTable(rows)
	}
	h.render(w, r, vc, table)
}

// MattersInTramitacao serves GET /relatorios/materias-tramitacao.
func (h *ReportHandler) MattersInTramitacao(w http.ResponseWriter, r *http.Request) {
	form, vc := h.begin(w, r, report.MattersInTramitacaoSpec, i18n.TitleMattersInTramitacao, mattersInTramitacaoSelects)

	var table web.Table
	if vc.ShowResults {
		rep, err := h.reports.MattersInTramitacao(r.Context(), report.MattersInTramitacaoFilterFrom(form))
		if err != nil {
			h.fail(w, r, "matters in tramitacao report", err)
			return
		}
		vc.Data = rep
		table = mattersTable(rep)
	}
	h.render(w, r, vc, table)
}

// MattersByAuthorYear serves GET /relatorios/materias-ano-autor-tipo.
func (h *ReportHandler) MattersByAuthorYear(w http.ResponseWriter, r *http.Request) {
	form, vc := h.begin(w, r, report.MattersByAuthorYearSpec, i18n.TitleMattersByAuthorYear, nil)

	var table web.Table
	if vc.ShowResults {
		rep, err := h.reports.MattersByAuthorYear(r.Context(), *form.Year(report.FieldYear))
		if err != nil {
			h.fail(w, r, "matters by author and year report", err)
			return
		}
		vc.Data = rep
		table = authorYearTable(rep)
	}
	h.render(w, r, vc, table)
}

// MattersByAuthor serves GET /relatorios/materias-autor.
func (h *ReportHandler) MattersByAuthor(w http.ResponseWriter, r *http.Request) {
	form, vc := h.begin(w, r, report.MattersByAuthorSpec, i18n.TitleMattersByAuthor, mattersByAuthorSelects)

	var table web.Table
	if vc.ShowResults {
		f := report.MattersByAuthorFilterFrom(form)
		rep, err := h.reports.MattersByAuthor(r.Context(), f)
		if err != nil {
			h.fail(w, r, "matters by author report", err)
			return
		}
		if f.Presented != nil {
			vc.Period = filter.FormatRange(*f.Presented)
		}
		vc.Data = rep
		table = mattersTable(rep)
	}
	h.render(w, r, vc, table)
}
