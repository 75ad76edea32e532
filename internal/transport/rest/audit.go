package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/internal/i18n"
	"github.com/heartmarshall/sapl-backend/internal/service/consistency"
	"github.com/heartmarshall/sapl-backend/internal/transport/web"
)

type auditService interface {
	Summary(ctx context.Context) (domain.AuditSummary, error)
	DuplicateProtocols(ctx context.Context) ([]domain.DuplicateProtocol, error)
	OverLinkedProtocols(ctx context.Context) ([]domain.OverLinkedProtocol, error)
	OrphanMatters(ctx context.Context) ([]domain.OrphanMatter, error)
}

// SummaryRow is one line of the inconsistency summary.
type SummaryRow struct {
	Check consistency.Check `json:"check"`
	Title string            `json:"title"`
	Count int               `json:"count"`
}

// AuditHandler serves the /sistema/inconsistencias pages.
type AuditHandler struct {
	presenter
	audit   auditService
	perPage int
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(audit auditService, loc *i18n.Localizer, perPage int, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		presenter: presenter{loc: loc, log: logger.With("handler", "audit")},
		audit:     audit,
		perPage:   perPage,
	}
}

// Summary serves GET /sistema/inconsistencias.
func (h *AuditHandler) Summary(w http.ResponseWriter, r *http.Request) {
	vc, tag := h.view(w, r, i18n.TitleInconsistencies)

	s, err := h.audit.Summary(r.Context())
	if err != nil {
		h.fail(w, r, "audit summary", err)
		return
	}

	rows := []SummaryRow{
		{consistency.CheckDuplicateProtocols, h.loc.Text(tag, i18n.TitleDuplicateProtocols), s.DuplicateProtocols},
		{consistency.CheckOverLinkedProtocols, h.loc.Text(tag, i18n.TitleOverLinkedProtocols), s.OverLinkedProtocols},
		{consistency.CheckOrphanMatters, h.loc.Text(tag, i18n.TitleOrphanMatters), s.OrphanMatters},
	}
	vc.ShowResults = true
	vc.Data = rows

	table := web.Table{Headers: []string{"Inconsistência", "Quantidade"}}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{row.Title, strconv.Itoa(row.Count)})
	}
	h.render(w, r, vc, table)
}

// DuplicateProtocols serves GET /sistema/inconsistencias/protocolos-duplicados.
func (h *AuditHandler) DuplicateProtocols(w http.ResponseWriter, r *http.Request) {
	listing(h, w, r, i18n.TitleDuplicateProtocols, i18n.NoDuplicateProtocols,
		h.audit.DuplicateProtocols, duplicatesTable)
}

// OverLinkedProtocols serves GET /sistema/inconsistencias/protocolos-com-materias.
func (h *AuditHandler) OverLinkedProtocols(w http.ResponseWriter, r *http.Request) {
	listing(h, w, r, i18n.TitleOverLinkedProtocols, i18n.NoOverLinkedProtocols,
		h.audit.OverLinkedProtocols, overLinkedTable)
}

// OrphanMatters serves GET /sistema/inconsistencias/materias-protocolo-inexistente.
func (h *AuditHandler) OrphanMatters(w http.ResponseWriter, r *http.Request) {
	listing(h, w, r, i18n.TitleOrphanMatters, i18n.NoOrphanMatters,
		h.audit.OrphanMatters, orphansTable)
}

// listing renders one page of a consistency check.
func listing[T any](
	h *AuditHandler,
	w http.ResponseWriter,
	r *http.Request,
	title, empty i18n.Key,
	run func(context.Context) ([]T, error),
	table func([]T) web.Table,
) {
	vc, tag := h.view(w, r, title)

	findings, err := run(r.Context())
	if err != nil {
		h.fail(w, r, string(title), err)
		return
	}

	items, page := Paginate(findings, r.URL.Query().Get("page"), h.perPage)
	vc.ShowResults = true
	vc.Data = items
	vc.Page = &page
	vc.NoEntriesMessage = h.loc.Text(tag, empty)
	h.render(w, r, vc, table(items))
}
