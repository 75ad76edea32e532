package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

type auditServiceFake struct {
	duplicates []domain.DuplicateProtocol
	overLinked []domain.OverLinkedProtocol
	orphans    []domain.OrphanMatter
	err        error
}

func (f *auditServiceFake) Summary(context.Context) (domain.AuditSummary, error) {
	return domain.AuditSummary{
		DuplicateProtocols:  len(f.duplicates),
		OverLinkedProtocols: len(f.overLinked),
		OrphanMatters:       len(f.orphans),
	}, f.err
}

func (f *auditServiceFake) DuplicateProtocols(context.Context) ([]domain.DuplicateProtocol, error) {
	return f.duplicates, f.err
}

func (f *auditServiceFake) OverLinkedProtocols(context.Context) ([]domain.OverLinkedProtocol, error) {
	return f.overLinked, f.err
}

func (f *auditServiceFake) OrphanMatters(context.Context) ([]domain.OrphanMatter, error) {
	return f.orphans, f.err
}

func TestAuditSummary(t *testing.T) {
	t.Parallel()

	svc := &auditServiceFake{orphans: []domain.OrphanMatter{{Year: 2021, ProtocolNumber: 99}}}
	h := NewAuditHandler(svc, testLocalizer(), 10, testLogger())

	rec := httptest.NewRecorder()
	h.Summary(rec, httptest.NewRequest(http.MethodGet, "/sistema/inconsistencias", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Lista de Inconsistências", body["title"])

	rows, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 3)
	last := rows[2].(map[string]any)
	assert.Equal(t, "materias-protocolo-inexistente", last["check"])
	assert.Equal(t, "Matérias Legislativas com protocolo inexistente", last["title"])
	assert.Equal(t, float64(1), last["count"])
}

func TestDuplicateProtocols_EmptyMessage(t *testing.T) {
	t.Parallel()

	h := NewAuditHandler(&auditServiceFake{}, testLocalizer(), 10, testLogger())

	rec := httptest.NewRecorder()
	h.DuplicateProtocols(rec, httptest.NewRequest(http.MethodGet, "/sistema/inconsistencias/protocolos-duplicados", nil))

	body := decodeBody(t, rec)
	assert.Equal(t, "Nenhum protocolo duplicado cadastrado no sistema.", body["no_entries_message"])
	assert.Equal(t, []any{}, body["data"])
}

func TestOverLinkedProtocols_Paginates(t *testing.T) {
	t.Parallel()

	svc := &auditServiceFake{}
	for i := range 25 {
		svc.overLinked = append(svc.overLinked, domain.OverLinkedProtocol{
			Protocol:    domain.Protocol{ID: int64(i + 1), Number: i + 1, Year: 2020},
			MatterCount: 2,
		})
	}
	h := NewAuditHandler(svc, testLocalizer(), 10, testLogger())

	rec := httptest.NewRecorder()
	h.OverLinkedProtocols(rec, httptest.NewRequest(http.MethodGet, "/sistema/inconsistencias/protocolos-com-materias?page=7", nil))

	body := decodeBody(t, rec)
	page := body["page"].(map[string]any)
	assert.Equal(t, float64(3), page["number"], "clamped to the last page")
	assert.Equal(t, float64(3), page["num_pages"])
	assert.Len(t, body["data"], 5)
	assert.Equal(t, "Nenhum protocolo excede o limite de matérias vinculadas.", body["no_entries_message"])
}

func TestOrphanMatters_HTML(t *testing.T) {
	t.Parallel()

	svc := &auditServiceFake{orphans: []domain.OrphanMatter{{Matter: domain.Matter{Number: 5}, Year: 2021, ProtocolNumber: 99}}}
	h := NewAuditHandler(svc, testLocalizer(), 10, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sistema/inconsistencias/materias-protocolo-inexistente?format=html", nil)
	rec := httptest.NewRecorder()
	h.OrphanMatters(rec, req)

	assert.Contains(t, rec.Body.String(), "<td>99</td>")
}

func TestAudit_StoreError(t *testing.T) {
	t.Parallel()

	h := NewAuditHandler(&auditServiceFake{err: errors.New("boom")}, testLocalizer(), 10, testLogger())

	rec := httptest.NewRecorder()
	h.OrphanMatters(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
