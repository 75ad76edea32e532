package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/internal/i18n"
	"github.com/heartmarshall/sapl-backend/internal/transport/web"
	"github.com/heartmarshall/sapl-backend/pkg/ctxutil"
)

// presenter holds what every page handler needs to turn results into a
// response: the request language and the HTML or JSON encoding.
type presenter struct {
	loc *i18n.Localizer
	log *slog.Logger
}

// wantsHTML reports whether r asked for the HTML rendition.
func wantsHTML(r *http.Request) bool {
	if f := r.URL.Query().Get("format"); f != "" {
		return f == "html"
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// lang resolves the language of r, persisting an explicit ?lang choice.
func (p presenter) lang(w http.ResponseWriter, r *http.Request) language.Tag {
	tag, persist := p.loc.Resolve(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return tag
}

// view starts the ViewContext of a page titled by key.
func (p presenter) view(w http.ResponseWriter, r *http.Request, key i18n.Key) (web.ViewContext, language.Tag) {
	tag := p.lang(w, r)
	return web.ViewContext{
		Title: p.loc.Text(tag, key),
		Lang:  tag.String(),
	}, tag
}

// render writes vc as HTML (with t as its table) or as JSON.
func (p presenter) render(w http.ResponseWriter, r *http.Request, vc web.ViewContext, t web.Table) {
	if wantsHTML(r) {
		templ.Handler(web.ReportPage(vc, t)).ServeHTTP(w, r)
		return
	}
	writeJSON(w, http.StatusOK, vc)
}

// fail maps err to a status. Unexpected errors are logged and hidden.
func (p presenter) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeProblem(w, r, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Errors})
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, r, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, r, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, domain.ErrUnavailable):
		p.log.WarnContext(r.Context(), op, slog.String("error", err.Error()))
		w.Header().Set("Retry-After", "30")
		writeProblem(w, r, http.StatusServiceUnavailable, errorResponse{Error: "service unavailable"})
	default:
		p.log.ErrorContext(r.Context(), op,
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeProblem(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
