package app

import (
	"net/http"

	"github.com/heartmarshall/sapl-backend/internal/transport/middleware"
	"github.com/heartmarshall/sapl-backend/internal/transport/rest"
	"github.com/heartmarshall/sapl-backend/internal/transport/ws"
)

type routes struct {
	health   *rest.HealthHandler
	reports  *rest.ReportHandler
	audit    *rest.AuditHandler
	system   *rest.SystemHandler
	panel    *rest.PanelHandler
	ws       *ws.Handler
	limiter  *middleware.RateLimiter
	panelRPM int
}

// newRouter registers every public route. Websocket paths keep their
// trailing slash and {$} pins them to the exact path.
func newRouter(r routes) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", r.health.Health)
	mux.HandleFunc("GET /live", r.health.Live)
	mux.HandleFunc("GET /ready", r.health.Ready)

	// Reports.
	mux.HandleFunc("GET /relatorios/atas", r.reports.Minutes)
	mux.HandleFunc("GET /relatorios/presenca", r.reports.Attendance)
	mux.HandleFunc("GET /relatorios/historico-tramitacao", r.reports.TramitacaoHistory)
	mux.HandleFunc("GET /relatorios/fim-prazo-tramitacao", r.reports.TramitacaoDeadline)
	mux.HandleFunc("GET /relatorios/reuniao", r.reports.Meetings)
	mux.HandleFunc("GET /relatorios/audiencia", r.reports.Hearings)
	mux.HandleFunc("GET /relatorios/materias-tramitacao", r.reports.MattersInTramitacao)
	mux.HandleFunc("GET /relatorios/materias-ano-autor-tipo", r.reports.MattersByAuthorYear)
	mux.HandleFunc("GET /relatorios/materias-autor", r.reports.MattersByAuthor)

	// System.
	admin := func(h http.HandlerFunc) http.Handler { return middleware.AdminOnly(h) }
	mux.Handle("GET /sistema/inconsistencias", admin(r.audit.Summary))
	mux.Handle("GET /sistema/inconsistencias/protocolos-duplicados", admin(r.audit.DuplicateProtocols))
	mux.Handle("GET /sistema/inconsistencias/protocolos-com-materias", admin(r.audit.OverLinkedProtocols))
	mux.Handle("GET /sistema/inconsistencias/materias-protocolo-inexistente", admin(r.audit.OrphanMatters))
	mux.Handle("GET /sistema/usuarios", admin(r.system.Users))
	mux.Handle("GET /sistema/app-config", admin(r.system.AppConfig))
	mux.HandleFunc("GET /sistema/autores", r.system.Authors)
	mux.HandleFunc("GET /sistema/casa-legislativa", r.system.House)
	mux.HandleFunc("GET /logotipo", r.system.Logo)

	// Realtime.
	mux.HandleFunc("GET /ws/time-refresh/{$}", r.ws.TimeRefresh)
	mux.HandleFunc("GET /ws/chat/{room}/{$}", r.ws.Chat)
	mux.HandleFunc("GET /ws/painel-principal/{pk}/{$}", r.ws.Panel)
	mux.Handle("POST /api/painel/{pk}/state", middleware.Chain(
		r.limiter.Limit(r.panelRPM),
		middleware.AdminOnly,
	)(http.HandlerFunc(r.panel.PublishState)))

	return mux
}
