package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/sapl-backend/internal/realtime"
)

// maxPanelStateBytes bounds a panel state body.
const maxPanelStateBytes = 64 << 10

type panelPublisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// PanelHandler lets operators push session panel state to the panel channel.
type PanelHandler struct {
	broker panelPublisher
	log    *slog.Logger
}

// NewPanelHandler creates a PanelHandler.
func NewPanelHandler(broker panelPublisher, logger *slog.Logger) *PanelHandler {
	return &PanelHandler{broker: broker, log: logger.With("handler", "panel")}
}

// PublishState serves POST /api/painel/{pk}/state. The body must be a JSON
// object and is forwarded untouched as the frame payload.
func (h *PanelHandler) PublishState(w http.ResponseWriter, r *http.Request) {
	pk, err := strconv.ParseInt(r.PathValue("pk"), 10, 64)
	if err != nil || pk < 1 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPanelStateBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "body too large")
		return
	}
	var state map[string]json.RawMessage
	if err := json.Unmarshal(body, &state); err != nil || state == nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}

	if err := h.broker.Publish(r.Context(), realtime.PanelChannel(pk), json.RawMessage(body)); err != nil {
		h.log.ErrorContext(r.Context(), "publish panel state", slog.Int64("pk", pk), slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "publish failed")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
