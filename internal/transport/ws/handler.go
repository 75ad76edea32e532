// Package ws serves the realtime channels over websockets.
package ws

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/websocket"

	"github.com/heartmarshall/sapl-backend/internal/realtime"
)

// maxMessageBytes bounds one inbound chat frame (4 KiB). A larger frame
// ends the connection.
const maxMessageBytes = 4 << 10

type subscriber interface {
	Subscribe(channel string) *realtime.Subscription
}

type publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// Handler upgrades requests on the realtime routes.
type Handler struct {
	hub    subscriber
	broker publisher
	log    *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(hub subscriber, broker publisher, logger *slog.Logger) *Handler {
	return &Handler{hub: hub, broker: broker, log: logger.With("handler", "ws")}
}

// Chat serves GET /ws/chat/{room}/. Messages sent by a client are
// published to everyone in the room, the sender included.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")
	if room == "" || strings.Contains(room, "/") {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, realtime.ChatChannel(room), true)
}

// TimeRefresh serves GET /ws/time-refresh/.
func (h *Handler) TimeRefresh(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, realtime.TimeChannel, false)
}

// Panel serves GET /ws/painel-principal/{pk}/. pk must be a positive integer.
func (h *Handler) Panel(w http.ResponseWriter, r *http.Request) {
	pk, err := strconv.ParseInt(r.PathValue("pk"), 10, 64)
	if err != nil || pk < 1 {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, realtime.PanelChannel(pk), false)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, channel string, acceptChat bool) {
	websocket.Handler(func(conn *websocket.Conn) {
		conn.MaxPayloadBytes = maxMessageBytes
		h.session(conn, channel, acceptChat)
	}).ServeHTTP(w, r)
}

// session runs one connection: a writer goroutine drains the subscription
// while this goroutine reads client frames until the connection ends.
func (h *Handler) session(conn *websocket.Conn, channel string, acceptChat bool) {
	ctx := conn.Request().Context()
	log := h.log.With(slog.String("channel", channel))

	sub := h.hub.Subscribe(channel)
	defer sub.Close()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for f := range sub.C() {
			if err := websocket.JSON.Send(conn, f); err != nil {
				log.DebugContext(ctx, "write frame", slog.String("error", err.Error()))
				_ = conn.Close()
				for range sub.C() {
				}
				return
			}
		}
	}()

	for {
		var msg realtime.ChatMessage
		err := websocket.JSON.Receive(conn, &msg)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.DebugContext(ctx, "read frame", slog.String("error", err.Error()))
			}
			break
		}
		if !acceptChat || strings.TrimSpace(msg.Message) == "" {
			continue
		}
		if err := h.broker.Publish(ctx, channel, msg); err != nil {
			log.WarnContext(ctx, "publish chat message", slog.String("error", err.Error()))
		}
	}

	sub.Close()
	<-writerDone
}
