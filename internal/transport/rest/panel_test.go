package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publisherFake struct {
	channel string
	payload any
	err     error
}

func (p *publisherFake) Publish(_ context.Context, channel string, payload any) error {
	p.channel = channel
	p.payload = payload
	return p.err
}

func panelMux(h *PanelHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/painel/{pk}/state", h.PublishState)
	return mux
}

func TestPublishState(t *testing.T) {
	t.Parallel()

	pub := &publisherFake{}
	mux := panelMux(NewPanelHandler(pub, testLogger()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/painel/4/state", strings.NewReader(`{"aberto":true}`)))

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "painel.4", pub.channel)
	assert.JSONEq(t, `{"aberto":true}`, string(pub.payload.(json.RawMessage)))
}

func TestPublishState_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"non-numeric pk", "/api/painel/x/state", `{}`, http.StatusNotFound},
		{"zero pk", "/api/painel/0/state", `{}`, http.StatusNotFound},
		{"array body", "/api/painel/1/state", `[1]`, http.StatusBadRequest},
		{"null body", "/api/painel/1/state", `null`, http.StatusBadRequest},
		{"broken json", "/api/painel/1/state", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &publisherFake{}
			mux := panelMux(NewPanelHandler(pub, testLogger()))

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.want, rec.Code)
			assert.Empty(t, pub.channel)
		})
	}
}

func TestPublishState_BrokerError(t *testing.T) {
	t.Parallel()

	mux := panelMux(NewPanelHandler(&publisherFake{err: errors.New("nats: connection closed")}, testLogger()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/painel/1/state", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
