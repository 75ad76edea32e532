package rest

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const probeTimeout = 3 * time.Second

// Health states.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Component is a dependency reported by the health endpoints. An Optional
// component that fails degrades the service without taking it out of
// rotation: reports keep working while realtime fan-out is lost.
type Component struct {
	Name     string
	Pinger   pinger
	Optional bool
}

// HealthHandler serves /live, /ready and /health.
type HealthHandler struct {
	components []Component
	version    string
}

// NewHealthHandler probes the database plus any extra components.
func NewHealthHandler(db pinger, version string, extra ...Component) *HealthHandler {
	return &HealthHandler{
		components: append([]Component{{Name: "database", Pinger: db}}, extra...),
		version:    version,
	}
}

// HealthResponse is the JSON body of every health endpoint.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is one component's probe result.
type CompStatus struct {
	Status   string `json:"status"`
	Latency  string `json:"latency,omitempty"`
	Error    string `json:"error,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: time.Now()})
}

// Ready answers 503 only when a required component is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, overall := h.probe(r.Context())
	writeJSON(w, httpStatus(overall), HealthResponse{Status: overall, Timestamp: time.Now()})
}

// Health lists every component with latency or error and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, overall := h.probe(r.Context())
	writeJSON(w, httpStatus(overall), HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func httpStatus(overall string) int {
	if overall == statusDown {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

// probe pings all components in parallel under one deadline.
func (h *HealthHandler) probe(ctx context.Context) (map[string]CompStatus, string) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	results := make([]CompStatus, len(h.components))
	var wg sync.WaitGroup
	for i, c := range h.components {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			st := CompStatus{Status: statusOK, Optional: c.Optional}
			if err := c.Pinger.Ping(ctx); err != nil {
				st.Status, st.Error = statusDown, err.Error()
			} else {
				st.Latency = time.Since(start).String()
			}
			results[i] = st
		}()
	}
	wg.Wait()

	out := make(map[string]CompStatus, len(results))
	overall := statusOK
	for i, st := range results {
		out[h.components[i].Name] = st
		switch {
		case st.Status == statusOK:
		case st.Optional:
			if overall == statusOK {
				overall = statusDegraded
			}
		default:
			overall = statusDown
		}
	}
	return out, overall
}
