package rest

import (
	"encoding/json"
	"net/http"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/pkg/ctxutil"
)

// errorResponse is the JSON body of every non-2xx API answer.
type errorResponse struct {
	Error     string              `json:"error"`
	Fields    []domain.FieldError `json:"fields,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeProblem writes body, stamping it with the request id so a client
// report can be matched to the server log line.
func writeProblem(w http.ResponseWriter, r *http.Request, status int, body errorResponse) {
	if r != nil {
		body.RequestID = ctxutil.RequestIDFromCtx(r.Context())
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeProblem(w, nil, status, errorResponse{Error: message})
}
