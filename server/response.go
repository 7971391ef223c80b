package server

import (
	"encoding/json"
	"net/http"

	"github.com/s0up4200/steam-dilemma/model"
)

// errorResponse is the body of every non-2xx JSON response
type errorResponse struct {
	Error     model.ErrorBody `json:"error"`
	RequestID string          `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, kind, message string) {
	writeJSON(w, status, errorResponse{
		Error:     model.ErrorBody{Kind: kind, Message: message},
		RequestID: RequestIDFrom(r),
	})
}
