package httpapi

import (
	"encoding/json"
	"net/http"
)

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, failureResponse{Success: false, Message: msg})
}

// parseOrDefault decodes the body into v and leaves v zero-valued when the
// body is malformed or empty. Lenient parsing is the policy on the payment
// and AI paths; auth endpoints reject bad JSON instead.
func parseOrDefault(r *http.Request, v any) {
	_ = json.NewDecoder(r.Body).Decode(v)
}
