package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"soundstash/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// Reasons carried in 503 bodies.
const (
	reasonConnectionFailed = "connection_failed"
	reasonTimeout          = "timeout"
	reasonRetriesExhausted = "retries_exhausted"
)

// writeServiceUnavailable writes a 503 with the structured body every
// unavailable response carries: error, reason, timestamp.
func writeServiceUnavailable(w http.ResponseWriter, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	writeJSON(w, map[string]string{
		"error":     "service unavailable",
		"reason":    reason,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// requireStore gates a handler on the connection guard: when the store
// was unreachable at startup the request fails fast with 503 before any
// work is attempted. Returns false when the request has been answered.
func (h *Handlers) requireStore(w http.ResponseWriter) bool {
	if h.guard.IsConnected() {
		return true
	}
	writeServiceUnavailable(w, reasonConnectionFailed)
	return false
}
