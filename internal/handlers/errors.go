package handlers

import (
	"errors"
	"net/http"

	"soundstash/internal/catalog"
	"soundstash/internal/logging"
	"soundstash/internal/store"
)

// writeCatalogError maps a repository failure onto the HTTP error
// taxonomy. Validation failures carry their message (it names the field,
// nothing internal); everything unclassified becomes a generic 500 with
// the detail kept in the logs.
func writeCatalogError(w http.ResponseWriter, what string, err error) {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		writeJSONError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, catalog.ErrNotFound):
		writeJSONError(w, what+" not found", http.StatusNotFound)

	case errors.Is(err, catalog.ErrStoreUnavailable):
		writeServiceUnavailable(w, reasonConnectionFailed)

	default:
		var exhausted *store.RetryExhaustedError
		if errors.As(err, &exhausted) {
			logging.Warn("%s unavailable after retries: %v", what, err)
			writeServiceUnavailable(w, reasonRetriesExhausted)
			return
		}
		if store.IsRetryable(err) {
			// A lone transient error that never entered the retry loop.
			logging.Warn("%s timed out: %v", what, err)
			writeServiceUnavailable(w, reasonTimeout)
			return
		}
		logging.Error("%s request failed: %v", what, err)
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
