package handlers

import (
	"net/http"
	"strings"
)

// SearchCatalog handles GET /api/search?q=
func (h *Handlers) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSONError(w, "query parameter q is required", http.StatusBadRequest)
		return
	}

	results, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		writeCatalogError(w, "search", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, results)
}
