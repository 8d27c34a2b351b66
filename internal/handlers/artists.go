package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"soundstash/internal/catalog"
)

// parseListOptions reads page/pageSize query parameters.
func parseListOptions(r *http.Request) catalog.ListOptions {
	opts := catalog.ListOptions{Page: 1}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && pageSize > 0 {
		opts.PageSize = pageSize
	}
	return opts
}

// decodeBody decodes a JSON request body into v, answering 400 on
// failure. Returns false when the request has been answered.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// ListArtists handles GET /api/artists
func (h *Handlers) ListArtists(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	artists, err := h.catalog.ListArtists(r.Context(), parseListOptions(r))
	if err != nil {
		writeCatalogError(w, "artists", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, artists)
}

// GetArtist handles GET /api/artists/{id}
func (h *Handlers) GetArtist(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	artist, err := h.catalog.GetArtist(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeCatalogError(w, "artist", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, artist)
}

// CreateArtist handles POST /api/artists
func (h *Handlers) CreateArtist(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	var artist catalog.Artist
	if !decodeBody(w, r, &artist) {
		return
	}

	if err := h.catalog.CreateArtist(r.Context(), &artist); err != nil {
		writeCatalogError(w, "artist", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, artist)
}

// UpdateArtist handles PUT /api/artists/{id}
func (h *Handlers) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	var artist catalog.Artist
	if !decodeBody(w, r, &artist) {
		return
	}

	if err := h.catalog.UpdateArtist(r.Context(), mux.Vars(r)["id"], &artist); err != nil {
		writeCatalogError(w, "artist", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, artist)
}

// DeleteArtist handles DELETE /api/artists/{id}
func (h *Handlers) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	if err := h.catalog.DeleteArtist(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeCatalogError(w, "artist", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": "deleted"})
}
