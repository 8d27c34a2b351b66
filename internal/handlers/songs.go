package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"soundstash/internal/catalog"
)

// ListSongs handles GET /api/songs, optionally filtered by ?albumId=
func (h *Handlers) ListSongs(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	songs, err := h.catalog.ListSongs(r.Context(), r.URL.Query().Get("albumId"), parseListOptions(r))
	if err != nil {
		writeCatalogError(w, "songs", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, songs)
}

// GetSong handles GET /api/songs/{id}
func (h *Handlers) GetSong(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	song, err := h.catalog.GetSong(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeCatalogError(w, "song", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, song)
}

// CreateSong handles POST /api/songs
func (h *Handlers) CreateSong(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	var song catalog.Song
	if !decodeBody(w, r, &song) {
		return
	}

	if err := h.catalog.CreateSong(r.Context(), &song); err != nil {
		writeCatalogError(w, "song", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, song)
}

// UpdateSong handles PUT /api/songs/{id}
func (h *Handlers) UpdateSong(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	var song catalog.Song
	if !decodeBody(w, r, &song) {
		return
	}

	if err := h.catalog.UpdateSong(r.Context(), mux.Vars(r)["id"], &song); err != nil {
		writeCatalogError(w, "song", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, song)
}

// DeleteSong handles DELETE /api/songs/{id}
func (h *Handlers) DeleteSong(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	if err := h.catalog.DeleteSong(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeCatalogError(w, "song", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": "deleted"})
}
