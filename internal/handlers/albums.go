package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"soundstash/internal/catalog"
)

// ListAlbums handles GET /api/albums, optionally filtered by ?artistId=
func (h *Handlers) ListAlbums(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	albums, err := h.catalog.ListAlbums(r.Context(), r.URL.Query().Get("artistId"), parseListOptions(r))
	if err != nil {
		writeCatalogError(w, "albums", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, albums)
}

// GetAlbum handles GET /api/albums/{id}
func (h *Handlers) GetAlbum(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	album, err := h.catalog.GetAlbum(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeCatalogError(w, "album", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, album)
}

// CreateAlbum handles POST /api/albums
func (h *Handlers) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	var album catalog.Album
	if !decodeBody(w, r, &album) {
		return
	}

	if err := h.catalog.CreateAlbum(r.Context(), &album); err != nil {
		writeCatalogError(w, "album", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, album)
}

// UpdateAlbum handles PUT /api/albums/{id}
func (h *Handlers) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	var album catalog.Album
	if !decodeBody(w, r, &album) {
		return
	}

	if err := h.catalog.UpdateAlbum(r.Context(), mux.Vars(r)["id"], &album); err != nil {
		writeCatalogError(w, "album", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, album)
}

// DeleteAlbum handles DELETE /api/albums/{id}
func (h *Handlers) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	if err := h.catalog.DeleteAlbum(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeCatalogError(w, "album", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": "deleted"})
}
