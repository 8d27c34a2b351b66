package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"soundstash/internal/catalog"
)

// ListPlaylists handles GET /api/playlists
func (h *Handlers) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	playlists, err := h.catalog.ListPlaylists(r.Context(), parseListOptions(r))
	if err != nil {
		writeCatalogError(w, "playlists", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, playlists)
}

// GetPlaylist handles GET /api/playlists/{id}
func (h *Handlers) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	playlist, err := h.catalog.GetPlaylist(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeCatalogError(w, "playlist", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, playlist)
}

// CreatePlaylist handles POST /api/playlists
func (h *Handlers) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	var playlist catalog.Playlist
	if !decodeBody(w, r, &playlist) {
		return
	}

	if err := h.catalog.CreatePlaylist(r.Context(), &playlist); err != nil {
		writeCatalogError(w, "playlist", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, playlist)
}

// UpdatePlaylist handles PUT /api/playlists/{id}
func (h *Handlers) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	var playlist catalog.Playlist
	if !decodeBody(w, r, &playlist) {
		return
	}

	if err := h.catalog.UpdatePlaylist(r.Context(), mux.Vars(r)["id"], &playlist); err != nil {
		writeCatalogError(w, "playlist", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, playlist)
}

// DeletePlaylist handles DELETE /api/playlists/{id}
func (h *Handlers) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	if err := h.catalog.DeletePlaylist(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeCatalogError(w, "playlist", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": "deleted"})
}

// AddPlaylistSong handles POST /api/playlists/{id}/songs
func (h *Handlers) AddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	var body struct {
		SongID string `json:"songId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.SongID == "" {
		writeJSONError(w, "songId is required", http.StatusBadRequest)
		return
	}

	if err := h.catalog.AddSongToPlaylist(r.Context(), mux.Vars(r)["id"], body.SongID); err != nil {
		writeCatalogError(w, "playlist", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": "added"})
}
