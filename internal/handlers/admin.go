package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path"

	"golang.org/x/sync/errgroup"

	"soundstash/internal/catalog"
	"soundstash/internal/logging"
	"soundstash/internal/mediatypes"
)

const (
	// maxBulkBody caps the JSON payload for a bulk catalog insert.
	maxBulkBody = 32 << 20 // 32 MiB

	// maxUploadMemory is the in-memory threshold handed to ParseMultipartForm;
	// larger parts spill to temp files.
	maxUploadMemory = 64 << 20 // 64 MiB

	// uploadConcurrency bounds how many blob uploads run at once.
	uploadConcurrency = 4
)

type bulkInsertRequest struct {
	Artists []catalog.Artist `json:"artists"`
	Albums  []catalog.Album  `json:"albums"`
	Songs   []catalog.Song   `json:"songs"`
}

// BulkInsertCatalog handles POST /api/admin/catalog/bulk. The payload
// carries arrays of artists, albums, and songs to insert in one pass.
func (h *Handlers) BulkInsertCatalog(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBulkBody)

	var req bulkInsertRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Artists) == 0 && len(req.Albums) == 0 && len(req.Songs) == 0 {
		writeJSONError(w, "bulk payload must contain at least one document", http.StatusBadRequest)
		return
	}

	counts, err := h.catalog.BulkInsert(r.Context(), req.Artists, req.Albums, req.Songs)
	if err != nil {
		// Partial progress is still reported alongside the failure.
		logging.Error("bulk insert failed after %d/%d/%d inserts: %v",
			counts.Artists, counts.Albums, counts.Songs, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, map[string]interface{}{
			"error":    "bulk insert failed",
			"inserted": counts,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]interface{}{
		"status":   "created",
		"inserted": counts,
	})
}

type uploadedFile struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// UploadMedia handles POST /api/admin/media/upload. The multipart form
// names a target container and any number of files; files are pushed to
// the blob store concurrently with a bounded worker limit.
func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSONError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	container := r.FormValue("container")
	if container == "" {
		writeJSONError(w, "container field is required", http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeJSONError(w, "no files provided", http.StatusBadRequest)
		return
	}

	results := make([]uploadedFile, len(files))

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(uploadConcurrency)
	for i, header := range files {
		i, header := i, header
		g.Go(func() error {
			f, err := header.Open()
			if err != nil {
				return fmt.Errorf("open %s: %w", header.Filename, err)
			}
			defer f.Close()

			data, err := io.ReadAll(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", header.Filename, err)
			}

			name := path.Base(header.Filename)
			contentType := mediatypes.ImageContentType(name)
			if mediatypes.IsAudio(name) {
				contentType = mediatypes.AudioContentType(name)
			}

			if err := h.blobs.Upload(ctx, container, name, data, contentType); err != nil {
				return fmt.Errorf("upload %s: %w", header.Filename, err)
			}

			results[i] = uploadedFile{
				Name:        header.Filename,
				Key:         container + "/" + name,
				Size:        int64(len(data)),
				ContentType: contentType,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logging.Error("media upload failed: %v", err)
		writeJSONError(w, "one or more uploads failed", http.StatusBadGateway)
		return
	}

	logging.Info("uploaded %d file(s) to container %s", len(results), container)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]interface{}{
		"status": "uploaded",
		"files":  results,
	})
}
