package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"soundstash/internal/blob"
	"soundstash/internal/cache"
	"soundstash/internal/logging"
	"soundstash/internal/mediatypes"
	"soundstash/internal/streaming"
)

// imageCacheControl asks downstream caches to hold images aggressively;
// the payload for a given source URL never changes.
const imageCacheControl = "public, max-age=86400, stale-while-revalidate=604800"

// audioCacheControl is shorter: audio always reaches the origin here, so
// only browser/CDN caches soften repeat seeks.
const audioCacheControl = "public, max-age=3600"

// GetImage serves an image resolved through the two-tier media cache.
//
//	GET /api/media/image?url=<sourceUrl>
func (h *Handlers) GetImage(w http.ResponseWriter, r *http.Request) {
	sourceURL := r.URL.Query().Get("url")
	if sourceURL == "" {
		writeJSONError(w, "url parameter is required", http.StatusBadRequest)
		return
	}

	result, err := h.media.GetImage(r.Context(), sourceURL)
	if err != nil {
		if errors.Is(err, blob.ErrBadSourceURL) {
			writeJSONError(w, "url must contain a container and an object key", http.StatusBadRequest)
			return
		}
		// Absent object and transient store failure are deliberately
		// indistinguishable here.
		logging.Debug("image fetch failed for %s: %v", sourceURL, err)
		writeJSONError(w, "Image not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set("Cache-Control", imageCacheControl)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("ETag", result.ETag)

	if _, err := w.Write(result.Data); err != nil {
		logging.Debug("image write aborted for %s: %v", sourceURL, err)
	}
}

// GetAudio streams an audio object, honoring byte-range requests so
// players can seek.
//
//	GET /api/media/audio?url=<sourceUrl>   (optional Range header)
func (h *Handlers) GetAudio(w http.ResponseWriter, r *http.Request) {
	sourceURL := r.URL.Query().Get("url")
	if sourceURL == "" {
		writeJSONError(w, "url parameter is required", http.StatusBadRequest)
		return
	}

	container, key, err := blob.ParseSourceURL(sourceURL)
	if err != nil {
		writeJSONError(w, "url must contain a container and an object key", http.StatusBadRequest)
		return
	}

	contentLength, err := h.blobs.Length(r.Context(), container, key)
	if err != nil {
		logging.Debug("audio length query failed for %s/%s: %v", container, key, err)
		writeJSONError(w, "Audio not found", http.StatusNotFound)
		return
	}

	contentType := mediatypes.AudioContentType(key)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", audioCacheControl)
	w.Header().Set("Accept-Ranges", "bytes")

	window, ok := streaming.ParseRange(r.Header.Get("Range"), contentLength)
	if !ok {
		// No usable range: the whole object with a 200.
		data, err := h.blobs.DownloadAll(r.Context(), container, key)
		if err != nil {
			logging.Debug("audio download failed for %s/%s: %v", container, key, err)
			writeJSONError(w, "Audio not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.FormatInt(int64(len(data)), 10))
		w.WriteHeader(http.StatusOK)
		if err := streaming.Copy(r.Context(), w, data); err != nil {
			logging.Debug("audio stream aborted for %s/%s: %v", container, key, err)
		}
		return
	}

	data, err := h.blobs.DownloadRange(r.Context(), container, key, window.Start, window.End)
	if err != nil {
		logging.Debug("audio range download failed for %s/%s: %v", container, key, err)
		writeJSONError(w, "Audio not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Range", window.ContentRange(contentLength))
	w.Header().Set("Content-Length", strconv.FormatInt(window.Length(), 10))
	w.WriteHeader(http.StatusPartialContent)
	if err := streaming.Copy(r.Context(), w, data); err != nil {
		logging.Debug("audio stream aborted for %s/%s: %v", container, key, err)
	}
}

// CacheStatus reports the distributed tier's image namespace: key count
// plus a bounded sample.
//
//	GET /api/media/cache/status
func (h *Handlers) CacheStatus(w http.ResponseWriter, r *http.Request) {
	keys, err := h.cacheAdmin.ScanKeys(r.Context(), cache.KeyNamespace+"*")
	if err != nil {
		logging.Warn("cache status scan failed: %v", err)
		writeServiceUnavailable(w, reasonConnectionFailed)
		return
	}

	const sampleLimit = 20
	sample := keys
	if len(sample) > sampleLimit {
		sample = sample[:sampleLimit]
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]interface{}{
		"namespace": cache.KeyNamespace,
		"count":     len(keys),
		"sample":    sample,
	})
}

// CacheClear deletes every key in the image namespace from the
// distributed tier.
//
//	GET /api/media/cache/clear
func (h *Handlers) CacheClear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.cacheAdmin.ClearNamespace(r.Context(), cache.KeyNamespace+"*")
	if err != nil {
		logging.Warn("cache clear failed: %v", err)
		writeServiceUnavailable(w, reasonConnectionFailed)
		return
	}

	logging.Info("image cache cleared: %d keys deleted", deleted)
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]interface{}{
		"status":  "cleared",
		"deleted": deleted,
	})
}
