package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"soundstash/internal/blob"
	"soundstash/internal/cache"
)

func TestGetImage_MissingURL(t *testing.T) {
	h := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/media/image", nil)
	rec := httptest.NewRecorder()
	h.GetImage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetImage_MalformedURL(t *testing.T) {
	media := &fakeMedia{err: blob.ErrBadSourceURL}
	h := New(&fakeCatalog{}, &fakeGuard{connected: true}, media, &fakeCacheAdmin{}, &fakeBlob{})

	req := httptest.NewRequest(http.MethodGet, "/api/media/image?url=justonesegment", nil)
	rec := httptest.NewRecorder()
	h.GetImage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed source URL, got %d", rec.Code)
	}
}

func TestGetImage_NotFound(t *testing.T) {
	media := &fakeMedia{err: errors.New("object missing")}
	h := New(&fakeCatalog{}, &fakeGuard{connected: true}, media, &fakeCacheAdmin{}, &fakeBlob{})

	req := httptest.NewRequest(http.MethodGet, "/api/media/image?url=covers/missing.png", nil)
	rec := httptest.NewRecorder()
	h.GetImage(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetImage_Headers(t *testing.T) {
	payload := []byte("fake png bytes")
	media := &fakeMedia{result: &cache.ImageResult{
		Data:        payload,
		ContentType: "image/png",
		ETag:        `"00112233aabbccdd"`,
	}}
	h := New(&fakeCatalog{}, &fakeGuard{connected: true}, media, &fakeCacheAdmin{}, &fakeBlob{})

	req := httptest.NewRequest(http.MethodGet, "/api/media/image?url=covers/albums/ok.png", nil)
	rec := httptest.NewRecorder()
	h.GetImage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", got)
	}
	if got := rec.Header().Get("Content-Length"); got != "14" {
		t.Errorf("Content-Length = %q, want 14", got)
	}
	if got := rec.Header().Get("ETag"); got != `"00112233aabbccdd"` {
		t.Errorf("ETag = %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != imageCacheControl {
		t.Errorf("Cache-Control = %q", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), payload) {
		t.Errorf("body mismatch: got %q", rec.Body.Bytes())
	}
	if media.lastURL != "covers/albums/ok.png" {
		t.Errorf("cache asked for %q", media.lastURL)
	}
}

func TestGetAudio_FullObject(t *testing.T) {
	audio := []byte("0123456789")
	blobs := &fakeBlob{objects: map[string][]byte{"audio/songs/track.mp3": audio}}
	h := New(&fakeCatalog{}, &fakeGuard{connected: true}, &fakeMedia{}, &fakeCacheAdmin{}, blobs)

	req := httptest.NewRequest(http.MethodGet, "/api/media/audio?url=audio/songs/track.mp3", nil)
	rec := httptest.NewRecorder()
	h.GetAudio(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Accept-Ranges"); got != "bytes" {
		t.Errorf("Accept-Ranges = %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Errorf("Content-Type = %q, want audio/mpeg", got)
	}
	if got := rec.Header().Get("Content-Length"); got != "10" {
		t.Errorf("Content-Length = %q, want 10", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), audio) {
		t.Errorf("body mismatch: got %q", rec.Body.Bytes())
	}
}

func TestGetAudio_RangeRequests(t *testing.T) {
	audio := []byte("0123456789")
	blobs := &fakeBlob{objects: map[string][]byte{"audio/songs/track.mp3": audio}}
	h := New(&fakeCatalog{}, &fakeGuard{connected: true}, &fakeMedia{}, &fakeCacheAdmin{}, blobs)

	tests := []struct {
		name        string
		rangeHeader string
		wantBody    string
		wantRange   string
	}{
		{"open ended", "bytes=4-", "456789", "bytes 4-9/10"},
		{"bounded", "bytes=2-5", "2345", "bytes 2-5/10"},
		{"end past length clamps", "bytes=8-500", "89", "bytes 8-9/10"},
		{"end zero means last byte", "bytes=3-0", "3456789", "bytes 3-9/10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/media/audio?url=audio/songs/track.mp3", nil)
			req.Header.Set("Range", tt.rangeHeader)
			rec := httptest.NewRecorder()
			h.GetAudio(rec, req)

			if rec.Code != http.StatusPartialContent {
				t.Fatalf("expected 206, got %d", rec.Code)
			}
			if got := rec.Header().Get("Content-Range"); got != tt.wantRange {
				t.Errorf("Content-Range = %q, want %q", got, tt.wantRange)
			}
			if got := rec.Body.String(); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestGetAudio_MalformedURL(t *testing.T) {
	h := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/media/audio?url=nokey", nil)
	rec := httptest.NewRecorder()
	h.GetAudio(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetAudio_NotFound(t *testing.T) {
	h := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/media/audio?url=audio/songs/missing.mp3", nil)
	rec := httptest.NewRecorder()
	h.GetAudio(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCacheStatus(t *testing.T) {
	admin := &fakeCacheAdmin{keys: []string{
		cache.KeyNamespace + "aaa",
		cache.KeyNamespace + "bbb",
	}}
	h := New(&fakeCatalog{}, &fakeGuard{connected: true}, &fakeMedia{}, admin, &fakeBlob{})

	req := httptest.NewRequest(http.MethodGet, "/api/media/cache/status", nil)
	rec := httptest.NewRecorder()
	h.CacheStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Count  int      `json:"count"`
		Sample []string `json:"sample"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Count != 2 || len(body.Sample) != 2 {
		t.Errorf("count=%d sample=%d, want 2/2", body.Count, len(body.Sample))
	}
}

func TestCacheStatus_RedisDown(t *testing.T) {
	admin := &fakeCacheAdmin{scanErr: errors.New("connection refused")}
	h := New(&fakeCatalog{}, &fakeGuard{connected: true}, &fakeMedia{}, admin, &fakeBlob{})

	req := httptest.NewRequest(http.MethodGet, "/api/media/cache/status", nil)
	rec := httptest.NewRecorder()
	h.CacheStatus(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["reason"] != reasonConnectionFailed {
		t.Errorf("reason = %q", body["reason"])
	}
}

func TestCacheClear(t *testing.T) {
	admin := &fakeCacheAdmin{cleared: 7}
	h := New(&fakeCatalog{}, &fakeGuard{connected: true}, &fakeMedia{}, admin, &fakeBlob{})

	req := httptest.NewRequest(http.MethodGet, "/api/media/cache/clear", nil)
	rec := httptest.NewRecorder()
	h.CacheClear(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status  string `json:"status"`
		Deleted int    `json:"deleted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "cleared" || body.Deleted != 7 {
		t.Errorf("got status=%q deleted=%d", body.Status, body.Deleted)
	}
}
