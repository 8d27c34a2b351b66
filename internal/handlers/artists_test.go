package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"soundstash/internal/catalog"
	"soundstash/internal/store"
)

func TestListArtists(t *testing.T) {
	cat := &fakeCatalog{artists: []catalog.Artist{
		{ID: "a1", Name: "The Mercury Lights"},
		{ID: "a2", Name: "Violet Harbor"},
	}}
	h := New(cat, &fakeGuard{connected: true}, &fakeMedia{}, &fakeCacheAdmin{}, &fakeBlob{})

	req := httptest.NewRequest(http.MethodGet, "/api/artists", nil)
	rec := httptest.NewRecorder()
	h.ListArtists(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var artists []catalog.Artist
	if err := json.Unmarshal(rec.Body.Bytes(), &artists); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(artists) != 2 || artists[0].Name != "The Mercury Lights" {
		t.Errorf("unexpected artist list: %+v", artists)
	}
}

func TestGetArtist_NotFound(t *testing.T) {
	cat := &fakeCatalog{err: catalog.ErrNotFound}
	h := New(cat, &fakeGuard{connected: true}, &fakeMedia{}, &fakeCacheAdmin{}, &fakeBlob{})

	req := httptest.NewRequest(http.MethodGet, "/api/artists/nope", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})
	rec := httptest.NewRecorder()
	h.GetArtist(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCreateArtist(t *testing.T) {
	cat := &fakeCatalog{}
	h := New(cat, &fakeGuard{connected: true}, &fakeMedia{}, &fakeCacheAdmin{}, &fakeBlob{})

	body := strings.NewReader(`{"name":"The Mercury Lights","genres":["indie"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/artists", body)
	rec := httptest.NewRecorder()
	h.CreateArtist(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var created catalog.Artist
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID != "generated-id" {
		t.Errorf("created artist missing generated id: %+v", created)
	}
}

func TestCreateArtist_InvalidJSON(t *testing.T) {
	h := newTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/api/artists", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.CreateArtist(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreateArtist_ValidationError(t *testing.T) {
	cat := &fakeCatalog{err: (&catalog.Artist{}).Validate()}
	h := New(cat, &fakeGuard{connected: true}, &fakeMedia{}, &fakeCacheAdmin{}, &fakeBlob{})

	req := httptest.NewRequest(http.MethodPost, "/api/artists", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.CreateArtist(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestListArtists_StoreNeverConnected(t *testing.T) {
	cat := &fakeCatalog{}
	h := New(cat, &fakeGuard{connected: false}, &fakeMedia{}, &fakeCacheAdmin{}, &fakeBlob{})

	req := httptest.NewRequest(http.MethodGet, "/api/artists", nil)
	rec := httptest.NewRecorder()
	h.ListArtists(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["reason"] != reasonConnectionFailed {
		t.Errorf("reason = %q, want %q", body["reason"], reasonConnectionFailed)
	}
	if body["timestamp"] == "" {
		t.Error("503 body missing timestamp")
	}
}

func TestListArtists_RetriesExhausted(t *testing.T) {
	cat := &fakeCatalog{err: &store.RetryExhaustedError{
		Operation: "find artists",
		Attempts:  3,
	}}
	h := New(cat, &fakeGuard{connected: true}, &fakeMedia{}, &fakeCacheAdmin{}, &fakeBlob{})

	req := httptest.NewRequest(http.MethodGet, "/api/artists", nil)
	rec := httptest.NewRecorder()
	h.ListArtists(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["reason"] != reasonRetriesExhausted {
		t.Errorf("reason = %q, want %q", body["reason"], reasonRetriesExhausted)
	}
}
