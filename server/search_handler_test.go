package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"soundlink/model"
	"soundlink/repository"
)

type stubSearchRepo struct {
	result *repository.SearchResult
	err    error
	gotQ   string
}

func (s *stubSearchRepo) Search(query string) (*repository.SearchResult, error) {
	s.gotQ = query
	return s.result, s.err
}

func TestSearchHandlerMissingQuery(t *testing.T) {
	h := newTestHandler(Repos{Search: &stubSearchRepo{}})

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false || body["message"] != "Query required" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestSearchHandlerSuccess(t *testing.T) {
	stub := &stubSearchRepo{
		result: &repository.SearchResult{
			Songs:   []*model.Song{{ID: 1, Name: "Love Song"}},
			Albums:  []*model.Album{},
			Users:   []*model.User{},
			Artists: []*model.Artist{{ID: 2, Name: "Lovebird"}},
		},
	}
	h := newTestHandler(Repos{Search: stub})

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=love", nil)
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.gotQ != "love" {
		t.Errorf("repo saw query %q, want %q", stub.gotQ, "love")
	}

	body := decodeEnvelope(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success envelope, got %v", body)
	}
	// All four collections are present even when empty.
	for _, key := range []string{"songs", "albums", "users", "artists"} {
		if _, ok := body[key]; !ok {
			t.Errorf("response missing %q collection", key)
		}
	}
	songs, ok := body["songs"].([]interface{})
	if !ok || len(songs) != 1 {
		t.Errorf("unexpected songs collection: %v", body["songs"])
	}
}

func TestSearchHandlerRepoError(t *testing.T) {
	h := newTestHandler(Repos{Search: &stubSearchRepo{err: errors.New("db down")}})

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=love", nil)
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Search failed" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}
