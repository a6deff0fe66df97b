package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"soundlink/model"
)

type recordingPlayRepo struct {
	plays  [][2]int64 // (userID, songID) pairs in insert order
	ranked []*model.SongPlayCount
}

func (r *recordingPlayRepo) CreatePlay(userID, songID int64) (int64, error) {
	r.plays = append(r.plays, [2]int64{userID, songID})
	return int64(len(r.plays)), nil
}

func (r *recordingPlayRepo) MostPlayed(limit int) ([]*model.SongPlayCount, error) {
	if limit < len(r.ranked) {
		return r.ranked[:limit], nil
	}
	return r.ranked, nil
}

func TestAddPlayHandlerNoDedup(t *testing.T) {
	repo := &recordingPlayRepo{}
	h := newTestHandler(Repos{Plays: repo})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/play/add",
			bytes.NewBufferString(`{"song":12}`))
		rec := httptest.NewRecorder()
		h.AddPlayHandler(rec, withUser(req, 3))

		if rec.Code != http.StatusCreated {
			t.Fatalf("play %d: status = %d, want 201", i+1, rec.Code)
		}
	}

	if len(repo.plays) != 2 {
		t.Fatalf("expected 2 recorded plays, got %d", len(repo.plays))
	}
	if repo.plays[0] != repo.plays[1] {
		t.Errorf("both plays should carry the same user and song: %v", repo.plays)
	}
}

func TestAddPlayHandlerMissingSong(t *testing.T) {
	h := newTestHandler(Repos{Plays: &recordingPlayRepo{}})

	req := httptest.NewRequest(http.MethodPost, "/api/play/add",
		bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	h.AddPlayHandler(rec, withUser(req, 3))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMostPlayedHandlerInvalidLimit(t *testing.T) {
	h := newTestHandler(Repos{Plays: &recordingPlayRepo{}})

	req := httptest.NewRequest(http.MethodGet, "/api/play/most-played?limit=-1", nil)
	rec := httptest.NewRecorder()
	h.MostPlayedHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
