package server

import (
	"net/http"
	"strconv"

	"soundlink/logger"
)

// AddPlayRequest represents the play-event body.
type AddPlayRequest struct {
	Song int64 `json:"song"`
}

// AddPlayHandler records one immutable play event for the authenticated
// user. There is no deduplication: a resubmitted play is recorded twice.
// POST /api/play/add
func (h *APIHandler) AddPlayHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AddPlayRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Song == 0 {
		respondError(w, http.StatusBadRequest, "Song is required")
		return
	}

	if _, err := h.repos.Plays.CreatePlay(userID, req.Song); err != nil {
		logger.Error("failed to record play",
			logger.Int64("userID", userID),
			logger.Int64("songID", req.Song),
			logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to record play")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]interface{}{"message": "Play recorded"})
}

// MostPlayedHandler aggregates the play log by song.
// GET /api/play/most-played?limit=
func (h *APIHandler) MostPlayedHandler(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	results, err := h.repos.Plays.MostPlayed(limit)
	if err != nil {
		logger.Error("failed to aggregate most played", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get most played songs")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"songs": results})
}
