package server

import (
	"net/http"
	"strconv"

	"soundlink/cache"
	"soundlink/logger"
)

// AddToQueueRequest represents the queue append body.
type AddToQueueRequest struct {
	SongID int64 `json:"songId"`
}

// GetQueueHandler returns the caller's transient play queue.
// GET /api/queue
func (h *APIHandler) GetQueueHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := h.queueCache.Get(r.Context(), userID)
	if err != nil {
		logger.Error("failed to get play queue", logger.Int64("userID", userID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get queue")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"queue": items})
}

// AddToQueueHandler appends a song to the caller's play queue. The song
// is resolved first so the queue carries enough to render without
// another round trip.
// POST /api/queue
func (h *APIHandler) AddToQueueHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AddToQueueRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	song, err := h.repos.Songs.GetSongByID(req.SongID)
	if err != nil {
		logger.Error("failed to resolve song for queue", logger.Int64("songID", req.SongID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update queue")
		return
	}
	if song == nil {
		respondError(w, http.StatusNotFound, "Song not found")
		return
	}

	item := cache.QueueItem{
		SongID:   song.ID,
		Name:     song.Name,
		ImageURL: song.ImageURL,
		FileURL:  song.FileURL,
	}
	if err := h.queueCache.Add(r.Context(), userID, item); err != nil {
		logger.Error("failed to add to play queue", logger.Int64("userID", userID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update queue")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"message": "Added to queue"})
}

// RemoveFromQueueHandler drops one song (?songId=) or clears the whole
// queue (?clear=true).
// DELETE /api/queue
func (h *APIHandler) RemoveFromQueueHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if r.URL.Query().Get("clear") == "true" {
		if err := h.queueCache.Clear(r.Context(), userID); err != nil {
			logger.Error("failed to clear play queue", logger.Int64("userID", userID), logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Failed to clear queue")
			return
		}
		respondSuccess(w, http.StatusOK, map[string]interface{}{"message": "Queue cleared"})
		return
	}

	songID, err := strconv.ParseInt(r.URL.Query().Get("songId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid song ID")
		return
	}

	if err := h.queueCache.Remove(r.Context(), userID, songID); err != nil {
		logger.Error("failed to remove from play queue", logger.Int64("userID", userID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update queue")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"message": "Removed from queue"})
}
