package server

import (
	"net/http"

	"soundlink/logger"
)

// ToggleFavoriteRequest represents the toggle body.
type ToggleFavoriteRequest struct {
	SongID int64 `json:"songId"`
}

// ToggleFavoriteHandler flips the favorite state for (caller, song) and
// reports the new state. The unique key on favorites means toggling is
// safe to repeat from multiple tabs.
// POST /api/favorite/toggle
func (h *APIHandler) ToggleFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ToggleFavoriteRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SongID == 0 {
		respondError(w, http.StatusBadRequest, "Song ID is required")
		return
	}

	favorited, err := h.repos.Favorites.IsFavorite(userID, req.SongID)
	if err != nil {
		logger.Error("failed to check favorite", logger.Int64("userID", userID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to toggle favorite")
		return
	}

	if favorited {
		err = h.repos.Favorites.RemoveFavorite(userID, req.SongID)
	} else {
		err = h.repos.Favorites.AddFavorite(userID, req.SongID)
	}
	if err != nil {
		logger.Error("failed to toggle favorite",
			logger.Int64("userID", userID),
			logger.Int64("songID", req.SongID),
			logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to toggle favorite")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"favorited": !favorited})
}

// MyFavoritesHandler lists the caller's favorited songs.
// GET /api/favorite/my
func (h *APIHandler) MyFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	songs, err := h.repos.Favorites.GetFavoriteSongs(userID)
	if err != nil {
		logger.Error("failed to list favorites", logger.Int64("userID", userID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get favorites")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"songs": songs})
}
