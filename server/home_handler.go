package server

import (
	"net/http"

	"soundlink/logger"
)

// HomeHandler serves the home-page aggregate (songs, movie albums,
// artists, trending) through the TTL cache, so the landing page costs
// zero database reads inside the freshness window.
// GET /api/home
func (h *APIHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.homeCache.Get(r.Context())
	if err != nil {
		logger.Error("failed to load home aggregate", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to load home data")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"songs":       snapshot.Songs,
		"movieAlbums": snapshot.MovieAlbums,
		"artists":     snapshot.Artists,
		"trending":    snapshot.Trending,
		"fetchedAt":   snapshot.FetchedAt,
	})
}
