package server

import (
	"net/http"

	"soundlink/logger"
)

// SearchHandler runs the catalog-wide substring search.
// GET /api/search?q=<string>
//
// All four result arrays are present in every success response, and all
// matches come back unpaged. That is the contract the frontend relies
// on; capping results here would silently change behavior.
func (h *APIHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Query required")
		return
	}

	result, err := h.repos.Search.Search(query)
	if err != nil {
		logger.Error("search failed", logger.String("query", query), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"songs":   result.Songs,
		"albums":  result.Albums,
		"users":   result.Users,
		"artists": result.Artists,
	})
}
