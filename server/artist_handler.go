package server

import (
	"net/http"
	"strconv"

	"soundlink/logger"
	"soundlink/model"

	"github.com/gorilla/mux"
)

// AddArtistHandler creates an artist from a multipart form (name, bio,
// portrait image).
// POST /api/artist/add (admin)
func (h *APIHandler) AddArtistHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	name := r.FormValue("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "Artist name is required")
		return
	}

	artist := &model.Artist{
		Name: name,
		Bio:  r.FormValue("bio"),
	}

	imageFile, imageHeader, err := r.FormFile("image")
	if err == nil {
		defer imageFile.Close()
		artist.ImageURL, err = h.media.Upload(r.Context(), "artists", imageHeader.Filename, imageFile, imageHeader.Size)
		if err != nil {
			logger.Error("failed to upload artist image", logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Failed to upload image")
			return
		}
	} else if err != http.ErrMissingFile {
		respondError(w, http.StatusBadRequest, "Error processing image file")
		return
	}

	id, err := h.repos.Artists.CreateArtist(artist)
	if err != nil {
		logger.Error("failed to create artist", logger.String("name", name), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to add artist")
		return
	}
	artist.ID = id

	h.homeCache.Invalidate()
	logger.Info("artist added", logger.Int64("artistID", id), logger.String("name", name))
	respondSuccess(w, http.StatusCreated, map[string]interface{}{"artist": artist})
}

// ListArtistsHandler returns every artist.
// GET /api/artist/list
func (h *APIHandler) ListArtistsHandler(w http.ResponseWriter, r *http.Request) {
	artists, err := h.repos.Artists.GetAllArtists()
	if err != nil {
		logger.Error("failed to list artists", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get artists")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{"artists": artists})
}

// GetArtistHandler returns one artist with their songs.
// GET /api/artist/{id}
func (h *APIHandler) GetArtistHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid artist ID")
		return
	}

	artist, err := h.repos.Artists.GetArtistByID(id)
	if err != nil {
		logger.Error("failed to get artist", logger.Int64("artistID", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get artist")
		return
	}
	if artist == nil {
		respondError(w, http.StatusNotFound, "Artist not found")
		return
	}

	songs, err := h.repos.Songs.GetSongsByArtistID(id)
	if err != nil {
		logger.Error("failed to get artist songs", logger.Int64("artistID", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get artist")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"artist": model.ArtistWithSongs{Artist: *artist, Songs: songs},
	})
}

// RemoveArtistRequest represents the remove body.
type RemoveArtistRequest struct {
	ID int64 `json:"id"`
}

// RemoveArtistHandler deletes an artist without cascading into songs or
// albums that reference them.
// POST /api/artist/remove (admin)
func (h *APIHandler) RemoveArtistHandler(w http.ResponseWriter, r *http.Request) {
	var req RemoveArtistRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	artist, err := h.repos.Artists.GetArtistByID(req.ID)
	if err != nil {
		logger.Error("failed to resolve artist", logger.Int64("artistID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove artist")
		return
	}

	if err := h.repos.Artists.DeleteArtist(req.ID); err != nil {
		logger.Error("failed to remove artist", logger.Int64("artistID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove artist")
		return
	}

	if artist != nil && h.media != nil {
		if err := h.media.Remove(r.Context(), artist.ImageURL); err != nil {
			logger.Warn("failed to remove artist image", logger.Int64("artistID", req.ID), logger.ErrorField(err))
		}
	}

	h.homeCache.Invalidate()
	respondSuccess(w, http.StatusOK, map[string]interface{}{"message": "Artist removed"})
}
