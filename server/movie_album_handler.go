package server

import (
	"encoding/json"
	"net/http"

	"soundlink/logger"
	"soundlink/model"
)

// AddMovieAlbumHandler creates a movie soundtrack from a multipart form:
// title, cover image, and a JSON array of song ids in the "songs" field.
// POST /api/movie-album/add (admin)
func (h *APIHandler) AddMovieAlbumHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}

	var songIDs []int64
	if raw := r.FormValue("songs"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &songIDs); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid song list")
			return
		}
	}

	album := &model.MovieAlbum{Title: title}

	imageFile, imageHeader, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing 'image' file in form")
		return
	}
	defer imageFile.Close()

	album.ImageURL, err = h.media.Upload(r.Context(), "covers", imageHeader.Filename, imageFile, imageHeader.Size)
	if err != nil {
		logger.Error("failed to upload movie album cover", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	id, err := h.repos.MovieAlbums.CreateMovieAlbum(album, songIDs)
	if err != nil {
		logger.Error("failed to create movie album", logger.String("title", title), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to add movie album")
		return
	}
	album.ID = id

	h.homeCache.Invalidate()
	logger.Info("movie album added", logger.Int64("movieAlbumID", id), logger.String("title", title))
	respondSuccess(w, http.StatusCreated, map[string]interface{}{"movieAlbum": album})
}

// ListMovieAlbumsHandler returns every movie soundtrack with songs
// populated.
// GET /api/movie-album/list
func (h *APIHandler) ListMovieAlbumsHandler(w http.ResponseWriter, r *http.Request) {
	albums, err := h.repos.MovieAlbums.GetAllMovieAlbums()
	if err != nil {
		logger.Error("failed to list movie albums", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get movie albums")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{"movieAlbums": albums})
}

// RemoveMovieAlbumRequest represents the remove body.
type RemoveMovieAlbumRequest struct {
	ID int64 `json:"id"`
}

// RemoveMovieAlbumHandler deletes a movie soundtrack and its song links.
// POST /api/movie-album/remove (admin)
func (h *APIHandler) RemoveMovieAlbumHandler(w http.ResponseWriter, r *http.Request) {
	var req RemoveMovieAlbumRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	album, err := h.repos.MovieAlbums.GetMovieAlbumByID(req.ID)
	if err != nil {
		logger.Error("failed to resolve movie album", logger.Int64("movieAlbumID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove movie album")
		return
	}

	if err := h.repos.MovieAlbums.DeleteMovieAlbum(req.ID); err != nil {
		logger.Error("failed to remove movie album", logger.Int64("movieAlbumID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove movie album")
		return
	}

	if album != nil && h.media != nil {
		if err := h.media.Remove(r.Context(), album.ImageURL); err != nil {
			logger.Warn("failed to remove movie album cover", logger.Int64("movieAlbumID", req.ID), logger.ErrorField(err))
		}
	}

	h.homeCache.Invalidate()
	respondSuccess(w, http.StatusOK, map[string]interface{}{"message": "Movie album removed"})
}
