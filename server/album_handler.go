package server

import (
	"database/sql"
	"net/http"
	"strconv"

	"soundlink/logger"
	"soundlink/model"

	"github.com/gorilla/mux"
)

// AddAlbumHandler creates an album from a multipart form (name, desc,
// bgColour, optional artist id, cover image).
// POST /api/album/add (admin)
func (h *APIHandler) AddAlbumHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB max memory
		respondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	name := r.FormValue("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "Album name is required")
		return
	}

	album := &model.Album{
		Name:        name,
		Description: r.FormValue("desc"),
		BgColour:    r.FormValue("bgColour"),
	}
	if raw := r.FormValue("artist"); raw != "" {
		artistID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid artist ID")
			return
		}
		album.ArtistID = sql.NullInt64{Int64: artistID, Valid: true}
	}

	imageFile, imageHeader, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing 'image' file in form")
		return
	}
	defer imageFile.Close()

	album.ImageURL, err = h.media.Upload(r.Context(), "covers", imageHeader.Filename, imageFile, imageHeader.Size)
	if err != nil {
		logger.Error("failed to upload album cover", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	id, err := h.repos.Albums.CreateAlbum(album)
	if err != nil {
		logger.Error("failed to create album", logger.String("name", name), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to add album")
		return
	}
	album.ID = id

	logger.Info("album added", logger.Int64("albumID", id), logger.String("name", name))
	respondSuccess(w, http.StatusCreated, map[string]interface{}{"album": album})
}

// ListAlbumsHandler returns every album.
// GET /api/album/list
func (h *APIHandler) ListAlbumsHandler(w http.ResponseWriter, r *http.Request) {
	albums, err := h.repos.Albums.GetAllAlbums()
	if err != nil {
		logger.Error("failed to list albums", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get albums")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{"albums": albums})
}

// GetAlbumHandler returns one album with its songs.
// GET /api/album/{id}
func (h *APIHandler) GetAlbumHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid album ID")
		return
	}

	album, err := h.repos.Albums.GetAlbumByID(id)
	if err != nil {
		logger.Error("failed to get album", logger.Int64("albumID", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get album")
		return
	}
	if album == nil {
		respondError(w, http.StatusNotFound, "Album not found")
		return
	}

	songs, err := h.repos.Songs.GetSongsByAlbumID(id)
	if err != nil {
		logger.Error("failed to get album songs", logger.Int64("albumID", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get album")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"album": model.AlbumWithSongs{Album: *album, Songs: songs},
	})
}

// RemoveAlbumRequest represents the remove body.
type RemoveAlbumRequest struct {
	ID int64 `json:"id"`
}

// RemoveAlbumHandler deletes an album. Songs keep their album reference;
// readers treat it as "item unavailable".
// POST /api/album/remove (admin)
func (h *APIHandler) RemoveAlbumHandler(w http.ResponseWriter, r *http.Request) {
	var req RemoveAlbumRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	album, err := h.repos.Albums.GetAlbumByID(req.ID)
	if err != nil {
		logger.Error("failed to resolve album", logger.Int64("albumID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove album")
		return
	}

	if err := h.repos.Albums.DeleteAlbum(req.ID); err != nil {
		logger.Error("failed to remove album", logger.Int64("albumID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove album")
		return
	}

	if album != nil && h.media != nil {
		if err := h.media.Remove(r.Context(), album.ImageURL); err != nil {
			logger.Warn("failed to remove album cover", logger.Int64("albumID", req.ID), logger.ErrorField(err))
		}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"message": "Album removed"})
}
