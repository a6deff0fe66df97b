package server

import (
	"database/sql"
	"net/http"
	"strconv"

	"soundlink/logger"
	"soundlink/model"
)

// AddSongHandler creates a catalog song from a multipart form. Expected
// fields: name, desc, optional album/artist ids, bgColour, duration, and
// the audio/image files, which land in the media store.
// POST /api/song/add (admin)
func (h *APIHandler) AddSongHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil { // 64MB max memory
		respondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	name := r.FormValue("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "Song name is required")
		return
	}

	song := &model.Song{
		Name:        name,
		Description: r.FormValue("desc"),
		BgColour:    r.FormValue("bgColour"),
		Duration:    r.FormValue("duration"),
	}
	if raw := r.FormValue("album"); raw != "" {
		albumID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid album ID")
			return
		}
		song.AlbumID = sql.NullInt64{Int64: albumID, Valid: true}
	}
	if raw := r.FormValue("artist"); raw != "" {
		artistID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid artist ID")
			return
		}
		song.ArtistID = sql.NullInt64{Int64: artistID, Valid: true}
	}

	audioFile, audioHeader, err := r.FormFile("audio")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing 'audio' file in form")
		return
	}
	defer audioFile.Close()

	song.FileURL, err = h.media.Upload(r.Context(), "audio", audioHeader.Filename, audioFile, audioHeader.Size)
	if err != nil {
		logger.Error("failed to upload song audio", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to upload audio")
		return
	}

	imageFile, imageHeader, err := r.FormFile("image")
	if err == nil {
		defer imageFile.Close()
		song.ImageURL, err = h.media.Upload(r.Context(), "covers", imageHeader.Filename, imageFile, imageHeader.Size)
		if err != nil {
			logger.Error("failed to upload song image", logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Failed to upload image")
			return
		}
	} else if err != http.ErrMissingFile {
		respondError(w, http.StatusBadRequest, "Error processing image file")
		return
	}

	id, err := h.repos.Songs.CreateSong(song)
	if err != nil {
		logger.Error("failed to create song", logger.String("name", name), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to add song")
		return
	}
	song.ID = id

	// The home aggregate is stale now; let the next read refetch.
	h.homeCache.Invalidate()

	logger.Info("song added", logger.Int64("songID", id), logger.String("name", name))
	respondSuccess(w, http.StatusCreated, map[string]interface{}{"song": song})
}

// ListSongsHandler returns the whole catalog, unpaged.
// GET /api/song/list
func (h *APIHandler) ListSongsHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.repos.Songs.GetAllSongs()
	if err != nil {
		logger.Error("failed to list songs", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get songs")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{"songs": songs})
}

// EditSongRequest represents the wholesale edit body.
type EditSongRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"desc"`
	BgColour    string `json:"bgColour"`
	ImageURL    string `json:"imageUrl"`
}

// EditSongHandler replaces a song's editable fields wholesale.
// POST /api/song/edit (admin)
func (h *APIHandler) EditSongHandler(w http.ResponseWriter, r *http.Request) {
	var req EditSongRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Song name is required")
		return
	}

	song, err := h.repos.Songs.GetSongByID(req.ID)
	if err != nil {
		logger.Error("failed to resolve song", logger.Int64("songID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to edit song")
		return
	}
	if song == nil {
		respondError(w, http.StatusNotFound, "Song not found")
		return
	}

	edit := &model.SongEdit{
		Name:        req.Name,
		Description: req.Description,
		BgColour:    req.BgColour,
		ImageURL:    req.ImageURL,
	}
	if err := h.repos.Songs.UpdateSong(req.ID, edit); err != nil {
		logger.Error("failed to edit song", logger.Int64("songID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to edit song")
		return
	}

	h.homeCache.Invalidate()
	respondSuccess(w, http.StatusOK, map[string]interface{}{"message": "Song updated"})
}

// RemoveSongRequest represents the remove body.
type RemoveSongRequest struct {
	ID int64 `json:"id"`
}

// RemoveSongHandler deletes a song and its stored media. Playlist,
// favorite and play rows that reference it stay behind; readers skip the
// dangling reference.
// POST /api/song/remove (admin)
func (h *APIHandler) RemoveSongHandler(w http.ResponseWriter, r *http.Request) {
	var req RemoveSongRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	song, err := h.repos.Songs.GetSongByID(req.ID)
	if err != nil {
		logger.Error("failed to resolve song", logger.Int64("songID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove song")
		return
	}

	if err := h.repos.Songs.DeleteSong(req.ID); err != nil {
		logger.Error("failed to remove song", logger.Int64("songID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove song")
		return
	}

	// Best-effort media cleanup; the catalog row is already gone.
	if song != nil && h.media != nil {
		if err := h.media.Remove(r.Context(), song.FileURL); err != nil {
			logger.Warn("failed to remove song audio", logger.Int64("songID", req.ID), logger.ErrorField(err))
		}
		if err := h.media.Remove(r.Context(), song.ImageURL); err != nil {
			logger.Warn("failed to remove song image", logger.Int64("songID", req.ID), logger.ErrorField(err))
		}
	}

	h.homeCache.Invalidate()
	respondSuccess(w, http.StatusOK, map[string]interface{}{"message": "Song removed"})
}
