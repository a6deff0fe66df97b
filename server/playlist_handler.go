package server

import (
	"net/http"
	"strconv"

	"soundlink/logger"

	"github.com/gorilla/mux"
)

// CreatePlaylistRequest represents the playlist creation body.
type CreatePlaylistRequest struct {
	Name string `json:"name"`
}

// PlaylistSongRequest represents the add-song / remove-song body.
type PlaylistSongRequest struct {
	PlaylistID int64 `json:"playlistId"`
	SongID     int64 `json:"songId"`
}

// DeletePlaylistRequest represents the delete body.
type DeletePlaylistRequest struct {
	PlaylistID int64 `json:"playlistId"`
}

// CreatePlaylistHandler creates an empty playlist for the caller.
// POST /api/playlist/create
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreatePlaylistRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Playlist name is required")
		return
	}

	playlist, err := h.repos.Playlists.CreatePlaylist(req.Name, userID)
	if err != nil {
		logger.Error("failed to create playlist", logger.Int64("userID", userID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to create playlist")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]interface{}{"playlist": playlist})
}

// MyPlaylistsHandler lists the caller's playlists with songs populated.
// GET /api/playlist/my
func (h *APIHandler) MyPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlists, err := h.repos.Playlists.GetPlaylistsByUserID(userID)
	if err != nil {
		logger.Error("failed to list playlists", logger.Int64("userID", userID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get playlists")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"playlists": playlists})
}

// GetPlaylistHandler fetches one playlist with songs populated.
// GET /api/playlist/{id}
func (h *APIHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid playlist ID")
		return
	}

	playlist, err := h.repos.Playlists.GetPlaylistByID(id)
	if err != nil {
		logger.Error("failed to get playlist", logger.Int64("playlistID", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get playlist")
		return
	}
	if playlist == nil {
		respondError(w, http.StatusNotFound, "Playlist not found.")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"playlist": playlist})
}

// AddSongToPlaylistHandler appends a song reference. Adding a song that
// is already present succeeds and returns the unchanged playlist.
//
// There is deliberately no ownership check: anyone holding a playlist id
// may add to it. Playlists are shareable by id.
// POST /api/playlist/add-song
func (h *APIHandler) AddSongToPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var req PlaylistSongRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playlist, err := h.repos.Playlists.GetPlaylistByID(req.PlaylistID)
	if err != nil {
		logger.Error("failed to resolve playlist", logger.Int64("playlistID", req.PlaylistID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update playlist")
		return
	}
	if playlist == nil {
		respondError(w, http.StatusNotFound, "Playlist not found.")
		return
	}

	if err := h.repos.Playlists.AddSong(req.PlaylistID, req.SongID); err != nil {
		logger.Error("failed to add song to playlist",
			logger.Int64("playlistID", req.PlaylistID),
			logger.Int64("songID", req.SongID),
			logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update playlist")
		return
	}

	playlist, err = h.repos.Playlists.GetPlaylistByID(req.PlaylistID)
	if err != nil {
		logger.Error("failed to reload playlist", logger.Int64("playlistID", req.PlaylistID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update playlist")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"playlist": playlist})
}

// RemoveSongFromPlaylistHandler filters a song reference out. Removing
// an absent song still succeeds.
// POST /api/playlist/remove-song
func (h *APIHandler) RemoveSongFromPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var req PlaylistSongRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playlist, err := h.repos.Playlists.GetPlaylistByID(req.PlaylistID)
	if err != nil {
		logger.Error("failed to resolve playlist", logger.Int64("playlistID", req.PlaylistID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update playlist")
		return
	}
	if playlist == nil {
		respondError(w, http.StatusNotFound, "Playlist not found.")
		return
	}

	if err := h.repos.Playlists.RemoveSong(req.PlaylistID, req.SongID); err != nil {
		logger.Error("failed to remove song from playlist",
			logger.Int64("playlistID", req.PlaylistID),
			logger.Int64("songID", req.SongID),
			logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update playlist")
		return
	}

	playlist, err = h.repos.Playlists.GetPlaylistByID(req.PlaylistID)
	if err != nil {
		logger.Error("failed to reload playlist", logger.Int64("playlistID", req.PlaylistID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update playlist")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"playlist": playlist})
}

// DeletePlaylistHandler deletes by id unconditionally. Deleting an id
// that doesn't exist still reports success; there is nothing left either
// way.
// POST /api/playlist/delete
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var req DeletePlaylistRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.repos.Playlists.DeletePlaylist(req.PlaylistID); err != nil {
		logger.Error("failed to delete playlist", logger.Int64("playlistID", req.PlaylistID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete playlist")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"message": "Playlist deleted"})
}
