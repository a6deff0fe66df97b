package server

import (
	"net/http"
	"strconv"

	"soundlink/logger"
	"soundlink/model"

	"github.com/gorilla/mux"
)

// AddCommentRequest represents the comment creation body. Exactly one of
// songId / albumId should be set.
type AddCommentRequest struct {
	Text    string `json:"text"`
	SongID  *int64 `json:"songId,omitempty"`
	AlbumID *int64 `json:"albumId,omitempty"`
}

// AddCommentHandler attaches a comment to a song or album.
// POST /api/comment/add
func (h *APIHandler) AddCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AddCommentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "Comment text is required")
		return
	}
	if (req.SongID == nil) == (req.AlbumID == nil) {
		respondError(w, http.StatusBadRequest, "Exactly one of songId or albumId is required")
		return
	}

	comment := &model.Comment{
		UserID:  userID,
		SongID:  req.SongID,
		AlbumID: req.AlbumID,
		Text:    req.Text,
	}
	if err := h.repos.Comments.CreateComment(comment); err != nil {
		logger.Error("failed to create comment", logger.Int64("userID", userID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]interface{}{"comment": comment})
}

// SongCommentsHandler lists comments on a song, newest first.
// GET /api/comment/song/{id}
func (h *APIHandler) SongCommentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid song ID")
		return
	}

	comments, err := h.repos.Comments.GetCommentsBySongID(id)
	if err != nil {
		logger.Error("failed to list song comments", logger.Int64("songID", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get comments")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

// AlbumCommentsHandler lists comments on an album, newest first.
// GET /api/comment/album/{id}
func (h *APIHandler) AlbumCommentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid album ID")
		return
	}

	comments, err := h.repos.Comments.GetCommentsByAlbumID(id)
	if err != nil {
		logger.Error("failed to list album comments", logger.Int64("albumID", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get comments")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

// RemoveCommentRequest represents the remove body.
type RemoveCommentRequest struct {
	ID int64 `json:"id"`
}

// RemoveCommentHandler deletes a comment. Only the author or an admin
// may remove it.
// POST /api/comment/remove
func (h *APIHandler) RemoveCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req RemoveCommentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.repos.Comments.GetCommentByID(req.ID)
	if err != nil {
		logger.Error("failed to resolve comment", logger.Int64("commentID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove comment")
		return
	}
	if comment == nil {
		respondError(w, http.StatusNotFound, "Comment not found")
		return
	}
	if comment.UserID != userID && !IsAdminFromContext(r.Context()) {
		respondError(w, http.StatusForbidden, "Not allowed to remove this comment")
		return
	}

	if err := h.repos.Comments.DeleteComment(req.ID); err != nil {
		logger.Error("failed to remove comment", logger.Int64("commentID", req.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove comment")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"message": "Comment removed"})
}
