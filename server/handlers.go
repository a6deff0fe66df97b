package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"soundlink/cache"
	"soundlink/config"
	"soundlink/core/auth"
	"soundlink/logger"
	"soundlink/repository"
	"soundlink/storage"
)

// Repos bundles the repositories the API handler works against.
type Repos struct {
	Users       repository.UserRepository
	Songs       repository.SongRepository
	Albums      repository.AlbumRepository
	Artists     repository.ArtistRepository
	MovieAlbums repository.MovieAlbumRepository
	Playlists   repository.PlaylistRepository
	Favorites   repository.FavoriteRepository
	Plays       repository.PlayRepository
	Comments    repository.CommentRepository
	Search      repository.SearchRepository
}

// APIHandler handles all API requests.
type APIHandler struct {
	repos      Repos
	homeCache  *cache.HomeCache
	queueCache *cache.QueueCache
	media      *storage.MediaStore
	cfg        *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(repos Repos, homeCache *cache.HomeCache, queueCache *cache.QueueCache, media *storage.MediaStore, cfg *config.Config) *APIHandler {
	return &APIHandler{
		repos:      repos,
		homeCache:  homeCache,
		queueCache: queueCache,
		media:      media,
		cfg:        cfg,
	}
}

// Every response is either {"success":true, ...payload} or
// {"success":false,"message":...}. The helpers below are the only place
// that shape is written.

func writeJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

// respondSuccess merges the payload fields into a success envelope.
func respondSuccess(w http.ResponseWriter, status int, payload map[string]interface{}) {
	body := map[string]interface{}{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// respondError writes the failure envelope. The message is what the
// caller sees; the underlying cause is logged by the handler, not leaked.
func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// AuthMiddleware checks for a valid bearer token and loads its claims
// into the request context.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.UserID)
		ctx = context.WithValue(ctx, "username", claims.Username)
		ctx = context.WithValue(ctx, "isAdmin", claims.IsAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// AdminMiddleware requires an authenticated admin. Wraps AuthMiddleware.
func (h *APIHandler) AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		isAdmin, ok := r.Context().Value("isAdmin").(bool)
		if !ok || !isAdmin {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserIDFromContext extracts the user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value("userID").(int64)
	if !ok {
		return 0, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// IsAdminFromContext reports whether the request is from an admin.
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, ok := ctx.Value("isAdmin").(bool)
	return ok && isAdmin
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
