package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"soundlink/cache"
	"soundlink/config"
	"soundlink/core/auth"
	"soundlink/db"
	"soundlink/logger"
	"soundlink/model"
	"soundlink/repository"
	"soundlink/storage"

	"github.com/gorilla/mux"
)

// repoHomeLoader feeds the home cache from the catalog repositories.
type repoHomeLoader struct {
	songs       repository.SongRepository
	movieAlbums repository.MovieAlbumRepository
	artists     repository.ArtistRepository
}

func (l *repoHomeLoader) LoadSongs(ctx context.Context) ([]*model.Song, error) {
	return l.songs.GetAllSongs()
}

func (l *repoHomeLoader) LoadMovieAlbums(ctx context.Context) ([]*model.MovieAlbum, error) {
	return l.movieAlbums.GetAllMovieAlbums()
}

func (l *repoHomeLoader) LoadArtists(ctx context.Context) ([]*model.Artist, error) {
	return l.artists.GetAllArtists()
}

// Start initializes dependencies and runs the HTTP server until SIGINT
// or SIGTERM.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	auth.Configure(cfg.JWTSecret, cfg.TokenLifetime)

	media, err := storage.NewMediaStore(cfg)
	if err != nil {
		logger.Fatal("failed to initialize media store", logger.ErrorField(err))
	}

	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("failed to connect to database", logger.ErrorField(err))
	}
	defer db.DB.Close()

	if err := db.InitDB(); err != nil {
		logger.Fatal("failed to initialize database schema", logger.ErrorField(err))
	}

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("failed to connect GORM database", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	if err := db.AutoMigrateModels(&model.Comment{}); err != nil {
		logger.Fatal("failed to migrate comment model", logger.ErrorField(err))
	}

	if err := db.ConnectRedis(cfg); err != nil {
		logger.Fatal("failed to connect to Redis", logger.ErrorField(err))
	}
	defer db.CloseRedis()

	repos := Repos{
		Users:       repository.NewMySQLUserRepository(db.DB),
		Songs:       repository.NewMySQLSongRepository(db.DB),
		Albums:      repository.NewMySQLAlbumRepository(db.DB),
		Artists:     repository.NewMySQLArtistRepository(db.DB),
		MovieAlbums: repository.NewMySQLMovieAlbumRepository(db.DB),
		Playlists:   repository.NewMySQLPlaylistRepository(db.DB),
		Favorites:   repository.NewMySQLFavoriteRepository(db.DB),
		Plays:       repository.NewMySQLPlayRepository(db.DB),
		Comments:    repository.NewGormCommentRepository(db.GormDB),
		Search:      repository.NewMySQLSearchRepository(db.DB),
	}

	homeCache := cache.NewHomeCache(&repoHomeLoader{
		songs:       repos.Songs,
		movieAlbums: repos.MovieAlbums,
		artists:     repos.Artists,
	}, cfg.HomeCacheTTL)
	queueCache := cache.NewQueueCache(db.RedisClient)

	apiHandler := NewAPIHandler(repos, homeCache, queueCache, media, cfg)

	router := mux.NewRouter()
	router.Use(corsMiddleware)

	// Auth
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)

	// Search and home aggregate
	router.HandleFunc("/api/search", apiHandler.SearchHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/home", apiHandler.HomeHandler).Methods(http.MethodGet)

	// Playlists
	router.HandleFunc("/api/playlist/create", apiHandler.AuthMiddleware(apiHandler.CreatePlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlist/my", apiHandler.AuthMiddleware(apiHandler.MyPlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlist/add-song", apiHandler.AuthMiddleware(apiHandler.AddSongToPlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlist/remove-song", apiHandler.AuthMiddleware(apiHandler.RemoveSongFromPlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlist/delete", apiHandler.AuthMiddleware(apiHandler.DeletePlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlist/{id:[0-9]+}", apiHandler.GetPlaylistHandler).Methods(http.MethodGet)

	// Play tracking
	router.HandleFunc("/api/play/add", apiHandler.AuthMiddleware(apiHandler.AddPlayHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/play/most-played", apiHandler.MostPlayedHandler).Methods(http.MethodGet)

	// Favorites
	router.HandleFunc("/api/favorite/toggle", apiHandler.AuthMiddleware(apiHandler.ToggleFavoriteHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/favorite/my", apiHandler.AuthMiddleware(apiHandler.MyFavoritesHandler)).Methods(http.MethodGet)

	// Play queue
	router.HandleFunc("/api/queue", apiHandler.AuthMiddleware(apiHandler.GetQueueHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/queue", apiHandler.AuthMiddleware(apiHandler.AddToQueueHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/queue", apiHandler.AuthMiddleware(apiHandler.RemoveFromQueueHandler)).Methods(http.MethodDelete)

	// Comments
	router.HandleFunc("/api/comment/add", apiHandler.AuthMiddleware(apiHandler.AddCommentHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/comment/remove", apiHandler.AuthMiddleware(apiHandler.RemoveCommentHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/comment/song/{id:[0-9]+}", apiHandler.SongCommentsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/comment/album/{id:[0-9]+}", apiHandler.AlbumCommentsHandler).Methods(http.MethodGet)

	// Catalog admin
	router.HandleFunc("/api/song/add", apiHandler.AdminMiddleware(apiHandler.AddSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/song/list", apiHandler.ListSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/song/edit", apiHandler.AdminMiddleware(apiHandler.EditSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/song/remove", apiHandler.AdminMiddleware(apiHandler.RemoveSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/album/add", apiHandler.AdminMiddleware(apiHandler.AddAlbumHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/album/list", apiHandler.ListAlbumsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/album/remove", apiHandler.AdminMiddleware(apiHandler.RemoveAlbumHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/album/{id:[0-9]+}", apiHandler.GetAlbumHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/artist/add", apiHandler.AdminMiddleware(apiHandler.AddArtistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/artist/list", apiHandler.ListArtistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/artist/remove", apiHandler.AdminMiddleware(apiHandler.RemoveArtistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/artist/{id:[0-9]+}", apiHandler.GetArtistHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/movie-album/add", apiHandler.AdminMiddleware(apiHandler.AddMovieAlbumHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/movie-album/list", apiHandler.ListMovieAlbumsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/movie-album/remove", apiHandler.AdminMiddleware(apiHandler.RemoveMovieAlbumHandler)).Methods(http.MethodPost)

	// Media passthrough for dev setups without a public bucket.
	router.PathPrefix("/media/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		objectPath := strings.TrimPrefix(r.URL.Path, "/media/")
		if objectPath == "" {
			http.NotFound(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", mediaContentType(objectPath))
		w.Header().Set("Cache-Control", "public, max-age=31536000")
		if err := media.Serve(ctx, objectPath, w); err != nil {
			logger.Warn("failed to serve media object", logger.String("object", objectPath), logger.ErrorField(err))
		}
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", logger.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("server stopped")
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Range")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func mediaContentType(objectPath string) string {
	switch {
	case strings.HasPrefix(objectPath, "audio/"):
		return "audio/mpeg"
	case strings.HasPrefix(objectPath, "covers/"), strings.HasPrefix(objectPath, "artists/"):
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
