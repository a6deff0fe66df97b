package db

import (
	"database/sql"
	"fmt"
	"log"

	"soundlink/config"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes a connection to the database.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to the database.")
	return nil
}

// InitDB initializes the database schema, creating tables if they don't exist.
// The comments table is managed separately through GORM AutoMigrate.
func InitDB() error {
	statements := []struct {
		name  string
		query string
	}{
		{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(100) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);`},
		{"artists", `
		CREATE TABLE IF NOT EXISTS artists (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			bio TEXT,
			image_url VARCHAR(767),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);`},
		{"albums", `
		CREATE TABLE IF NOT EXISTS albums (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			image_url VARCHAR(767),
			bg_colour VARCHAR(32),
			artist_id INT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);`},
		{"songs", `
		CREATE TABLE IF NOT EXISTS songs (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			album_id INT NULL,
			artist_id INT NULL,
			file_url VARCHAR(767),
			image_url VARCHAR(767),
			bg_colour VARCHAR(32),
			duration VARCHAR(16),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);`},
		{"movie_albums", `
		CREATE TABLE IF NOT EXISTS movie_albums (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			image_url VARCHAR(767),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);`},
		{"movie_album_songs", `
		CREATE TABLE IF NOT EXISTS movie_album_songs (
			movie_album_id INT NOT NULL,
			song_id INT NOT NULL,
			position INT NOT NULL DEFAULT 0,
			CONSTRAINT uq_movie_album_song UNIQUE (movie_album_id, song_id)
		);`},
		{"playlists", `
		CREATE TABLE IF NOT EXISTS playlists (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			user_id INT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);`},
		{"playlist_songs", `
		CREATE TABLE IF NOT EXISTS playlist_songs (
			playlist_id INT NOT NULL,
			song_id INT NOT NULL,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT uq_playlist_song UNIQUE (playlist_id, song_id)
		);`},
		{"favorites", `
		CREATE TABLE IF NOT EXISTS favorites (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			song_id INT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT uq_user_song UNIQUE (user_id, song_id)
		);`},
		{"plays", `
		CREATE TABLE IF NOT EXISTS plays (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			song_id INT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_plays_song (song_id)
		);`},
	}

	for _, s := range statements {
		if _, err := DB.Exec(s.query); err != nil {
			return fmt.Errorf("failed to create %s table: %w", s.name, err)
		}
	}

	log.Println("Database schema initialized successfully (or already exists).")
	return nil
}
