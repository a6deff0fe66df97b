package repository

import (
	"database/sql"
	"fmt"
	"time"

	"soundlink/model"
)

// MovieAlbumRepository defines the interface for movie-soundtrack data
// operations.
type MovieAlbumRepository interface {
	CreateMovieAlbum(album *model.MovieAlbum, songIDs []int64) (int64, error)
	GetMovieAlbumByID(id int64) (*model.MovieAlbum, error)
	GetAllMovieAlbums() ([]*model.MovieAlbum, error)
	DeleteMovieAlbum(id int64) error
}

// mysqlMovieAlbumRepository implements MovieAlbumRepository for MySQL.
type mysqlMovieAlbumRepository struct {
	db *sql.DB
}

// NewMySQLMovieAlbumRepository creates a new mysqlMovieAlbumRepository.
func NewMySQLMovieAlbumRepository(db *sql.DB) MovieAlbumRepository {
	return &mysqlMovieAlbumRepository{db: db}
}

// CreateMovieAlbum inserts the album row and its song links in one
// transaction so a half-written link set never becomes visible.
func (r *mysqlMovieAlbumRepository) CreateMovieAlbum(album *model.MovieAlbum, songIDs []int64) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction for CreateMovieAlbum: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.Exec(`INSERT INTO movie_albums (title, image_url, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		album.Title, album.ImageURL, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateMovieAlbum: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateMovieAlbum: %w", err)
	}

	for position, songID := range songIDs {
		_, err = tx.Exec(`INSERT IGNORE INTO movie_album_songs (movie_album_id, song_id, position) VALUES (?, ?, ?)`,
			id, songID, position)
		if err != nil {
			return 0, fmt.Errorf("failed to link song %d to movie album %d: %w", songID, id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit CreateMovieAlbum: %w", err)
	}
	return id, nil
}

// GetMovieAlbumByID retrieves one movie album with its songs resolved.
func (r *mysqlMovieAlbumRepository) GetMovieAlbumByID(id int64) (*model.MovieAlbum, error) {
	query := `SELECT id, title, image_url, created_at, updated_at FROM movie_albums WHERE id = ?`
	row := r.db.QueryRow(query, id)

	album := &model.MovieAlbum{}
	err := row.Scan(&album.ID, &album.Title, &album.ImageURL, &album.CreatedAt, &album.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Movie album not found
		}
		return nil, fmt.Errorf("failed to scan movie album by ID %d: %w", id, err)
	}

	songs, err := r.getMovieAlbumSongs(id)
	if err != nil {
		return nil, err
	}
	album.Songs = songs
	return album, nil
}

// GetAllMovieAlbums retrieves all movie albums, newest first, each with
// its songs resolved.
func (r *mysqlMovieAlbumRepository) GetAllMovieAlbums() ([]*model.MovieAlbum, error) {
	query := `SELECT id, title, image_url, created_at, updated_at FROM movie_albums ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all movie albums: %w", err)
	}
	defer rows.Close()

	albums := make([]*model.MovieAlbum, 0)
	for rows.Next() {
		album := &model.MovieAlbum{}
		err := rows.Scan(&album.ID, &album.Title, &album.ImageURL, &album.CreatedAt, &album.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie album row: %w", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during movie album rows iteration: %w", err)
	}

	for _, album := range albums {
		songs, err := r.getMovieAlbumSongs(album.ID)
		if err != nil {
			return nil, err
		}
		album.Songs = songs
	}
	return albums, nil
}

// getMovieAlbumSongs resolves the linked songs in their stored order,
// skipping links whose song has been deleted.
func (r *mysqlMovieAlbumRepository) getMovieAlbumSongs(albumID int64) ([]*model.Song, error) {
	query := fmt.Sprintf(`SELECT %s FROM songs s
	           INNER JOIN movie_album_songs mas ON mas.song_id = s.id
	           WHERE mas.movie_album_id = ? ORDER BY mas.position ASC`, prefixedSongColumns("s"))
	rows, err := r.db.Query(query, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs for movie album ID %d: %w", albumID, err)
	}
	return collectSongs(rows)
}

// DeleteMovieAlbum removes the album row and its song links.
func (r *mysqlMovieAlbumRepository) DeleteMovieAlbum(id int64) error {
	if _, err := r.db.Exec("DELETE FROM movie_album_songs WHERE movie_album_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete song links of movie album ID %d: %w", id, err)
	}
	if _, err := r.db.Exec("DELETE FROM movie_albums WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete movie album ID %d: %w", id, err)
	}
	return nil
}
