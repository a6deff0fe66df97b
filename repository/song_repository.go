package repository

import (
	"database/sql"
	"fmt"
	"time"

	"soundlink/model"
)

const songColumns = "id, name, description, album_id, artist_id, file_url, image_url, bg_colour, duration, created_at, updated_at"

// SongRepository defines the interface for song data operations.
type SongRepository interface {
	CreateSong(song *model.Song) (int64, error)
	GetSongByID(id int64) (*model.Song, error)
	GetAllSongs() ([]*model.Song, error)
	GetSongsByAlbumID(albumID int64) ([]*model.Song, error)
	GetSongsByArtistID(artistID int64) ([]*model.Song, error)
	UpdateSong(id int64, edit *model.SongEdit) error
	DeleteSong(id int64) error
}

// mysqlSongRepository implements SongRepository for MySQL.
type mysqlSongRepository struct {
	db *sql.DB
}

// NewMySQLSongRepository creates a new mysqlSongRepository.
func NewMySQLSongRepository(db *sql.DB) SongRepository {
	return &mysqlSongRepository{db: db}
}

func scanSong(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Song, error) {
	song := &model.Song{}
	err := scanner.Scan(&song.ID, &song.Name, &song.Description, &song.AlbumID, &song.ArtistID,
		&song.FileURL, &song.ImageURL, &song.BgColour, &song.Duration, &song.CreatedAt, &song.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return song, nil
}

func collectSongs(rows *sql.Rows) ([]*model.Song, error) {
	defer rows.Close()

	songs := make([]*model.Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song row: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during song rows iteration: %w", err)
	}
	return songs, nil
}

// CreateSong adds a new song to the database.
func (r *mysqlSongRepository) CreateSong(song *model.Song) (int64, error) {
	query := `INSERT INTO songs (name, description, album_id, artist_id, file_url, image_url, bg_colour, duration, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateSong: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(song.Name, song.Description, song.AlbumID, song.ArtistID,
		song.FileURL, song.ImageURL, song.BgColour, song.Duration, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateSong: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateSong: %w", err)
	}
	return id, nil
}

// GetSongByID retrieves a song by its ID.
func (r *mysqlSongRepository) GetSongByID(id int64) (*model.Song, error) {
	query := fmt.Sprintf("SELECT %s FROM songs WHERE id = ?", songColumns)
	song, err := scanSong(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Song not found
		}
		return nil, fmt.Errorf("failed to scan song by ID %d: %w", id, err)
	}
	return song, nil
}

// GetAllSongs retrieves every song, newest first. The catalog is served
// unpaged; callers own any trimming.
func (r *mysqlSongRepository) GetAllSongs() ([]*model.Song, error) {
	query := fmt.Sprintf("SELECT %s FROM songs ORDER BY created_at DESC", songColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all songs: %w", err)
	}
	return collectSongs(rows)
}

// GetSongsByAlbumID retrieves every song referencing the given album.
func (r *mysqlSongRepository) GetSongsByAlbumID(albumID int64) ([]*model.Song, error) {
	query := fmt.Sprintf("SELECT %s FROM songs WHERE album_id = ? ORDER BY created_at ASC", songColumns)
	rows, err := r.db.Query(query, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs for album ID %d: %w", albumID, err)
	}
	return collectSongs(rows)
}

// GetSongsByArtistID retrieves every song referencing the given artist.
func (r *mysqlSongRepository) GetSongsByArtistID(artistID int64) ([]*model.Song, error) {
	query := fmt.Sprintf("SELECT %s FROM songs WHERE artist_id = ? ORDER BY created_at ASC", songColumns)
	rows, err := r.db.Query(query, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs for artist ID %d: %w", artistID, err)
	}
	return collectSongs(rows)
}

// UpdateSong replaces the editable fields wholesale.
func (r *mysqlSongRepository) UpdateSong(id int64, edit *model.SongEdit) error {
	query := `UPDATE songs SET name = ?, description = ?, bg_colour = ?, image_url = ?, updated_at = ? WHERE id = ?`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for UpdateSong: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(edit.Name, edit.Description, edit.BgColour, edit.ImageURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to execute UpdateSong for song ID %d: %w", id, err)
	}
	return nil
}

// DeleteSong removes a song row. Playlist, favorite and play rows that
// reference it are left in place; readers skip the dangling reference.
func (r *mysqlSongRepository) DeleteSong(id int64) error {
	_, err := r.db.Exec("DELETE FROM songs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete song ID %d: %w", id, err)
	}
	return nil
}
