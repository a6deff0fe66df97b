package repository

import (
	"database/sql"
	"fmt"
	"time"

	"soundlink/model"
)

const albumColumns = "id, name, description, image_url, bg_colour, artist_id, created_at, updated_at"

// AlbumRepository defines the interface for album data operations.
type AlbumRepository interface {
	CreateAlbum(album *model.Album) (int64, error)
	GetAlbumByID(id int64) (*model.Album, error)
	GetAllAlbums() ([]*model.Album, error)
	DeleteAlbum(id int64) error
}

// mysqlAlbumRepository implements AlbumRepository for MySQL.
type mysqlAlbumRepository struct {
	db *sql.DB
}

// NewMySQLAlbumRepository creates a new mysqlAlbumRepository.
func NewMySQLAlbumRepository(db *sql.DB) AlbumRepository {
	return &mysqlAlbumRepository{db: db}
}

func scanAlbum(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Album, error) {
	album := &model.Album{}
	err := scanner.Scan(&album.ID, &album.Name, &album.Description, &album.ImageURL,
		&album.BgColour, &album.ArtistID, &album.CreatedAt, &album.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return album, nil
}

// CreateAlbum adds a new album to the database.
func (r *mysqlAlbumRepository) CreateAlbum(album *model.Album) (int64, error) {
	query := `INSERT INTO albums (name, description, image_url, bg_colour, artist_id, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateAlbum: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(album.Name, album.Description, album.ImageURL, album.BgColour, album.ArtistID, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateAlbum: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateAlbum: %w", err)
	}
	return id, nil
}

// GetAlbumByID retrieves an album by its ID.
func (r *mysqlAlbumRepository) GetAlbumByID(id int64) (*model.Album, error) {
	query := fmt.Sprintf("SELECT %s FROM albums WHERE id = ?", albumColumns)
	album, err := scanAlbum(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Album not found
		}
		return nil, fmt.Errorf("failed to scan album by ID %d: %w", id, err)
	}
	return album, nil
}

// GetAllAlbums retrieves all albums, newest first.
func (r *mysqlAlbumRepository) GetAllAlbums() ([]*model.Album, error) {
	query := fmt.Sprintf("SELECT %s FROM albums ORDER BY created_at DESC", albumColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all albums: %w", err)
	}
	defer rows.Close()

	albums := make([]*model.Album, 0)
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan album row: %w", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during album rows iteration: %w", err)
	}
	return albums, nil
}

// DeleteAlbum removes an album row. Songs keep their album_id; readers
// treat the dangling reference as "item unavailable".
func (r *mysqlAlbumRepository) DeleteAlbum(id int64) error {
	_, err := r.db.Exec("DELETE FROM albums WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete album ID %d: %w", id, err)
	}
	return nil
}
