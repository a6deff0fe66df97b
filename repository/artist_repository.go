package repository

import (
	"database/sql"
	"fmt"
	"time"

	"soundlink/model"
)

const artistColumns = "id, name, bio, image_url, created_at, updated_at"

// ArtistRepository defines the interface for artist data operations.
type ArtistRepository interface {
	CreateArtist(artist *model.Artist) (int64, error)
	GetArtistByID(id int64) (*model.Artist, error)
	GetAllArtists() ([]*model.Artist, error)
	DeleteArtist(id int64) error
}

// mysqlArtistRepository implements ArtistRepository for MySQL.
type mysqlArtistRepository struct {
	db *sql.DB
}

// NewMySQLArtistRepository creates a new mysqlArtistRepository.
func NewMySQLArtistRepository(db *sql.DB) ArtistRepository {
	return &mysqlArtistRepository{db: db}
}

func scanArtist(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Artist, error) {
	artist := &model.Artist{}
	err := scanner.Scan(&artist.ID, &artist.Name, &artist.Bio, &artist.ImageURL, &artist.CreatedAt, &artist.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return artist, nil
}

// CreateArtist adds a new artist to the database.
func (r *mysqlArtistRepository) CreateArtist(artist *model.Artist) (int64, error) {
	query := `INSERT INTO artists (name, bio, image_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateArtist: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(artist.Name, artist.Bio, artist.ImageURL, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateArtist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateArtist: %w", err)
	}
	return id, nil
}

// GetArtistByID retrieves an artist by their ID.
func (r *mysqlArtistRepository) GetArtistByID(id int64) (*model.Artist, error) {
	query := fmt.Sprintf("SELECT %s FROM artists WHERE id = ?", artistColumns)
	artist, err := scanArtist(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Artist not found
		}
		return nil, fmt.Errorf("failed to scan artist by ID %d: %w", id, err)
	}
	return artist, nil
}

// GetAllArtists retrieves all artists ordered by name.
func (r *mysqlArtistRepository) GetAllArtists() ([]*model.Artist, error) {
	query := fmt.Sprintf("SELECT %s FROM artists ORDER BY name ASC", artistColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all artists: %w", err)
	}
	defer rows.Close()

	artists := make([]*model.Artist, 0)
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artist row: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during artist rows iteration: %w", err)
	}
	return artists, nil
}

// DeleteArtist removes an artist row without cascading into songs or albums.
func (r *mysqlArtistRepository) DeleteArtist(id int64) error {
	_, err := r.db.Exec("DELETE FROM artists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete artist ID %d: %w", id, err)
	}
	return nil
}
