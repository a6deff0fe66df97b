package repository

import (
	"database/sql"
	"fmt"

	"soundlink/model"
)

// FavoriteRepository defines the interface for favorite data operations.
// The (user_id, song_id) pair carries a unique key, so a favorite either
// exists or it doesn't; there is no duplicate state to clean up on read.
type FavoriteRepository interface {
	AddFavorite(userID, songID int64) error
	RemoveFavorite(userID, songID int64) error
	IsFavorite(userID, songID int64) (bool, error)
	GetFavoriteSongs(userID int64) ([]*model.Song, error)
}

// mysqlFavoriteRepository implements FavoriteRepository for MySQL.
type mysqlFavoriteRepository struct {
	db *sql.DB
}

// NewMySQLFavoriteRepository creates a new mysqlFavoriteRepository.
func NewMySQLFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &mysqlFavoriteRepository{db: db}
}

// AddFavorite marks a song as favorite. INSERT IGNORE keeps a repeated
// mark a no-op against the unique key.
func (r *mysqlFavoriteRepository) AddFavorite(userID, songID int64) error {
	query := `INSERT IGNORE INTO favorites (user_id, song_id) VALUES (?, ?)`
	_, err := r.db.Exec(query, userID, songID)
	if err != nil {
		return fmt.Errorf("failed to add favorite for user %d song %d: %w", userID, songID, err)
	}
	return nil
}

// RemoveFavorite unmarks a song. Removing an absent favorite is a no-op.
func (r *mysqlFavoriteRepository) RemoveFavorite(userID, songID int64) error {
	query := `DELETE FROM favorites WHERE user_id = ? AND song_id = ?`
	_, err := r.db.Exec(query, userID, songID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite for user %d song %d: %w", userID, songID, err)
	}
	return nil
}

// IsFavorite reports whether the user has favorited the song.
func (r *mysqlFavoriteRepository) IsFavorite(userID, songID int64) (bool, error) {
	query := `SELECT 1 FROM favorites WHERE user_id = ? AND song_id = ?`
	var one int
	err := r.db.QueryRow(query, userID, songID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check favorite for user %d song %d: %w", userID, songID, err)
	}
	return true, nil
}

// GetFavoriteSongs resolves the user's favorited songs, most recent first.
// Favorites whose song has since been deleted drop out via the inner join.
func (r *mysqlFavoriteRepository) GetFavoriteSongs(userID int64) ([]*model.Song, error) {
	query := fmt.Sprintf(`SELECT %s FROM songs s
	           INNER JOIN favorites f ON f.song_id = s.id
	           WHERE f.user_id = ? ORDER BY f.created_at DESC`, prefixedSongColumns("s"))
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorite songs for user ID %d: %w", userID, err)
	}
	return collectSongs(rows)
}
