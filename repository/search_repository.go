package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"soundlink/model"
)

// SearchResult holds the four result collections. All four slices are
// always non-nil, even when a collection has no matches.
type SearchResult struct {
	Songs   []*model.Song   `json:"songs"`
	Albums  []*model.Album  `json:"albums"`
	Users   []*model.User   `json:"users"`
	Artists []*model.Artist `json:"artists"`
}

// SearchRepository runs the case-insensitive substring search across
// songs, albums, users and artists.
type SearchRepository interface {
	Search(query string) (*SearchResult, error)
}

// mysqlSearchRepository implements SearchRepository for MySQL.
type mysqlSearchRepository struct {
	db *sql.DB
}

// NewMySQLSearchRepository creates a new mysqlSearchRepository.
func NewMySQLSearchRepository(db *sql.DB) SearchRepository {
	return &mysqlSearchRepository{db: db}
}

// likePattern builds the LIKE argument for a substring match, escaping
// the LIKE metacharacters so a query like `100%` matches literally.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + strings.ToLower(escaped) + "%"
}

// Search returns every record whose designated text fields contain the
// query as a substring, case-insensitively. Songs and albums match on
// name or description, users on username only, artists on name or bio.
// Results are unpaged: every match is returned.
func (r *mysqlSearchRepository) Search(query string) (*SearchResult, error) {
	pattern := likePattern(query)
	result := &SearchResult{}
	var err error

	if result.Songs, err = r.searchSongs(pattern); err != nil {
		return nil, err
	}
	if result.Albums, err = r.searchAlbums(pattern); err != nil {
		return nil, err
	}
	if result.Users, err = r.searchUsers(pattern); err != nil {
		return nil, err
	}
	if result.Artists, err = r.searchArtists(pattern); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *mysqlSearchRepository) searchSongs(pattern string) ([]*model.Song, error) {
	query := fmt.Sprintf(`SELECT %s FROM songs WHERE LOWER(name) LIKE ? OR LOWER(description) LIKE ?`, songColumns)
	rows, err := r.db.Query(query, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search songs: %w", err)
	}
	return collectSongs(rows)
}

func (r *mysqlSearchRepository) searchAlbums(pattern string) ([]*model.Album, error) {
	query := fmt.Sprintf(`SELECT %s FROM albums WHERE LOWER(name) LIKE ? OR LOWER(description) LIKE ?`, albumColumns)
	rows, err := r.db.Query(query, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search albums: %w", err)
	}
	defer rows.Close()

	albums := make([]*model.Album, 0)
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan album match: %w", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during album match iteration: %w", err)
	}
	return albums, nil
}

func (r *mysqlSearchRepository) searchUsers(pattern string) ([]*model.User, error) {
	query := `SELECT id, username, email, is_admin, created_at, updated_at FROM users WHERE LOWER(username) LIKE ?`
	rows, err := r.db.Query(query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		user := &model.User{}
		err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user match: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during user match iteration: %w", err)
	}
	return users, nil
}

func (r *mysqlSearchRepository) searchArtists(pattern string) ([]*model.Artist, error) {
	query := fmt.Sprintf(`SELECT %s FROM artists WHERE LOWER(name) LIKE ? OR LOWER(bio) LIKE ?`, artistColumns)
	rows, err := r.db.Query(query, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search artists: %w", err)
	}
	defer rows.Close()

	artists := make([]*model.Artist, 0)
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artist match: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during artist match iteration: %w", err)
	}
	return artists, nil
}
