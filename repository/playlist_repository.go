package repository

import (
	"database/sql"
	"fmt"

	"soundlink/model"
)

// PlaylistRepository defines the interface for playlist data operations.
//
// AddSong and RemoveSong are single atomic statements against the
// playlist_songs junction table (unique key on playlist_id, song_id), so
// concurrent writers cannot lose an append the way a read-modify-write of
// an embedded array could.
type PlaylistRepository interface {
	CreatePlaylist(name string, userID int64) (*model.Playlist, error)
	GetPlaylistByID(id int64) (*model.Playlist, error)
	GetPlaylistsByUserID(userID int64) ([]*model.Playlist, error)
	AddSong(playlistID, songID int64) error
	RemoveSong(playlistID, songID int64) error
	DeletePlaylist(id int64) error
}

// mysqlPlaylistRepository implements PlaylistRepository for MySQL.
type mysqlPlaylistRepository struct {
	db *sql.DB
}

// NewMySQLPlaylistRepository creates a new mysqlPlaylistRepository.
func NewMySQLPlaylistRepository(db *sql.DB) PlaylistRepository {
	return &mysqlPlaylistRepository{db: db}
}

// CreatePlaylist creates an empty playlist owned by the given user.
// Names are not unique; a user may own several playlists with the same name.
func (r *mysqlPlaylistRepository) CreatePlaylist(name string, userID int64) (*model.Playlist, error) {
	query := `INSERT INTO playlists (name, user_id) VALUES (?, ?)`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement for CreatePlaylist: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(name, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute CreatePlaylist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for CreatePlaylist: %w", err)
	}

	return r.GetPlaylistByID(id)
}

// GetPlaylistByID retrieves one playlist with its songs resolved.
// Returns (nil, nil) when the id does not exist.
func (r *mysqlPlaylistRepository) GetPlaylistByID(id int64) (*model.Playlist, error) {
	query := `SELECT id, name, user_id, created_at, updated_at FROM playlists WHERE id = ?`
	row := r.db.QueryRow(query, id)

	playlist := &model.Playlist{}
	err := row.Scan(&playlist.ID, &playlist.Name, &playlist.UserID, &playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Playlist not found
		}
		return nil, fmt.Errorf("failed to scan playlist by ID %d: %w", id, err)
	}

	songs, err := r.getPlaylistSongs(id)
	if err != nil {
		return nil, err
	}
	playlist.Songs = songs
	return playlist, nil
}

// GetPlaylistsByUserID retrieves every playlist owned by the user, each
// with its songs resolved.
func (r *mysqlPlaylistRepository) GetPlaylistsByUserID(userID int64) ([]*model.Playlist, error) {
	query := `SELECT id, name, user_id, created_at, updated_at FROM playlists WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists for user ID %d: %w", userID, err)
	}
	defer rows.Close()

	playlists := make([]*model.Playlist, 0)
	for rows.Next() {
		playlist := &model.Playlist{}
		err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.UserID, &playlist.CreatedAt, &playlist.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist in GetPlaylistsByUserID: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetPlaylistsByUserID: %w", err)
	}

	for _, playlist := range playlists {
		songs, err := r.getPlaylistSongs(playlist.ID)
		if err != nil {
			return nil, err
		}
		playlist.Songs = songs
	}
	return playlists, nil
}

// getPlaylistSongs resolves the song rows for a playlist. The inner join
// drops references to songs that no longer exist, so a deleted song shows
// up as simply absent rather than breaking the read.
func (r *mysqlPlaylistRepository) getPlaylistSongs(playlistID int64) ([]*model.Song, error) {
	query := fmt.Sprintf(`SELECT %s FROM songs s
	           INNER JOIN playlist_songs ps ON ps.song_id = s.id
	           WHERE ps.playlist_id = ? ORDER BY ps.added_at ASC`, prefixedSongColumns("s"))
	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs for playlist ID %d: %w", playlistID, err)
	}
	return collectSongs(rows)
}

// AddSong appends a song reference. INSERT IGNORE against the unique
// (playlist_id, song_id) key makes repeated adds a no-op.
func (r *mysqlPlaylistRepository) AddSong(playlistID, songID int64) error {
	query := `INSERT IGNORE INTO playlist_songs (playlist_id, song_id) VALUES (?, ?)`
	_, err := r.db.Exec(query, playlistID, songID)
	if err != nil {
		return fmt.Errorf("failed to add song %d to playlist %d: %w", songID, playlistID, err)
	}
	return nil
}

// RemoveSong filters a song reference out. Removing an absent song is a no-op.
func (r *mysqlPlaylistRepository) RemoveSong(playlistID, songID int64) error {
	query := `DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?`
	_, err := r.db.Exec(query, playlistID, songID)
	if err != nil {
		return fmt.Errorf("failed to remove song %d from playlist %d: %w", songID, playlistID, err)
	}
	return nil
}

// DeletePlaylist deletes unconditionally. A non-existent id deletes zero
// rows and still returns nil; callers report success either way.
func (r *mysqlPlaylistRepository) DeletePlaylist(id int64) error {
	if _, err := r.db.Exec("DELETE FROM playlist_songs WHERE playlist_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete songs of playlist ID %d: %w", id, err)
	}
	if _, err := r.db.Exec("DELETE FROM playlists WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete playlist ID %d: %w", id, err)
	}
	return nil
}

// prefixedSongColumns qualifies the song column list with a table alias
// for join queries.
func prefixedSongColumns(alias string) string {
	return fmt.Sprintf("%s.id, %s.name, %s.description, %s.album_id, %s.artist_id, %s.file_url, %s.image_url, %s.bg_colour, %s.duration, %s.created_at, %s.updated_at",
		alias, alias, alias, alias, alias, alias, alias, alias, alias, alias, alias)
}
