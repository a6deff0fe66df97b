package repository

import (
	"database/sql"
	"fmt"

	"soundlink/model"
)

// PlayRepository defines the interface for play-event data operations.
// The plays table is append-only: there is deliberately no update or
// delete method, and repeated plays are not deduplicated.
type PlayRepository interface {
	CreatePlay(userID, songID int64) (int64, error)
	MostPlayed(limit int) ([]*model.SongPlayCount, error)
}

// mysqlPlayRepository implements PlayRepository for MySQL.
type mysqlPlayRepository struct {
	db *sql.DB
}

// NewMySQLPlayRepository creates a new mysqlPlayRepository.
func NewMySQLPlayRepository(db *sql.DB) PlayRepository {
	return &mysqlPlayRepository{db: db}
}

// CreatePlay records one playback event.
func (r *mysqlPlayRepository) CreatePlay(userID, songID int64) (int64, error) {
	query := `INSERT INTO plays (user_id, song_id) VALUES (?, ?)`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreatePlay: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(userID, songID)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreatePlay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreatePlay: %w", err)
	}
	return id, nil
}

// MostPlayed aggregates the play log by song. Plays whose song has since
// been deleted drop out via the inner join.
func (r *mysqlPlayRepository) MostPlayed(limit int) ([]*model.SongPlayCount, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(p.id) AS play_count FROM plays p
	           INNER JOIN songs s ON s.id = p.song_id
	           GROUP BY s.id ORDER BY play_count DESC LIMIT ?`, prefixedSongColumns("s"))
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query most played songs: %w", err)
	}
	defer rows.Close()

	results := make([]*model.SongPlayCount, 0)
	for rows.Next() {
		song := &model.Song{}
		var count int64
		err := rows.Scan(&song.ID, &song.Name, &song.Description, &song.AlbumID, &song.ArtistID,
			&song.FileURL, &song.ImageURL, &song.BgColour, &song.Duration, &song.CreatedAt, &song.UpdatedAt, &count)
		if err != nil {
			return nil, fmt.Errorf("failed to scan most played row: %w", err)
		}
		results = append(results, &model.SongPlayCount{Song: song, Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during most played rows iteration: %w", err)
	}
	return results, nil
}
