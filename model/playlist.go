package model

import "time"

// Playlist represents a user-owned, deduplicated set of song references.
// Duplicate prevention lives in the playlist_songs unique key, not here.
type Playlist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Songs is populated on read; not a column.
	Songs []*Song `json:"songs"`
}
