package model

import (
	"database/sql"
	"time"
)

// Album represents an album in the catalog.
type Album struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ImageURL    string        `json:"imageUrl"`
	BgColour    string        `json:"bgColour"`
	ArtistID    sql.NullInt64 `json:"artistId"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// AlbumWithSongs bundles an album with the songs that reference it.
type AlbumWithSongs struct {
	Album Album   `json:"album"`
	Songs []*Song `json:"songs"`
}
