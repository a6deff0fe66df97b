package model

import (
	"database/sql"
	"time"
)

// Song represents one track in the catalog. AlbumID and ArtistID are
// optional references; a song may exist without either.
type Song struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	AlbumID     sql.NullInt64  `json:"albumId"`
	ArtistID    sql.NullInt64  `json:"artistId"`
	FileURL     string         `json:"fileUrl"`
	ImageURL    string         `json:"imageUrl"`
	BgColour    string         `json:"bgColour"`
	Duration    string         `json:"duration"` // "m:ss", as shown by the player
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// SongEdit carries the fields replaced wholesale by the edit operation.
type SongEdit struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BgColour    string `json:"bgColour"`
	ImageURL    string `json:"imageUrl"`
}
