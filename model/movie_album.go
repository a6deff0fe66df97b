package model

import "time"

// MovieAlbum represents a movie soundtrack collection.
type MovieAlbum struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Songs is populated on read; not a column.
	Songs []*Song `json:"songs,omitempty"`
}
