package model

import "time"

// Artist represents a performing artist.
type Artist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ArtistWithSongs bundles an artist with the songs that reference them.
type ArtistWithSongs struct {
	Artist Artist  `json:"artist"`
	Songs  []*Song `json:"songs"`
}
