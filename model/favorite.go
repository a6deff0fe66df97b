package model

import "time"

// Favorite asserts that a user marked a song as a favorite. Existence is
// the whole state; the (user, song) pair is unique in the database.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	SongID    int64     `json:"songId"`
	CreatedAt time.Time `json:"createdAt"`
}
