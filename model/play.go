package model

import "time"

// Play is one append-only playback event. Rows are never updated or
// deleted; repeated plays of the same song each get their own row.
type Play struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	SongID    int64     `json:"songId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SongPlayCount is one row of the most-played aggregation.
type SongPlayCount struct {
	Song  *Song `json:"song"`
	Count int64 `json:"count"`
}
