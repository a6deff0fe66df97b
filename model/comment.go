package model

import "time"

// Comment is a user comment attached to either a song or an album.
// Managed through GORM; the table is auto-migrated from this struct.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"userId" gorm:"not null;index"`
	SongID    *int64    `json:"songId,omitempty" gorm:"index"`
	AlbumID   *int64    `json:"albumId,omitempty" gorm:"index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`

	// Username is joined in on read for display; not a column.
	Username string `json:"username,omitempty" gorm:"-"`
}
