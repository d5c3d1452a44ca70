package domain

import "time"

type Playlist struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistVideo is a membership entry; integrity with the videos table is
// enforced at the application layer, not by the storage layer.
type PlaylistVideo struct {
	ID         int64     `json:"id"`
	PlaylistID int64     `json:"playlist_id"`
	VideoID    int64     `json:"video_id"`
	CreatedAt  time.Time `json:"created_at"`
}
