package domain

import "time"

// Video is owned by exactly one user. VideoKey and ThumbnailKey are the
// object-storage keys backing the public URLs; they are needed to clean
// up the stored media when the video is deleted.
type Video struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	VideoKey     string    `json:"-"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ThumbnailKey string    `json:"-"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
