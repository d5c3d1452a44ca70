package domain

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	VideoID   int64     `json:"video_id"`
	OwnerID   int64     `json:"owner_id"`
	Content   string    `json:"content" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
