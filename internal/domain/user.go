package domain

import "time"

// User is an account record. RefreshToken holds the single currently
// valid refresh token for the account, or "" when the user is logged out.
// It is always a signed token string, never the password or its hash.
type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username" validate:"required,min=3"`
	Email         string    `json:"email" validate:"required,email"`
	FullName      string    `json:"fullname"`
	PasswordHash  string    `json:"-"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	RefreshToken  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
