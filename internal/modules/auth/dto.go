package auth

// RegisterRequest binds from JSON or from multipart form fields; the
// multipart form may also carry optional "avatar" and "cover_image"
// files.
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3"`
	FullName string `json:"fullname" form:"fullname" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`

	// Filled by the handler after the optional image uploads.
	AvatarURL     string `json:"-" form:"-"`
	CoverImageURL string `json:"-" form:"-"`
}

// LoginRequest accepts either the username or the email in Identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserPublic is the sanitized identity projection returned to callers:
// no password hash, no refresh token.
type UserPublic struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FullName      string `json:"fullname"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
}
