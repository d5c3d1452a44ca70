package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateUser        = errors.New("username or email already taken")
	ErrMissingRefreshToken  = errors.New("refresh token is missing")
	ErrInvalidRefreshToken  = errors.New("refresh token is invalid or expired")
	ErrRefreshTokenMismatch = errors.New("refresh token does not match the active session")
)
