package auth

import (
	"context"
	"io"

	"clipstream/internal/domain"
	"clipstream/internal/pkg/token"
)

// UserRepositoryInterface is the subset of the user repository the auth
// service depends on.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	GetRefreshToken(ctx context.Context, userID int64) (string, error)
	SetRefreshToken(ctx context.Context, userID int64, tokenValue string) error
	ClearRefreshToken(ctx context.Context, userID int64) error
}

// TokenIssuer mints and checks the signed session tokens.
type TokenIssuer interface {
	IssueAccess(userID int64) (string, error)
	IssueRefresh(userID int64) (string, error)
	Verify(tokenStr string, kind token.Kind) (*token.Claims, error)
}

// MediaUploader stores the optional profile images sent with a
// registration. May be nil; uploads are then skipped.
type MediaUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
