package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"clipstream/internal/domain"
	"clipstream/internal/pkg/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service owns the session lifecycle: login issues an access+refresh
// pair and persists the refresh token, refresh rotates the pair, logout
// clears the persisted token. One refresh token is live per user at a
// time; refreshing with any other value is treated as reuse.
type Service struct {
	users  UserRepositoryInterface
	tokens TokenIssuer
}

type LoginResult struct {
	User   *UserPublic
	Tokens TokenPair
}

func NewService(users UserRepositoryInterface, tokens TokenIssuer) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserPublic, error) {
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:      strings.ToLower(strings.TrimSpace(req.Username)),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:      req.FullName,
		PasswordHash:  string(hash),
		AvatarURL:     req.AvatarURL,
		CoverImageURL: req.CoverImageURL,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitize(user), nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// bcrypt comparison fails closed: any error means no match.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: sanitize(user), Tokens: pair}, nil
}

// Refresh validates the presented refresh token, checks it against the
// persisted slot and rotates the pair. The presented token must equal
// the persisted value exactly; anything else is a stale or reused token
// and fails the session.
func (s *Service) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	if strings.TrimSpace(presented) == "" {
		return nil, ErrMissingRefreshToken
	}

	claims, err := s.tokens.Verify(presented, token.KindRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	persisted, err := s.users.GetRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if persisted == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(persisted)) != 1 {
		return nil, ErrRefreshTokenMismatch
	}

	pair, err := s.issuePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Logout clears the persisted refresh token. Safe to call when no token
// is live.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.users.ClearRefreshToken(ctx, userID)
}

func (s *Service) CurrentUser(ctx context.Context, userID int64) (*UserPublic, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitize(user), nil
}

// issuePair mints a fresh access+refresh pair and overwrites the
// persisted refresh slot, invalidating whatever was there before.
func (s *Service) issuePair(ctx context.Context, userID int64) (TokenPair, error) {
	access, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.users.SetRefreshToken(ctx, userID, refresh); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func sanitize(u *domain.User) *UserPublic {
	return &UserPublic{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
	}
}
