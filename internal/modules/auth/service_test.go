package auth

import (
	"context"
	"testing"
	"time"

	"clipstream/internal/domain"
	"clipstream/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockUserRepo) SetRefreshToken(ctx context.Context, userID int64, tokenValue string) error {
	args := m.Called(ctx, userID, tokenValue)
	return args.Error(0)
}

func (m *mockUserRepo) ClearRefreshToken(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newTokenService() *token.Service {
	return token.New("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Login_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokens := newTokenService()

	existing := &domain.User{
		ID:           10,
		Username:     "ann",
		Email:        "ann@example.com",
		PasswordHash: hashed(t, "s3cret"),
	}

	var persisted string
	userRepo.On("GetByIdentifier", mock.Anything, "ann").Return(existing, nil)
	userRepo.On("SetRefreshToken", mock.Anything, int64(10), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { persisted = args.String(2) }).
		Return(nil)

	service := NewService(userRepo, tokens)

	result, err := service.Login(context.Background(), LoginRequest{Identifier: "ann", Password: "s3cret"})
	require.NoError(t, err)

	// Access token verifies with the correct subject.
	claims, err := tokens.Verify(result.Tokens.AccessToken, token.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(10), claims.UserID)

	// Persisted refresh token equals the one delivered to the caller.
	assert.NotEmpty(t, persisted)
	assert.Equal(t, result.Tokens.RefreshToken, persisted)

	// Sanitized projection: no secret material.
	assert.Equal(t, "ann", result.User.Username)

	userRepo.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)

	existing := &domain.User{
		ID:           10,
		Username:     "ann",
		PasswordHash: hashed(t, "s3cret"),
	}
	userRepo.On("GetByIdentifier", mock.Anything, "ann").Return(existing, nil)

	service := NewService(userRepo, newTokenService())

	_, err := service.Login(context.Background(), LoginRequest{Identifier: "ann", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// No refresh token persisted or altered on failure.
	userRepo.AssertNotCalled(t, "SetRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Login_UnknownUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByIdentifier", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(userRepo, newTokenService())

	_, err := service.Login(context.Background(), LoginRequest{Identifier: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Refresh_RotatesToken(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokens := newTokenService()
	service := NewService(userRepo, tokens)

	current, err := tokens.IssueRefresh(10)
	require.NoError(t, err)

	var persisted string
	userRepo.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10, Username: "ann"}, nil)
	userRepo.On("GetRefreshToken", mock.Anything, int64(10)).Return(current, nil)
	userRepo.On("SetRefreshToken", mock.Anything, int64(10), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { persisted = args.String(2) }).
		Return(nil)

	pair, err := service.Refresh(context.Background(), current)
	require.NoError(t, err)

	// Rotation: the persisted slot now holds a new, different token.
	assert.Equal(t, pair.RefreshToken, persisted)
	assert.NotEqual(t, current, pair.RefreshToken)

	claims, err := tokens.Verify(pair.AccessToken, token.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(10), claims.UserID)

	userRepo.AssertExpectations(t)
}

// A token that verifies but does not equal the persisted value is a
// stale or reused token and must be rejected. This is the corrected
// comparison: matching tokens succeed, mismatching tokens fail.
func TestService_Refresh_RejectsMismatch(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokens := newTokenService()
	service := NewService(userRepo, tokens)

	stale, err := tokens.IssueRefresh(10)
	require.NoError(t, err)
	current, err := tokens.IssueRefresh(10)
	require.NoError(t, err)
	require.NotEqual(t, stale, current)

	userRepo.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10}, nil)
	userRepo.On("GetRefreshToken", mock.Anything, int64(10)).Return(current, nil)

	_, err = service.Refresh(context.Background(), stale)
	assert.ErrorIs(t, err, ErrRefreshTokenMismatch)

	// The persisted slot is untouched on rejection.
	userRepo.AssertNotCalled(t, "SetRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Refresh_OldTokenFailsAfterRotation(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokens := newTokenService()
	service := NewService(userRepo, tokens)

	old, err := tokens.IssueRefresh(10)
	require.NoError(t, err)

	var rotated string
	userRepo.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10}, nil)
	userRepo.On("GetRefreshToken", mock.Anything, int64(10)).Return(old, nil).Once()
	userRepo.On("SetRefreshToken", mock.Anything, int64(10), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { rotated = args.String(2) }).
		Return(nil)

	_, err = service.Refresh(context.Background(), old)
	require.NoError(t, err)
	require.NotEmpty(t, rotated)

	// Reusing the pre-rotation token must now fail.
	userRepo.On("GetRefreshToken", mock.Anything, int64(10)).Return(rotated, nil)
	_, err = service.Refresh(context.Background(), old)
	assert.ErrorIs(t, err, ErrRefreshTokenMismatch)
}

func TestService_Refresh_MissingToken(t *testing.T) {
	service := NewService(new(mockUserRepo), newTokenService())

	_, err := service.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingRefreshToken)
}

func TestService_Refresh_InvalidToken(t *testing.T) {
	service := NewService(new(mockUserRepo), newTokenService())

	_, err := service.Refresh(context.Background(), "garbage.token.value")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Refresh_AccessTokenRejected(t *testing.T) {
	tokens := newTokenService()
	service := NewService(new(mockUserRepo), tokens)

	access, err := tokens.IssueAccess(10)
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Refresh_UserGone(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokens := newTokenService()
	service := NewService(userRepo, tokens)

	refresh, err := tokens.IssueRefresh(99)
	require.NoError(t, err)

	userRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err = service.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Logout_ThenRefreshFails(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokens := newTokenService()
	service := NewService(userRepo, tokens)

	last, err := tokens.IssueRefresh(10)
	require.NoError(t, err)

	userRepo.On("ClearRefreshToken", mock.Anything, int64(10)).Return(nil)
	userRepo.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10}, nil)
	userRepo.On("GetRefreshToken", mock.Anything, int64(10)).Return("", nil)

	require.NoError(t, service.Logout(context.Background(), 10))

	_, err = service.Refresh(context.Background(), last)
	assert.ErrorIs(t, err, ErrRefreshTokenMismatch)
}

func TestService_Logout_Idempotent(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("ClearRefreshToken", mock.Anything, int64(10)).Return(nil).Twice()

	service := NewService(userRepo, newTokenService())

	assert.NoError(t, service.Logout(context.Background(), 10))
	assert.NoError(t, service.Logout(context.Background(), 10))

	userRepo.AssertExpectations(t)
}

func TestService_Register_DuplicateUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "ann", "ann@example.com").Return(true, nil)

	service := NewService(userRepo, newTokenService())

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "ann",
		FullName: "Ann Example",
		Email:    "ann@example.com",
		Password: "s3cret1",
	})
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestService_Register_HashesPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "bob", "bob@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.PasswordHash != "" && u.PasswordHash != "hunter22" && u.RefreshToken == ""
	})).Return(nil)

	service := NewService(userRepo, newTokenService())

	user, err := service.Register(context.Background(), RegisterRequest{
		Username: "bob",
		FullName: "Bob Example",
		Email:    "bob@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	userRepo.AssertExpectations(t)
}
