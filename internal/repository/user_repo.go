package repository

import (
	"context"
	"strings"
	"time"

	"clipstream/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Username      string    `gorm:"column:username;uniqueIndex"`
	Email         string    `gorm:"column:email;uniqueIndex"`
	FullName      string    `gorm:"column:full_name"`
	PasswordHash  string    `gorm:"column:password_hash"`
	AvatarURL     *string   `gorm:"column:avatar_url"`
	CoverImageURL *string   `gorm:"column:cover_image_url"`
	RefreshToken  *string   `gorm:"column:refresh_token"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var avatar, cover, refresh string
	if m.AvatarURL != nil {
		avatar = *m.AvatarURL
	}
	if m.CoverImageURL != nil {
		cover = *m.CoverImageURL
	}
	if m.RefreshToken != nil {
		refresh = *m.RefreshToken
	}

	return &domain.User{
		ID:            m.ID,
		Username:      m.Username,
		Email:         m.Email,
		FullName:      m.FullName,
		PasswordHash:  m.PasswordHash,
		AvatarURL:     avatar,
		CoverImageURL: cover,
		RefreshToken:  refresh,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))
	username := strings.TrimSpace(strings.ToLower(u.Username))

	var avatar, cover, refresh *string
	if u.AvatarURL != "" {
		v := u.AvatarURL
		avatar = &v
	}
	if u.CoverImageURL != "" {
		v := u.CoverImageURL
		cover = &v
	}
	if u.RefreshToken != "" {
		v := u.RefreshToken
		refresh = &v
	}

	return userModel{
		ID:            u.ID,
		Username:      username,
		Email:         email,
		FullName:      u.FullName,
		PasswordHash:  u.PasswordHash,
		AvatarURL:     avatar,
		CoverImageURL: cover,
		RefreshToken:  refresh,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// GetByIdentifier looks a user up by username or email, matching
// whichever the caller typed into the login form.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	ident := strings.ToLower(strings.TrimSpace(identifier))
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(username) = ? OR LOWER(email) = ?", ident, ident).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(username) = ? OR LOWER(email) = ?",
			strings.ToLower(strings.TrimSpace(username)),
			strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	return r.db.WithContext(ctx).Save(&m).Error
}

// GetRefreshToken reads the single persisted refresh-token slot.
// Returns "" when no token is live.
func (r *UserRepository) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Select("id", "refresh_token").First(&m, userID)
	if tx.Error != nil {
		return "", tx.Error
	}
	if m.RefreshToken == nil {
		return "", nil
	}
	return *m.RefreshToken, nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, userID int64, tokenValue string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("refresh_token", tokenValue).Error
}

// ClearRefreshToken empties the slot. Clearing an already-empty slot is
// not an error, which keeps logout idempotent.
func (r *UserRepository) ClearRefreshToken(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("refresh_token", nil).Error
}
