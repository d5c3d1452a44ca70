package repository

import (
	"context"

	"clipstream/internal/domain"

	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, t *domain.Tweet) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TweetRepository) GetByID(ctx context.Context, id int64) (*domain.Tweet, error) {
	var t domain.Tweet
	tx := r.db.WithContext(ctx).First(&t, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &t, nil
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Tweet, error) {
	var tweets []domain.Tweet
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return tweets, nil
}

func (r *TweetRepository) Update(ctx context.Context, t *domain.Tweet) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TweetRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Tweet{}, id).Error
}
