package repository

import (
	"context"

	"clipstream/internal/domain"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var c domain.Comment
	tx := r.db.WithContext(ctx).First(&c, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

func (r *CommentRepository) Update(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Comment{}, id).Error
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID int64, limit, offset int) ([]domain.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("video_id = ?", videoID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var comments []domain.Comment
	if err := query.Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// DeleteByVideo removes every comment referencing the video. Used by the
// video deletion cascade.
func (r *CommentRepository) DeleteByVideo(ctx context.Context, videoID int64) error {
	return r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Delete(&domain.Comment{}).Error
}
