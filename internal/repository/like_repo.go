package repository

import (
	"context"

	"clipstream/internal/domain"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// LikeTarget identifies what a like points at. Exactly one field is set.
type LikeTarget struct {
	VideoID   *int64
	CommentID *int64
	TweetID   *int64
}

func (r *LikeRepository) targetQuery(ctx context.Context, userID int64, t LikeTarget) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&domain.Like{}).Where("liked_by_id = ?", userID)
	switch {
	case t.VideoID != nil:
		query = query.Where("video_id = ?", *t.VideoID)
	case t.CommentID != nil:
		query = query.Where("comment_id = ?", *t.CommentID)
	case t.TweetID != nil:
		query = query.Where("tweet_id = ?", *t.TweetID)
	}
	return query
}

func (r *LikeRepository) Exists(ctx context.Context, userID int64, t LikeTarget) (bool, error) {
	var count int64
	if err := r.targetQuery(ctx, userID, t).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *LikeRepository) Create(ctx context.Context, userID int64, t LikeTarget) error {
	like := &domain.Like{
		LikedByID: userID,
		VideoID:   t.VideoID,
		CommentID: t.CommentID,
		TweetID:   t.TweetID,
	}
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *LikeRepository) Remove(ctx context.Context, userID int64, t LikeTarget) error {
	return r.targetQuery(ctx, userID, t).Delete(&domain.Like{}).Error
}

func (r *LikeRepository) ListLikedVideos(ctx context.Context, userID int64) ([]domain.Like, error) {
	var likes []domain.Like
	err := r.db.WithContext(ctx).
		Where("liked_by_id = ? AND video_id IS NOT NULL", userID).
		Order("created_at DESC").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *LikeRepository) CountByVideo(ctx context.Context, videoID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Where("video_id = ?", videoID).
		Count(&count).Error
	return count, err
}

// CountForOwnerVideos counts likes across every video the owner has
// published. Feeds the channel dashboard.
func (r *LikeRepository) CountForOwnerVideos(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

// DeleteByVideo removes every like referencing the video. Used by the
// video deletion cascade.
func (r *LikeRepository) DeleteByVideo(ctx context.Context, videoID int64) error {
	return r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Delete(&domain.Like{}).Error
}
