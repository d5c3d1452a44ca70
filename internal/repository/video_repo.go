package repository

import (
	"context"
	"strings"

	"clipstream/internal/domain"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// ListVideosParams narrows and pages the video listing. Zero values mean
// "no filter" / defaults.
type ListVideosParams struct {
	OwnerID       int64
	Query         string
	SortBy        string
	SortAscending bool
	Page          int
	Limit         int
}

func (r *VideoRepository) Create(ctx context.Context, v *domain.Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*domain.Video, error) {
	var v domain.Video
	tx := r.db.WithContext(ctx).First(&v, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &v, nil
}

func (r *VideoRepository) Update(ctx context.Context, v *domain.Video) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VideoRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Video{}, id).Error
}

func (r *VideoRepository) List(ctx context.Context, p ListVideosParams) ([]domain.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Video{})

	if p.OwnerID != 0 {
		query = query.Where("owner_id = ?", p.OwnerID)
	} else {
		query = query.Where("is_published = ?", true)
	}
	if q := strings.TrimSpace(p.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := p.SortBy
	switch sortBy {
	case "title", "views", "duration", "created_at":
	default:
		sortBy = "created_at"
	}
	direction := "DESC"
	if p.SortAscending {
		direction = "ASC"
	}
	query = query.Order(sortBy + " " + direction)

	limit := p.Limit
	if limit <= 0 {
		limit = 10
	}
	page := p.Page
	if page <= 0 {
		page = 1
	}
	query = query.Limit(limit).Offset((page - 1) * limit)

	var videos []domain.Video
	if err := query.Find(&videos).Error; err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

// OwnerStats aggregates per-channel counters for the dashboard.
type OwnerStats struct {
	TotalVideos int64
	TotalViews  int64
}

func (r *VideoRepository) StatsByOwner(ctx context.Context, ownerID int64) (*OwnerStats, error) {
	var stats OwnerStats
	tx := r.db.WithContext(ctx).Model(&domain.Video{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("owner_id = ?", ownerID).
		Scan(&stats)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &stats, nil
}
