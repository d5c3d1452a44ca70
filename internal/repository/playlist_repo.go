package repository

import (
	"context"

	"clipstream/internal/domain"

	"gorm.io/gorm"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(ctx context.Context, p *domain.Playlist) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id int64) (*domain.Playlist, error) {
	var p domain.Playlist
	tx := r.db.WithContext(ctx).First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Playlist, error) {
	var playlists []domain.Playlist
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *PlaylistRepository) Update(ctx context.Context, p *domain.Playlist) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PlaylistRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).
		Where("playlist_id = ?", id).
		Delete(&domain.PlaylistVideo{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&domain.Playlist{}, id).Error
}

func (r *PlaylistRepository) ContainsVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) error {
	entry := &domain.PlaylistVideo{
		PlaylistID: playlistID,
		VideoID:    videoID,
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) error {
	return r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&domain.PlaylistVideo{}).Error
}

func (r *PlaylistRepository) ListVideoIDs(ctx context.Context, playlistID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Order("created_at ASC").
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// RemoveVideoFromAll drops the video's membership entry from every
// playlist that contains it. Used by the video deletion cascade.
func (r *PlaylistRepository) RemoveVideoFromAll(ctx context.Context, videoID int64) error {
	return r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Delete(&domain.PlaylistVideo{}).Error
}
