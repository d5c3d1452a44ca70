package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"clipstream/internal/domain"
	"clipstream/internal/pkg/mediastore"
	"clipstream/internal/repository"

	"gorm.io/gorm"
)

// Service contains the video lifecycle, including the deletion cascade
// that keeps comments, likes, playlist memberships and stored media
// consistent when a video goes away.
type Service struct {
	videos    VideoRepositoryInterface
	comments  CommentCleaner
	likes     LikeCleaner
	playlists PlaylistCleaner
	media     MediaStore
}

func NewService(
	videos VideoRepositoryInterface,
	comments CommentCleaner,
	likes LikeCleaner,
	playlists PlaylistCleaner,
	media MediaStore,
) *Service {
	return &Service{
		videos:    videos,
		comments:  comments,
		likes:     likes,
		playlists: playlists,
		media:     media,
	}
}

// Upload bundles one multipart file for the media store.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func (s *Service) Publish(ctx context.Context, ownerID int64, req PublishRequest, videoFile, thumbnail Upload) (*domain.Video, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, ErrMissingInput
	}

	videoKey := mediastore.ObjectKey("videos", videoFile.Filename)
	videoURL, err := s.media.Upload(ctx, videoKey, videoFile.ContentType, videoFile.Body)
	if err != nil {
		return nil, fmt.Errorf("upload video file: %w", err)
	}

	thumbKey := mediastore.ObjectKey("thumbnails", thumbnail.Filename)
	thumbURL, err := s.media.Upload(ctx, thumbKey, thumbnail.ContentType, thumbnail.Body)
	if err != nil {
		// The video object is already stored; drop it rather than leave
		// an orphan nobody references.
		if delErr := s.media.Delete(ctx, videoKey); delErr != nil {
			log.Printf("video publish: orphan cleanup failed key=%s error=%v", videoKey, delErr)
		}
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	v := &domain.Video{
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     videoURL,
		VideoKey:     videoKey,
		ThumbnailURL: thumbURL,
		ThumbnailKey: thumbKey,
		Duration:     req.Duration,
		IsPublished:  true,
	}
	if err := s.videos.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Video, error) {
	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if err := s.videos.IncrementViews(ctx, id); err != nil {
		log.Printf("video get: view counter update failed id=%d error=%v", id, err)
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, req ListRequest) ([]domain.Video, int64, error) {
	return s.videos.List(ctx, repository.ListVideosParams{
		OwnerID:       req.OwnerID,
		Query:         req.Query,
		SortBy:        req.SortBy,
		SortAscending: req.SortAscending,
		Page:          req.Page,
		Limit:         req.Limit,
	})
}

func (s *Service) Update(ctx context.Context, videoID, requesterID int64, req UpdateRequest) (*domain.Video, error) {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Description) == "" {
		return nil, ErrMissingInput
	}

	v, err := s.loadOwned(ctx, videoID, requesterID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		v.Title = req.Title
	}
	if req.Description != "" {
		v.Description = req.Description
	}

	if err := s.videos.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateThumbnail replaces the stored thumbnail object and the record's
// URL in one go.
func (s *Service) UpdateThumbnail(ctx context.Context, videoID, requesterID int64, thumbnail Upload) (*domain.Video, error) {
	v, err := s.loadOwned(ctx, videoID, requesterID)
	if err != nil {
		return nil, err
	}

	oldKey := v.ThumbnailKey
	key := mediastore.ObjectKey("thumbnails", thumbnail.Filename)
	url, err := s.media.Upload(ctx, key, thumbnail.ContentType, thumbnail.Body)
	if err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	v.ThumbnailKey = key
	v.ThumbnailURL = url
	if err := s.videos.Update(ctx, v); err != nil {
		return nil, err
	}

	if oldKey != "" {
		if err := s.media.Delete(ctx, oldKey); err != nil {
			log.Printf("video thumbnail: stale object cleanup failed key=%s error=%v", oldKey, err)
		}
	}
	return v, nil
}

func (s *Service) TogglePublish(ctx context.Context, videoID, requesterID int64) (*domain.Video, error) {
	v, err := s.loadOwned(ctx, videoID, requesterID)
	if err != nil {
		return nil, err
	}

	v.IsPublished = !v.IsPublished
	if err := s.videos.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// CascadeStep is one cleanup operation of the deletion cascade.
type CascadeStep struct {
	Name string
	Err  error
}

// CascadeReport collects the outcome of every cleanup step. The primary
// deletion has already been committed by the time the report is built;
// failed steps leave orphaned dependents but never resurrect the video.
type CascadeReport struct {
	Steps []CascadeStep
}

func (r *CascadeReport) add(name string, err error) {
	r.Steps = append(r.Steps, CascadeStep{Name: name, Err: err})
}

// Failed returns the names of the steps that reported an error.
func (r *CascadeReport) Failed() []string {
	var failed []string
	for _, step := range r.Steps {
		if step.Err != nil {
			failed = append(failed, step.Name)
		}
	}
	return failed
}

// Delete removes the video after an ownership check and then runs the
// cascade: comments, likes, playlist memberships and stored media
// objects. Every step is attempted regardless of earlier failures; the
// report carries per-step results.
func (s *Service) Delete(ctx context.Context, videoID, requesterID int64) (*CascadeReport, error) {
	v, err := s.loadOwned(ctx, videoID, requesterID)
	if err != nil {
		return nil, err
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		return nil, err
	}

	report := &CascadeReport{}
	report.add("comments", s.comments.DeleteByVideo(ctx, videoID))
	report.add("likes", s.likes.DeleteByVideo(ctx, videoID))
	report.add("playlists", s.playlists.RemoveVideoFromAll(ctx, videoID))
	report.add("media:video", s.media.Delete(ctx, v.VideoKey))
	report.add("media:thumbnail", s.media.Delete(ctx, v.ThumbnailKey))

	for _, step := range report.Steps {
		if step.Err != nil {
			log.Printf("video delete cascade: step=%s video_id=%d error=%v", step.Name, videoID, step.Err)
		}
	}
	return report, nil
}

func (s *Service) loadOwned(ctx context.Context, videoID, requesterID int64) (*domain.Video, error) {
	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if v.OwnerID != requesterID {
		return nil, ErrNotOwner
	}
	return v, nil
}
