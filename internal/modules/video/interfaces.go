package video

import (
	"context"
	"io"

	"clipstream/internal/domain"
	"clipstream/internal/repository"
)

// VideoRepositoryInterface is the subset of the video repository the
// service depends on.
type VideoRepositoryInterface interface {
	Create(ctx context.Context, v *domain.Video) error
	GetByID(ctx context.Context, id int64) (*domain.Video, error)
	Update(ctx context.Context, v *domain.Video) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p repository.ListVideosParams) ([]domain.Video, int64, error)
	IncrementViews(ctx context.Context, id int64) error
}

// CommentCleaner removes the comments referencing a deleted video.
type CommentCleaner interface {
	DeleteByVideo(ctx context.Context, videoID int64) error
}

// LikeCleaner removes the likes referencing a deleted video.
type LikeCleaner interface {
	DeleteByVideo(ctx context.Context, videoID int64) error
}

// PlaylistCleaner removes a deleted video from playlist memberships.
type PlaylistCleaner interface {
	RemoveVideoFromAll(ctx context.Context, videoID int64) error
}

// MediaStore stores and deletes the uploaded media objects.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}
