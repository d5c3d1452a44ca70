package comment

import (
	"context"

	"clipstream/internal/domain"
)

// CommentRepositoryInterface is the subset of the comment repository the
// service depends on.
type CommentRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	Update(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, id int64) error
	ListByVideo(ctx context.Context, videoID int64, limit, offset int) ([]domain.Comment, int64, error)
}

// VideoReader checks that the commented video actually exists.
type VideoReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Video, error)
}

// Broadcaster pushes new comments to live watchers. May be nil when the
// watch hub is not wired in (tests, background jobs).
type Broadcaster interface {
	BroadcastToVideo(videoID int64, message any) int
}
