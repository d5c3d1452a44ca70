package like

import (
	"context"

	"clipstream/internal/domain"
	"clipstream/internal/repository"
)

// LikeRepositoryInterface is the subset of the like repository the
// service depends on.
type LikeRepositoryInterface interface {
	Exists(ctx context.Context, userID int64, t repository.LikeTarget) (bool, error)
	Create(ctx context.Context, userID int64, t repository.LikeTarget) error
	Remove(ctx context.Context, userID int64, t repository.LikeTarget) error
	ListLikedVideos(ctx context.Context, userID int64) ([]domain.Like, error)
}

type Service struct {
	likes LikeRepositoryInterface
}

func NewService(likes LikeRepositoryInterface) *Service {
	return &Service{likes: likes}
}

// toggle flips the like state and reports whether the target is now
// liked.
func (s *Service) toggle(ctx context.Context, userID int64, t repository.LikeTarget) (bool, error) {
	exists, err := s.likes.Exists(ctx, userID, t)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.likes.Remove(ctx, userID, t); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.likes.Create(ctx, userID, t); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) ToggleVideoLike(ctx context.Context, userID, videoID int64) (bool, error) {
	return s.toggle(ctx, userID, repository.LikeTarget{VideoID: &videoID})
}

func (s *Service) ToggleCommentLike(ctx context.Context, userID, commentID int64) (bool, error) {
	return s.toggle(ctx, userID, repository.LikeTarget{CommentID: &commentID})
}

func (s *Service) ToggleTweetLike(ctx context.Context, userID, tweetID int64) (bool, error) {
	return s.toggle(ctx, userID, repository.LikeTarget{TweetID: &tweetID})
}

func (s *Service) ListLikedVideos(ctx context.Context, userID int64) ([]domain.Like, error) {
	return s.likes.ListLikedVideos(ctx, userID)
}
