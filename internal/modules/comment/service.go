package comment

import (
	"context"
	"errors"
	"strings"

	"clipstream/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	comments CommentRepositoryInterface
	videos   VideoReader
	events   Broadcaster
}

func NewService(comments CommentRepositoryInterface, videos VideoReader, events Broadcaster) *Service {
	return &Service{
		comments: comments,
		videos:   videos,
		events:   events,
	}
}

func (s *Service) ListByVideo(ctx context.Context, videoID int64, page, limit int) ([]domain.Comment, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	return s.comments.ListByVideo(ctx, videoID, limit, (page-1)*limit)
}

func (s *Service) Add(ctx context.Context, videoID, ownerID int64, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	c := &domain.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.BroadcastToVideo(videoID, c)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, commentID, requesterID int64, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	c, err := s.loadOwned(ctx, commentID, requesterID)
	if err != nil {
		return nil, err
	}

	c.Content = content
	if err := s.comments.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, commentID, requesterID int64) error {
	if _, err := s.loadOwned(ctx, commentID, requesterID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *Service) loadOwned(ctx context.Context, commentID, requesterID int64) (*domain.Comment, error) {
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if c.OwnerID != requesterID {
		return nil, ErrNotOwner
	}
	return c, nil
}
