package tweet

import (
	"context"
	"errors"
	"strings"

	"clipstream/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrTweetNotFound = errors.New("tweet not found")
	ErrNotOwner      = errors.New("requester does not own this tweet")
	ErrEmptyContent  = errors.New("tweet content is empty")
)

// TweetRepositoryInterface is the subset of the tweet repository the
// service depends on.
type TweetRepositoryInterface interface {
	Create(ctx context.Context, t *domain.Tweet) error
	GetByID(ctx context.Context, id int64) (*domain.Tweet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Tweet, error)
	Update(ctx context.Context, t *domain.Tweet) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	tweets TweetRepositoryInterface
}

func NewService(tweets TweetRepositoryInterface) *Service {
	return &Service{tweets: tweets}
}

func (s *Service) Create(ctx context.Context, ownerID int64, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	t := &domain.Tweet{
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.tweets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Tweet, error) {
	return s.tweets.ListByOwner(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, tweetID, requesterID int64, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	t, err := s.loadOwned(ctx, tweetID, requesterID)
	if err != nil {
		return nil, err
	}

	t.Content = content
	if err := s.tweets.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, tweetID, requesterID int64) error {
	if _, err := s.loadOwned(ctx, tweetID, requesterID); err != nil {
		return err
	}
	return s.tweets.Delete(ctx, tweetID)
}

func (s *Service) loadOwned(ctx context.Context, tweetID, requesterID int64) (*domain.Tweet, error) {
	t, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	if t.OwnerID != requesterID {
		return nil, ErrNotOwner
	}
	return t, nil
}
