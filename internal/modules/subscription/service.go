package subscription

import (
	"context"
	"errors"

	"clipstream/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrSelfSubscribe   = errors.New("cannot subscribe to yourself")
	ErrChannelNotFound = errors.New("channel not found")
)

// SubscriptionRepositoryInterface is the subset of the subscription
// repository the service depends on.
type SubscriptionRepositoryInterface interface {
	Exists(ctx context.Context, subscriberID, channelID int64) (bool, error)
	Create(ctx context.Context, subscriberID, channelID int64) error
	Remove(ctx context.Context, subscriberID, channelID int64) error
	ListSubscribers(ctx context.Context, channelID int64) ([]int64, error)
	ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]int64, error)
}

// UserReader confirms the channel owner exists before a subscription
// is created.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	subs  SubscriptionRepositoryInterface
	users UserReader
}

func NewService(subs SubscriptionRepositoryInterface, users UserReader) *Service {
	return &Service{subs: subs, users: users}
}

// Toggle flips the subscription state and reports whether the
// requester is now subscribed to the channel.
func (s *Service) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	if subscriberID == channelID {
		return false, ErrSelfSubscribe
	}

	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrChannelNotFound
		}
		return false, err
	}

	exists, err := s.subs.Exists(ctx, subscriberID, channelID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.subs.Remove(ctx, subscriberID, channelID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.subs.Create(ctx, subscriberID, channelID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) ListSubscribers(ctx context.Context, channelID int64) ([]int64, error) {
	return s.subs.ListSubscribers(ctx, channelID)
}

func (s *Service) ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]int64, error) {
	return s.subs.ListSubscribedChannels(ctx, subscriberID)
}
