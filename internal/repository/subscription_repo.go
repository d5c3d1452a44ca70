package repository

import (
	"context"

	"clipstream/internal/domain"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, subscriberID, channelID int64) error {
	sub := &domain.Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubscriptionRepository) Remove(ctx context.Context, subscriberID, channelID int64) error {
	return r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&domain.Subscription{}).Error
}

// ListSubscribers returns the subscriber ids of a channel.
func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("channel_id = ?", channelID).
		Pluck("subscriber_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListSubscribedChannels returns the channel ids a user subscribed to.
func (r *SubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Pluck("channel_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}
