package dashboard

import (
	"context"

	"clipstream/internal/domain"
	"clipstream/internal/repository"
)

// ChannelStats is the aggregate view a channel owner sees on their
// dashboard.
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalLikes       int64 `json:"total_likes"`
	TotalSubscribers int64 `json:"total_subscribers"`
}

type VideoStatsReader interface {
	StatsByOwner(ctx context.Context, ownerID int64) (*repository.OwnerStats, error)
	List(ctx context.Context, p repository.ListVideosParams) ([]domain.Video, int64, error)
}

type LikeCounter interface {
	CountForOwnerVideos(ctx context.Context, ownerID int64) (int64, error)
}

type SubscriberCounter interface {
	CountSubscribers(ctx context.Context, channelID int64) (int64, error)
}

type Service struct {
	videos VideoStatsReader
	likes  LikeCounter
	subs   SubscriberCounter
}

func NewService(videos VideoStatsReader, likes LikeCounter, subs SubscriberCounter) *Service {
	return &Service{videos: videos, likes: likes, subs: subs}
}

func (s *Service) Stats(ctx context.Context, ownerID int64) (*ChannelStats, error) {
	videoStats, err := s.videos.StatsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	likeCount, err := s.likes.CountForOwnerVideos(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	subCount, err := s.subs.CountSubscribers(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &ChannelStats{
		TotalVideos:      videoStats.TotalVideos,
		TotalViews:       videoStats.TotalViews,
		TotalLikes:       likeCount,
		TotalSubscribers: subCount,
	}, nil
}

// Videos lists every video of the channel, drafts included, for the
// owner's dashboard.
func (s *Service) Videos(ctx context.Context, ownerID int64, page, limit int) ([]domain.Video, int64, error) {
	return s.videos.List(ctx, repository.ListVideosParams{
		OwnerID: ownerID,
		Page:    page,
		Limit:   limit,
	})
}
