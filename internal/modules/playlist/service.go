package playlist

import (
	"context"
	"errors"

	"clipstream/internal/domain"

	"gorm.io/gorm"
)

// PlaylistRepositoryInterface is the subset of the playlist repository
// the service depends on.
type PlaylistRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Playlist) error
	GetByID(ctx context.Context, id int64) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Playlist, error)
	Update(ctx context.Context, p *domain.Playlist) error
	Delete(ctx context.Context, id int64) error
	ContainsVideo(ctx context.Context, playlistID, videoID int64) (bool, error)
	AddVideo(ctx context.Context, playlistID, videoID int64) error
	RemoveVideo(ctx context.Context, playlistID, videoID int64) error
	ListVideoIDs(ctx context.Context, playlistID int64) ([]int64, error)
}

// VideoReader checks that a video exists before it is added to a
// playlist.
type VideoReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Video, error)
}

type Service struct {
	playlists PlaylistRepositoryInterface
	videos    VideoReader
}

func NewService(playlists PlaylistRepositoryInterface, videos VideoReader) *Service {
	return &Service{playlists: playlists, videos: videos}
}

func (s *Service) Create(ctx context.Context, ownerID int64, name, description string) (*domain.Playlist, error) {
	p := &domain.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	if err := s.playlists.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Playlist, error) {
	return s.playlists.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, playlistID int64) (*PlaylistDetail, error) {
	p, err := s.load(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	ids, err := s.playlists.ListVideoIDs(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return &PlaylistDetail{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		VideoIDs:    ids,
	}, nil
}

func (s *Service) Update(ctx context.Context, playlistID, requesterID int64, req UpdatePlaylistRequest) (*domain.Playlist, error) {
	p, err := s.loadOwned(ctx, playlistID, requesterID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}

	if err := s.playlists.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, playlistID, requesterID int64) error {
	if _, err := s.loadOwned(ctx, playlistID, requesterID); err != nil {
		return err
	}
	return s.playlists.Delete(ctx, playlistID)
}

func (s *Service) AddVideo(ctx context.Context, playlistID, videoID, requesterID int64) error {
	if _, err := s.loadOwned(ctx, playlistID, requesterID); err != nil {
		return err
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	contains, err := s.playlists.ContainsVideo(ctx, playlistID, videoID)
	if err != nil {
		return err
	}
	if contains {
		return ErrAlreadyInList
	}
	return s.playlists.AddVideo(ctx, playlistID, videoID)
}

func (s *Service) RemoveVideo(ctx context.Context, playlistID, videoID, requesterID int64) error {
	if _, err := s.loadOwned(ctx, playlistID, requesterID); err != nil {
		return err
	}

	contains, err := s.playlists.ContainsVideo(ctx, playlistID, videoID)
	if err != nil {
		return err
	}
	if !contains {
		return ErrNotInList
	}
	return s.playlists.RemoveVideo(ctx, playlistID, videoID)
}

func (s *Service) load(ctx context.Context, playlistID int64) (*domain.Playlist, error) {
	p, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) loadOwned(ctx context.Context, playlistID, requesterID int64) (*domain.Playlist, error) {
	p, err := s.load(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != requesterID {
		return nil, ErrNotOwner
	}
	return p, nil
}
