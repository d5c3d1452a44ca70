package playlist

import "errors"

var (
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrVideoNotFound    = errors.New("video not found")
	ErrNotOwner         = errors.New("requester does not own this playlist")
	ErrAlreadyInList    = errors.New("video already in playlist")
	ErrNotInList        = errors.New("video not in playlist")
)
