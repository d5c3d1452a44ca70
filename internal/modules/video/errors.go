package video

import "errors"

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrNotOwner      = errors.New("requester does not own this video")
	ErrMissingInput  = errors.New("title and description are required")
)
