package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrVideoNotFound   = errors.New("video not found")
	ErrNotOwner        = errors.New("requester does not own this comment")
	ErrEmptyContent    = errors.New("comment content is required")
)
