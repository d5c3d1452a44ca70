package domain

import "time"

// Like references exactly one target: a video, a comment or a tweet.
// The unused foreign keys stay NULL.
type Like struct {
	ID        int64     `json:"id"`
	LikedByID int64     `json:"liked_by_id"`
	VideoID   *int64    `json:"video_id,omitempty"`
	CommentID *int64    `json:"comment_id,omitempty"`
	TweetID   *int64    `json:"tweet_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
