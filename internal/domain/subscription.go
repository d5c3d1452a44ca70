package domain

import "time"

// Subscription links a subscriber to a channel; both sides are user ids.
type Subscription struct {
	ID           int64     `json:"id"`
	SubscriberID int64     `json:"subscriber_id"`
	ChannelID    int64     `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}
