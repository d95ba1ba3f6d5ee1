package domain

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	SubscriberID uuid.UUID `json:"subscriber_id"`
	ChannelID    uuid.UUID `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type ChannelStats struct {
	ChannelID       uuid.UUID `json:"channel_id"`
	SubscriberCount int64     `json:"subscriber_count"`
	TotalViews      int64     `json:"total_views"`
	VideoCount      int64     `json:"video_count"`
	ComputedAt      time.Time `json:"computed_at"`
}
