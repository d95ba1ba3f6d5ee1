package domain

import (
	"time"

	"github.com/google/uuid"
)

type WatchEntry struct {
	UserID    uuid.UUID `json:"user_id"`
	VideoID   uuid.UUID `json:"video_id"`
	WatchedAt time.Time `json:"watched_at"`
}
