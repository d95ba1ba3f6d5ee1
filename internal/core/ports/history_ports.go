package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
)

type WatchHistoryRepository interface {
	Record(ctx context.Context, userID, videoID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WatchEntry, error)
}

type HistoryService interface {
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WatchEntry, error)
}
