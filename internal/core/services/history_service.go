package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type historyService struct {
	repo ports.WatchHistoryRepository
}

func NewHistoryService(repo ports.WatchHistoryRepository) ports.HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) History(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WatchEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	entries, err := s.repo.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list watch history: %w", err)
	}
	return entries, nil
}
