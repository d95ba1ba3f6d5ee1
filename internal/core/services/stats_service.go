package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type statsService struct {
	userRepo  ports.UserRepository
	statsRepo ports.ChannelStatsRepository
}

func NewStatsService(userRepo ports.UserRepository, statsRepo ports.ChannelStatsRepository) ports.StatsService {
	return &statsService{userRepo: userRepo, statsRepo: statsRepo}
}

func (s *statsService) SummarizeAllChannels(ctx context.Context) error {
	channelIDs, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list channels: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(channelIDs))

	for _, channelID := range channelIDs {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if err := s.statsRepo.SummarizeChannel(ctx, id); err != nil {
				errChan <- fmt.Errorf("failed to summarize channel %s: %w", id, err)
			}
		}(channelID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *statsService) ChannelStats(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error) {
	stats, err := s.statsRepo.GetByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}
	if stats != nil {
		return stats, nil
	}

	// No rollup yet for this channel, compute one on demand.
	if err := s.statsRepo.SummarizeChannel(ctx, channelID); err != nil {
		return nil, fmt.Errorf("failed to summarize channel: %w", err)
	}
	stats, err = s.statsRepo.GetByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}
	if stats == nil {
		return nil, domain.ErrChannelNotFound
	}
	return stats, nil
}
