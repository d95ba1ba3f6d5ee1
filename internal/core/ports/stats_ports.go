package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
)

type ChannelStatsRepository interface {
	// SummarizeChannel recomputes and stores the aggregates for one channel.
	SummarizeChannel(ctx context.Context, channelID uuid.UUID) error
	GetByChannel(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error)
}

type StatsService interface {
	SummarizeAllChannels(ctx context.Context) error
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error)
}
