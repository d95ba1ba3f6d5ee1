package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type channelStatsRepository struct {
	db *sql.DB
}

func NewChannelStatsRepository(db *sql.DB) ports.ChannelStatsRepository {
	return &channelStatsRepository{db: db}
}

func (r *channelStatsRepository) SummarizeChannel(ctx context.Context, channelID uuid.UUID) error {
	query := `
		INSERT INTO channel_stats (channel_id, subscriber_count, total_views, video_count, computed_at)
		SELECT
			u.id,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id),
			COALESCE((SELECT SUM(v.views) FROM videos v WHERE v.owner_id = u.id), 0),
			(SELECT COUNT(*) FROM videos v WHERE v.owner_id = u.id),
			NOW()
		FROM users u
		WHERE u.id = $1
		ON CONFLICT (channel_id) DO UPDATE SET
			subscriber_count = EXCLUDED.subscriber_count,
			total_views = EXCLUDED.total_views,
			video_count = EXCLUDED.video_count,
			computed_at = EXCLUDED.computed_at
	`
	_, err := r.db.ExecContext(ctx, query, channelID)
	if err != nil {
		return fmt.Errorf("failed to summarize channel: %w", err)
	}
	return nil
}

func (r *channelStatsRepository) GetByChannel(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error) {
	query := `
		SELECT channel_id, subscriber_count, total_views, video_count, computed_at
		FROM channel_stats
		WHERE channel_id = $1
	`
	stats := &domain.ChannelStats{}
	err := r.db.QueryRowContext(ctx, query, channelID).Scan(
		&stats.ChannelID,
		&stats.SubscriberCount,
		&stats.TotalViews,
		&stats.VideoCount,
		&stats.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}
	return stats, nil
}
