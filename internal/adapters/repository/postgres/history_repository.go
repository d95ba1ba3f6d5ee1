package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type watchHistoryRepository struct {
	db *sql.DB
}

func NewWatchHistoryRepository(db *sql.DB) ports.WatchHistoryRepository {
	return &watchHistoryRepository{db: db}
}

func (r *watchHistoryRepository) Record(ctx context.Context, userID, videoID uuid.UUID) error {
	// Re-watching bumps the existing entry instead of duplicating it.
	query := `
		INSERT INTO watch_history (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, userID, videoID)
	if err != nil {
		return fmt.Errorf("failed to record watch entry: %w", err)
	}
	return nil
}

func (r *watchHistoryRepository) List(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WatchEntry, error) {
	query := `
		SELECT user_id, video_id, watched_at
		FROM watch_history
		WHERE user_id = $1
		ORDER BY watched_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list watch history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.WatchEntry
	for rows.Next() {
		entry := &domain.WatchEntry{}
		if err := rows.Scan(&entry.UserID, &entry.VideoID, &entry.WatchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watch entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
