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

type videoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) ports.VideoRepository {
	return &videoRepository{db: db}
}

const videoColumns = `id, owner_id, title, description, video_url, thumbnail_url, duration_seconds, views, published, created_at, updated_at`

func (r *videoRepository) Save(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, title, description, video_url, thumbnail_url, duration_seconds, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		video.ID, video.OwnerID, video.Title, video.Description,
		video.VideoURL, video.ThumbnailURL, video.DurationSeconds, video.Published,
	).Scan(&video.CreatedAt, &video.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`
	video := &domain.Video{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&video.ID, &video.OwnerID, &video.Title, &video.Description,
		&video.VideoURL, &video.ThumbnailURL, &video.DurationSeconds,
		&video.Views, &video.Published, &video.CreatedAt, &video.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

func (r *videoRepository) Search(ctx context.Context, input ports.SearchVideosInput) ([]*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE published = TRUE`
	args := []any{}

	if input.OwnerID != nil {
		args = append(args, *input.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if input.Query != "" {
		args = append(args, "%"+input.Query+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY " + sortColumn(input.SortBy)

	args = append(args, input.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, input.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	defer rows.Close()

	var videos []*domain.Video
	for rows.Next() {
		video := &domain.Video{}
		err := rows.Scan(
			&video.ID, &video.OwnerID, &video.Title, &video.Description,
			&video.VideoURL, &video.ThumbnailURL, &video.DurationSeconds,
			&video.Views, &video.Published, &video.CreatedAt, &video.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

// sortColumn whitelists sortable columns; anything else falls back to newest
// first.
func sortColumn(sortBy string) string {
	switch sortBy {
	case "views":
		return "views DESC"
	case "duration":
		return "duration_seconds DESC"
	case "title":
		return "title ASC"
	default:
		return "created_at DESC"
	}
}

func (r *videoRepository) Update(ctx context.Context, video *domain.Video) error {
	query := `UPDATE videos SET title = $2, description = $3, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, video.ID, video.Title, video.Description)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return nil
}

func (r *videoRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	query := `UPDATE videos SET published = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, published)
	if err != nil {
		return fmt.Errorf("failed to set publish status: %w", err)
	}
	return nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}
