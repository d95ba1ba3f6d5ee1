package ports

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
)

type VideoRepository interface {
	Save(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	Search(ctx context.Context, input SearchVideosInput) ([]*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type MediaFile struct {
	Name    string
	Content io.Reader
}

type PublishVideoInput struct {
	OwnerID         uuid.UUID
	Title           string
	Description     string
	DurationSeconds float64
	VideoFile       MediaFile
	Thumbnail       MediaFile
}

type SearchVideosInput struct {
	Query         string
	OwnerID       *uuid.UUID
	OwnerUsername string
	SortBy        string
	Limit         int
	Offset        int
}

type UpdateVideoInput struct {
	Title       string
	Description string
}

type VideoService interface {
	Publish(ctx context.Context, input PublishVideoInput) (*domain.Video, error)
	Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*domain.Video, error)
	Search(ctx context.Context, input SearchVideosInput) ([]*domain.Video, error)
	Update(ctx context.Context, id, requesterID uuid.UUID, input UpdateVideoInput) (*domain.Video, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
	TogglePublish(ctx context.Context, id, requesterID uuid.UUID) (*domain.Video, error)
}
