package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type videoService struct {
	videoRepo   ports.VideoRepository
	userRepo    ports.UserRepository
	historyRepo ports.WatchHistoryRepository
	storage     ports.MediaStorage
}

func NewVideoService(videoRepo ports.VideoRepository, userRepo ports.UserRepository, historyRepo ports.WatchHistoryRepository, storage ports.MediaStorage) ports.VideoService {
	return &videoService{
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		storage:     storage,
	}
}

func (s *videoService) Publish(ctx context.Context, input ports.PublishVideoInput) (*domain.Video, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("title and description are required: %w", domain.ErrValidation)
	}
	if input.VideoFile.Content == nil || input.Thumbnail.Content == nil {
		return nil, fmt.Errorf("video and thumbnail files are required: %w", domain.ErrValidation)
	}

	videoURL, err := s.storage.Save(ctx, "videos", input.VideoFile.Name, input.VideoFile.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store video file: %w", err)
	}

	thumbnailURL, err := s.storage.Save(ctx, "thumbnails", input.Thumbnail.Name, input.Thumbnail.Content)
	if err != nil {
		s.removeBlob(ctx, videoURL)
		return nil, fmt.Errorf("failed to store thumbnail: %w", err)
	}

	video := &domain.Video{
		ID:              uuid.New(),
		OwnerID:         input.OwnerID,
		Title:           title,
		Description:     description,
		VideoURL:        videoURL,
		ThumbnailURL:    thumbnailURL,
		DurationSeconds: input.DurationSeconds,
		Published:       true,
	}

	if err := s.videoRepo.Save(ctx, video); err != nil {
		s.removeBlob(ctx, videoURL)
		s.removeBlob(ctx, thumbnailURL)
		return nil, fmt.Errorf("failed to save video: %w", err)
	}

	return video, nil
}

func (s *videoService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	if video == nil {
		return nil, domain.ErrVideoNotFound
	}
	if !video.Published && (viewerID == nil || *viewerID != video.OwnerID) {
		return nil, domain.ErrVideoNotFound
	}

	if viewerID != nil && *viewerID != video.OwnerID {
		if err := s.videoRepo.IncrementViews(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to count view: %w", err)
		}
		video.Views++
		if err := s.historyRepo.Record(ctx, *viewerID, id); err != nil {
			// A lost history entry should not fail the watch request.
			log.Printf("failed to record watch history: %v", err)
		}
	}

	return video, nil
}

func (s *videoService) Search(ctx context.Context, input ports.SearchVideosInput) ([]*domain.Video, error) {
	if input.Limit <= 0 || input.Limit > 100 {
		input.Limit = 10
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	if input.OwnerUsername != "" {
		owner, err := s.userRepo.GetByUsername(ctx, strings.ToLower(input.OwnerUsername))
		if err != nil {
			return nil, fmt.Errorf("failed to get owner: %w", err)
		}
		if owner == nil {
			return nil, domain.ErrUserNotFound
		}
		input.OwnerID = &owner.ID
	}

	videos, err := s.videoRepo.Search(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	return videos, nil
}

func (s *videoService) Update(ctx context.Context, id, requesterID uuid.UUID, input ports.UpdateVideoInput) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("title and description are required: %w", domain.ErrValidation)
	}

	video.Title = title
	video.Description = description
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	return video, nil
}

func (s *videoService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	video, err := s.ownedVideo(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	s.removeBlob(ctx, video.VideoURL)
	s.removeBlob(ctx, video.ThumbnailURL)
	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, id, requesterID uuid.UUID) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	video.Published = !video.Published
	if err := s.videoRepo.SetPublished(ctx, id, video.Published); err != nil {
		return nil, fmt.Errorf("failed to toggle publish status: %w", err)
	}
	return video, nil
}

func (s *videoService) ownedVideo(ctx context.Context, id, requesterID uuid.UUID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	if video == nil {
		return nil, domain.ErrVideoNotFound
	}
	if video.OwnerID != requesterID {
		return nil, domain.ErrForbidden
	}
	return video, nil
}

func (s *videoService) removeBlob(ctx context.Context, url string) {
	if err := s.storage.Remove(ctx, url); err != nil {
		log.Printf("failed to remove media blob %s: %v", url, err)
	}
}
