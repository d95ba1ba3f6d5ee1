package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type subscriptionService struct {
	subRepo  ports.SubscriptionRepository
	userRepo ports.UserRepository
}

func NewSubscriptionService(subRepo ports.SubscriptionRepository, userRepo ports.UserRepository) ports.SubscriptionService {
	return &subscriptionService{subRepo: subRepo, userRepo: userRepo}
}

func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	if subscriberID == channelID {
		return false, fmt.Errorf("cannot subscribe to own channel: %w", domain.ErrValidation)
	}

	channel, err := s.userRepo.GetByID(ctx, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to get channel: %w", err)
	}
	if channel == nil {
		return false, domain.ErrChannelNotFound
	}

	exists, err := s.subRepo.Exists(ctx, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}

	if exists {
		if err := s.subRepo.Delete(ctx, subscriberID, channelID); err != nil {
			return false, fmt.Errorf("failed to unsubscribe: %w", err)
		}
		return false, nil
	}

	sub := &domain.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return false, fmt.Errorf("failed to subscribe: %w", err)
	}
	return true, nil
}

func (s *subscriptionService) Subscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.User, error) {
	channel, err := s.userRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	if channel == nil {
		return nil, domain.ErrChannelNotFound
	}

	subscribers, err := s.subRepo.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subscribers, nil
}

func (s *subscriptionService) Channels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.User, error) {
	channels, err := s.subRepo.ListChannels(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed channels: %w", err)
	}
	return channels, nil
}
