package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
)

type SubscriptionRepository interface {
	Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	Create(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.User, error)
	ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.User, error)
}

type SubscriptionService interface {
	// Toggle subscribes when no subscription exists and unsubscribes
	// otherwise. It reports whether the caller is subscribed afterwards.
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	Subscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.User, error)
	Channels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.User, error)
}
