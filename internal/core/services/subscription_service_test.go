package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type subKey struct {
	subscriberID uuid.UUID
	channelID    uuid.UUID
}

type fakeSubRepo struct {
	mu       sync.Mutex
	subs     map[subKey]struct{}
	userRepo *fakeUserRepo
}

func newFakeSubRepo(userRepo *fakeUserRepo) *fakeSubRepo {
	return &fakeSubRepo{subs: make(map[subKey]struct{}), userRepo: userRepo}
}

func (r *fakeSubRepo) Exists(_ context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.subs[subKey{subscriberID, channelID}]
	return ok, nil
}

func (r *fakeSubRepo) Create(_ context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[subKey{sub.SubscriberID, sub.ChannelID}] = struct{}{}
	return nil
}

func (r *fakeSubRepo) Delete(_ context.Context, subscriberID, channelID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, subKey{subscriberID, channelID})
	return nil
}

func (r *fakeSubRepo) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*domain.User
	for key := range r.subs {
		if key.channelID != channelID {
			continue
		}
		user, err := r.userRepo.GetByID(ctx, key.subscriberID)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *fakeSubRepo) ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*domain.User
	for key := range r.subs {
		if key.subscriberID != subscriberID {
			continue
		}
		user, err := r.userRepo.GetByID(ctx, key.channelID)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func newSubscriptionFixture(t *testing.T) (ports.SubscriptionService, *domain.User, *domain.User) {
	t.Helper()
	userRepo := newFakeUserRepo()
	userSvc := NewUserService(userRepo)

	subscriber := registerAlice(t, userSvc)
	channel, err := userSvc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Email:    "b@x.com",
		FullName: "Bob B",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	svc := NewSubscriptionService(newFakeSubRepo(userRepo), userRepo)
	return svc, subscriber, channel
}

func TestToggleSubscribesAndUnsubscribes(t *testing.T) {
	svc, subscriber, channel := newSubscriptionFixture(t)

	subscribed, err := svc.Toggle(context.Background(), subscriber.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	subscribers, err := svc.Subscribers(context.Background(), channel.ID)
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	assert.Equal(t, subscriber.ID, subscribers[0].ID)

	subscribed, err = svc.Toggle(context.Background(), subscriber.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	subscribers, err = svc.Subscribers(context.Background(), channel.ID)
	require.NoError(t, err)
	assert.Empty(t, subscribers)
}

func TestToggleOwnChannel(t *testing.T) {
	svc, subscriber, _ := newSubscriptionFixture(t)

	_, err := svc.Toggle(context.Background(), subscriber.ID, subscriber.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestToggleUnknownChannel(t *testing.T) {
	svc, subscriber, _ := newSubscriptionFixture(t)

	_, err := svc.Toggle(context.Background(), subscriber.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubscribersOfUnknownChannel(t *testing.T) {
	svc, _, _ := newSubscriptionFixture(t)

	_, err := svc.Subscribers(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChannelsListsSubscriptions(t *testing.T) {
	svc, subscriber, channel := newSubscriptionFixture(t)

	_, err := svc.Toggle(context.Background(), subscriber.ID, channel.ID)
	require.NoError(t, err)

	channels, err := svc.Channels(context.Background(), subscriber.ID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, channel.ID, channels[0].ID)
}
