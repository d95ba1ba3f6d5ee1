package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

func newAuthFixture(t *testing.T) (*fakeUserRepo, ports.AuthService, *domain.User) {
	t.Helper()
	repo := newFakeUserRepo()
	userSvc := NewUserService(repo)
	user := registerAlice(t, userSvc)
	authSvc := NewAuthService(repo, NewTokenService(testAuthConfig()))
	return repo, authSvc, user
}

func TestLoginIssuesAndPersistsTokenPair(t *testing.T) {
	repo, authSvc, registered := newAuthFixture(t)

	user, pair, err := authSvc.Login(context.Background(), "alice", "Secret123!")
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, pair.RefreshToken, repo.storedRefreshToken(user.ID))
}

func TestLoginByEmail(t *testing.T) {
	_, authSvc, _ := newAuthFixture(t)

	_, pair, err := authSvc.Login(context.Background(), "a@x.com", "Secret123!")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo, authSvc, user := newAuthFixture(t)

	_, pair, err := authSvc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, pair)
	assert.Empty(t, repo.storedRefreshToken(user.ID))
}

func TestLoginUnknownUser(t *testing.T) {
	_, authSvc, _ := newAuthFixture(t)

	_, _, err := authSvc.Login(context.Background(), "nobody", "Secret123!")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoginFailsWhenPersistenceFails(t *testing.T) {
	repo, authSvc, user := newAuthFixture(t)
	repo.failSetRefresh = true

	_, pair, err := authSvc.Login(context.Background(), "alice", "Secret123!")
	require.Error(t, err)
	assert.Nil(t, pair)
	assert.Empty(t, repo.storedRefreshToken(user.ID))
}

func TestRefreshRotatesToken(t *testing.T) {
	repo, authSvc, user := newAuthFixture(t)

	_, pair, err := authSvc.Login(context.Background(), "alice", "Secret123!")
	require.NoError(t, err)

	rotated, err := authSvc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, rotated.RefreshToken, repo.storedRefreshToken(user.ID))

	// The superseded token is now indistinguishable from a forged one.
	_, err = authSvc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// The winner keeps working.
	_, err = authSvc.Refresh(context.Background(), rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	_, authSvc, _ := newAuthFixture(t)

	_, err := authSvc.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefreshAfterLogout(t *testing.T) {
	repo, authSvc, user := newAuthFixture(t)

	_, pair, err := authSvc.Login(context.Background(), "alice", "Secret123!")
	require.NoError(t, err)

	require.NoError(t, authSvc.Logout(context.Background(), user.ID))
	assert.Empty(t, repo.storedRefreshToken(user.ID))

	_, err = authSvc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogoutIsIdempotent(t *testing.T) {
	_, authSvc, user := newAuthFixture(t)

	require.NoError(t, authSvc.Logout(context.Background(), user.ID))
	require.NoError(t, authSvc.Logout(context.Background(), user.ID))
}

func TestConcurrentRefreshSingleWinner(t *testing.T) {
	_, authSvc, _ := newAuthFixture(t)

	_, pair, err := authSvc.Login(context.Background(), "alice", "Secret123!")
	require.NoError(t, err)

	const rotations = 16
	var wg sync.WaitGroup
	results := make(chan error, rotations)

	for i := 0; i < rotations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := authSvc.Refresh(context.Background(), pair.RefreshToken)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, unauthorized int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, domain.ErrUnauthorized):
			unauthorized++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one concurrent rotation must win")
	assert.Equal(t, rotations-1, unauthorized)
}
