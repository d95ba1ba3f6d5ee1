package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidora/api/internal/config"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type stubAuthService struct {
	refreshErr error
	pair       ports.TokenPair
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (*domain.User, *ports.TokenPair, error) {
	if password != "Secret123!" {
		return nil, nil, domain.ErrBadCredentials
	}
	pair := s.pair
	return &domain.User{ID: uuid.New(), Username: identifier}, &pair, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	pair := s.pair
	return &pair, nil
}

func (s *stubAuthService) Logout(ctx context.Context, userID uuid.UUID) error { return nil }

func newAuthTestHandler(stub *stubAuthService) *AuthHandler {
	return NewAuthHandler(stub, nil, config.Auth{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}, config.Cookies{Secure: true, SameSite: http.SameSiteLaxMode})
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestLoginSetsTokenCookies(t *testing.T) {
	stub := &stubAuthService{pair: ports.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	handler := newAuthTestHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		strings.NewReader(`{"username":"alice","password":"Secret123!"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	access := cookieByName(cookies, "access_token")
	refresh := cookieByName(cookies, "refresh_token")
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.Equal(t, "acc", access.Value)
	assert.Equal(t, "ref", refresh.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, int((15 * time.Minute).Seconds()), access.MaxAge)
}

func TestLoginBadPassword(t *testing.T) {
	handler := newAuthTestHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestRefreshWithoutCookie(t *testing.T) {
	handler := newAuthTestHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh", nil)
	rec := httptest.NewRecorder()
	handler.Refresh(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshFailureExpiresCookies(t *testing.T) {
	handler := newAuthTestHandler(&stubAuthService{refreshErr: domain.ErrUnauthorized})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "stale"})
	rec := httptest.NewRecorder()
	handler.Refresh(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookies := rec.Result().Cookies()
	access := cookieByName(cookies, "access_token")
	refresh := cookieByName(cookies, "refresh_token")
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.Equal(t, -1, access.MaxAge)
	assert.Equal(t, -1, refresh.MaxAge)
}

func TestRefreshSuccessRotatesCookies(t *testing.T) {
	stub := &stubAuthService{pair: ports.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"}}
	handler := newAuthTestHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "ref1"})
	rec := httptest.NewRecorder()
	handler.Refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	refresh := cookieByName(rec.Result().Cookies(), "refresh_token")
	require.NotNil(t, refresh)
	assert.Equal(t, "ref2", refresh.Value)
}
