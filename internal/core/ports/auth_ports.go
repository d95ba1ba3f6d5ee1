package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
)

// AccessClaims is the decoded payload of an access token. The token is
// self-contained, so these claims are trusted without a store lookup.
type AccessClaims struct {
	UserID   uuid.UUID
	Username string
	Email    string
}

// RefreshClaims is the decoded payload of a refresh token. A refresh token is
// only proof of anything once it also matches the value persisted on the user.
type RefreshClaims struct {
	UserID uuid.UUID
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type TokenIssuer interface {
	IssueAccessToken(user *domain.User) (string, error)
	IssueRefreshToken(user *domain.User) (string, error)
	VerifyAccessToken(token string) (*AccessClaims, error)
	VerifyRefreshToken(token string) (*RefreshClaims, error)
}

type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*domain.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}
