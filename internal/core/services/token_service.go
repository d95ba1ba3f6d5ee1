package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vidora/api/internal/config"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type accessTokenClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// tokenService signs and verifies both token classes. Access and refresh
// tokens use independent secrets, so leaking one class never forges the other.
type tokenService struct {
	cfg config.Auth
	now func() time.Time
}

func NewTokenService(cfg config.Auth) ports.TokenIssuer {
	return &tokenService{cfg: cfg, now: time.Now}
}

func (s *tokenService) IssueAccessToken(user *domain.User) (string, error) {
	now := s.now()
	claims := accessTokenClaims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.AccessTokenSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) IssueRefreshToken(user *domain.User) (string, error) {
	now := s.now()
	// The jti makes every issued token unique even within the same second,
	// which rotation's exact-match comparison depends on.
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshTokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.RefreshTokenSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) VerifyAccessToken(token string) (*ports.AccessClaims, error) {
	claims := &accessTokenClaims{}
	if err := s.parse(token, claims, s.cfg.AccessTokenSecret); err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	return &ports.AccessClaims{
		UserID:   userID,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}

func (s *tokenService) VerifyRefreshToken(token string) (*ports.RefreshClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if err := s.parse(token, claims, s.cfg.RefreshTokenSecret); err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	return &ports.RefreshClaims{UserID: userID}, nil
}

func (s *tokenService) parse(token string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.ErrTokenSignature
		default:
			return fmt.Errorf("failed to verify token: %w", domain.ErrUnauthorized)
		}
	}
	if !parsed.Valid {
		return domain.ErrUnauthorized
	}
	return nil
}
