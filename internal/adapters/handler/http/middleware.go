package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	EmailKey    contextKey = "email"
)

// AuthRequired verifies the access token cookie and attaches the decoded
// claims to the request context. The access token is self-contained, so no
// store lookup happens here.
func AuthRequired(tokens ports.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("access_token")
			if err != nil {
				respondError(w, domain.ErrUnauthorized)
				return
			}

			claims, err := tokens.VerifyAccessToken(cookie.Value)
			if err != nil {
				respondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
