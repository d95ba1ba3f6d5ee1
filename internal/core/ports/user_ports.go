package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByIdentifier looks a user up by username or email, whichever matches.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	// SetRefreshToken unconditionally replaces the persisted refresh token.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	// SwapRefreshToken replaces the persisted refresh token only if it still
	// equals current. It reports whether the swap was applied.
	SwapRefreshToken(ctx context.Context, id uuid.UUID, current, next string) (bool, error)
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error
}

type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

type UpdateProfileInput struct {
	FullName string
	Email    string
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error)
}
