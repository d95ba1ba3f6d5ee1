package domain

import (
	"errors"
	"fmt"
)

// Base error kinds. Every service error wraps exactly one of these so the
// request boundary can translate it to a stable status code.
var (
	ErrValidation   = errors.New("invalid input")
	ErrConflict     = errors.New("resource already exists")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal server error")
)

// Token verification failures. Each is a kind of ErrUnauthorized, but callers
// that need to report the exact cause can still tell them apart.
var (
	ErrTokenMalformed = fmt.Errorf("malformed token: %w", ErrUnauthorized)
	ErrTokenExpired   = fmt.Errorf("expired token: %w", ErrUnauthorized)
	ErrTokenSignature = fmt.Errorf("invalid token signature: %w", ErrUnauthorized)
)

var (
	ErrUserNotFound    = fmt.Errorf("user not found: %w", ErrNotFound)
	ErrUsernameTaken   = fmt.Errorf("username already taken: %w", ErrConflict)
	ErrEmailTaken      = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrBadCredentials  = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrVideoNotFound   = fmt.Errorf("video not found: %w", ErrNotFound)
	ErrChannelNotFound = fmt.Errorf("channel not found: %w", ErrNotFound)
)
