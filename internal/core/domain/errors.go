package domain

import "errors"

// Sentinel errors shared across layers. The API error handler maps each of
// these to a deterministic HTTP status; everything else is a 500.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")

	// Token verification failures. Both map to 401 externally, but they are
	// distinct so callers can log or branch on the cause.
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")

	// Hasher failures. Neither is ever shown to a client in detail.
	ErrInvalidSecret = errors.New("invalid secret")
	ErrCorruptHash   = errors.New("corrupt password hash")
)
