package ports

import (
	"context"

	"github.com/identity-squad/user-api/internal/core/domain"
)

// AuthService exchanges credentials for a signed token.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
