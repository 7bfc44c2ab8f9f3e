package ports

import (
	"context"

	"github.com/identity-squad/user-api/internal/core/domain"
)

// CreateUserInput is the transport-independent payload for registration.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role // empty defaults to USER
}

// UpdateUserInput is a partial update; nil fields are left untouched.
// A non-nil Password is re-hashed before persistence.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *domain.Role
}

// UserService defines the business operations over user records. Access
// control happens before these are called; the service itself is
// authorization-agnostic.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error)
	Remove(ctx context.Context, id int64) error
}
