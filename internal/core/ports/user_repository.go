package ports

import (
	"context"

	"github.com/identity-squad/user-api/internal/core/domain"
)

// UserUpdate carries a partial update. Nil fields are left unchanged.
// PasswordHash, when set, must already be hashed by the caller.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *domain.Role
}

// UserRepository is the persistence boundary for user records.
//
// Implementations must enforce email uniqueness with a storage-level
// constraint (not check-then-write) so that two concurrent creates with the
// same email cannot both succeed, and surface violations as
// domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	SetAccessToken(ctx context.Context, id int64, token string) error
}
