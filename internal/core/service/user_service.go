package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/identity-squad/user-api/internal/core/domain"
	"github.com/identity-squad/user-api/internal/core/ports"
)

// UserService orchestrates the password hasher and the user repository for
// all CRUD operations. It does no access control: the gates run before it.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, audit ports.AuditRecorder, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, audit: audit, logger: logger}
}

// Create registers a new user. The secret is hashed before anything is
// persisted; email uniqueness is enforced by the repository's constraint and
// surfaces as domain.ErrEmailTaken.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	s.record(ctx, created.ID, domain.AuditUserCreated)
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// Update applies a partial update: nil fields are left unchanged. A resubmitted
// password is re-hashed; a changed email is re-checked by the unique index.
func (s *UserService) Update(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	if in.Role != nil && !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	upd := ports.UserUpdate{
		Name:  in.Name,
		Email: in.Email,
		Role:  in.Role,
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Msg("user updated")
	s.record(ctx, id, domain.AuditUserUpdated)
	return updated, nil
}

// Remove hard-deletes the record.
func (s *UserService) Remove(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	s.record(ctx, id, domain.AuditUserDeleted)
	return nil
}

// record enqueues an audit entry; failures are logged, never propagated.
func (s *UserService) record(ctx context.Context, userID int64, action domain.AuditAction) {
	var actorID int64
	if actor, ok := domain.IdentityFromContext(ctx); ok {
		actorID = actor.ID
	}
	entry := domain.AuditEntry{
		UserID:    userID,
		ActorID:   actorID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Str("action", string(action)).Msg("failed to record audit entry")
	}
}
