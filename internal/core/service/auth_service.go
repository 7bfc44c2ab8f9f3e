package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/identity-squad/user-api/internal/core/domain"
	"github.com/identity-squad/user-api/internal/core/ports"
)

// TokenCache mirrors the last-issued token per user (Redis). The mirror is
// informational: authorization always re-verifies the presented token.
type TokenCache interface {
	SetLastToken(ctx context.Context, userID int64, token string) error
}

// AuthService exchanges email + password for a signed token.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	cache  TokenCache
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	cache TokenCache,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, cache: cache, audit: audit, logger: logger}
}

// Login verifies credentials and issues a token. The issued token is stored
// on the record and mirrored in the cache, best-effort on both counts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Identity{ID: user.ID, Role: user.Role})
	if err != nil {
		return "", nil, err
	}

	if err := s.repo.SetAccessToken(ctx, user.ID, token); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to store access token")
	}
	if s.cache != nil {
		if err := s.cache.SetLastToken(ctx, user.ID, token); err != nil {
			s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to cache access token")
		}
	}

	entry := domain.AuditEntry{
		UserID:    user.ID,
		ActorID:   user.ID,
		Action:    domain.AuditUserLogin,
		Timestamp: time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to record login audit entry")
	}

	user.AccessToken = token
	return token, user, nil
}
