package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/identity-squad/user-api/internal/core/domain"
	"github.com/identity-squad/user-api/internal/core/ports"
)

const activityLimit = 100

// DedupChecker abstracts the idempotency store (Redis) that keeps retried
// deliveries from producing duplicate trail entries.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, userID int64, action string, ts time.Time) (bool, error)
	Mark(ctx context.Context, userID int64, action string, ts time.Time) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single audit entry.
func (s *auditService) Process(ctx context.Context, entry domain.AuditEntry) error {
	isDup, err := s.dedup.IsDuplicate(ctx, entry.UserID, string(entry.Action), entry.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", entry.UserID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Int64("user_id", entry.UserID).Str("action", string(entry.Action)).Msg("duplicate audit entry skipped")
		return nil
	}

	// Mark before writing so a retried delivery is dropped, not re-inserted.
	if markErr := s.dedup.Mark(ctx, entry.UserID, string(entry.Action), entry.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Int64("user_id", entry.UserID).Msg("failed to set dedup key")
	}

	if err := s.repo.Insert(ctx, &entry); err != nil {
		return fmt.Errorf("process audit entry: %w", err)
	}

	s.log.Info().
		Int64("user_id", entry.UserID).
		Int64("actor_id", entry.ActorID).
		Str("action", string(entry.Action)).
		Msg("audit entry recorded")

	return nil
}

// Activity returns the most recent trail entries for a user.
func (s *auditService) Activity(ctx context.Context, userID int64) ([]domain.AuditEntry, error) {
	return s.repo.FindByUser(ctx, userID, activityLimit)
}
