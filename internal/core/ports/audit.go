package ports

import (
	"context"

	"github.com/identity-squad/user-api/internal/core/domain"
)

// AuditRepository persists the per-user activity trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	FindByUser(ctx context.Context, userID int64, limit int64) ([]domain.AuditEntry, error)
}

// AuditRecorder consumes audit entries, typically behind an async queue so
// the write path never blocks a request.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// AuditService processes queued audit entries and serves the activity trail.
type AuditService interface {
	Process(ctx context.Context, entry domain.AuditEntry) error
	Activity(ctx context.Context, userID int64) ([]domain.AuditEntry, error)
}
