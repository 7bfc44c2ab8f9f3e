package domain

import "time"

// AuditAction identifies what happened to a user record.
type AuditAction string

const (
	AuditUserCreated AuditAction = "user_created"
	AuditUserUpdated AuditAction = "user_updated"
	AuditUserDeleted AuditAction = "user_deleted"
	AuditUserLogin   AuditAction = "user_login"
)

// AuditEntry is one row of the per-user activity trail. ActorID is the
// authenticated requester that triggered the action (0 for public
// registration, where no identity exists yet).
type AuditEntry struct {
	UserID    int64       `json:"user_id" bson:"user_id"`
	ActorID   int64       `json:"actor_id" bson:"actor_id"`
	Action    AuditAction `json:"action" bson:"action"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
	Detail    string      `json:"detail,omitempty" bson:"detail,omitempty"`
}
