package models

import (
	"database/sql"
	"time"
)

// AuditLog is the audit_logs table row.
type AuditLog struct {
	LogID        string         `db:"log_id"`
	Action       string         `db:"action"`
	EntityType   string         `db:"entity_type"`
	EntityID     sql.NullString `db:"entity_id"`
	Status       string         `db:"status"`
	Detail       sql.NullString `db:"detail"`
	ActingUserID string         `db:"acting_user_id"`
	CreatedAt    time.Time      `db:"created_at"`
}
