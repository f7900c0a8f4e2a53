package domain

import "time"

// AuditStatus marks whether the audited operation succeeded.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "SUCCESS"
	AuditFailure AuditStatus = "FAILURE"
)

// AuditLog is one recorded action against a ledgered entity. Audit rows are
// append-only; they are never updated or deleted.
type AuditLog struct {
	LogID        string      `json:"logID"`
	Action       string      `json:"action"`     // e.g. CREATE_LEDGER_ENTRY
	EntityType   string      `json:"entityType"` // e.g. LEDGER_ENTRY, CUSTOMER
	EntityID     string      `json:"entityID,omitempty"`
	Status       AuditStatus `json:"status"`
	Detail       string      `json:"detail,omitempty"`
	ActingUserID string      `json:"actingUserID"`
	CreatedAt    time.Time   `json:"createdAt"`
}
