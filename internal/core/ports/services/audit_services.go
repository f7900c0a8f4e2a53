package services

import (
	"context"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
)

// AuditSvcFacade records actions against ledgered entities. Logging never
// fails the operation being audited; write errors are logged and swallowed.
type AuditSvcFacade interface {
	// LogSuccess records a successful action.
	LogSuccess(ctx context.Context, action, entityType, entityID, detail, actingUserID string)

	// LogFailure records a failed action.
	LogFailure(ctx context.Context, action, entityType, entityID, detail, actingUserID string)

	// ListRecent returns the newest audit rows; owner/admin only.
	ListRecent(ctx context.Context, actingUserID string, limit, offset int) ([]domain.AuditLog, error)
}
