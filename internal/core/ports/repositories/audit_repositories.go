package repositories

import (
	"context"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
)

// AuditRepository persists append-only audit log rows.
type AuditRepository interface {
	// SaveLog persists one audit row.
	SaveLog(ctx context.Context, log domain.AuditLog) error

	// ListRecent retrieves the newest audit rows.
	ListRecent(ctx context.Context, limit, offset int) ([]domain.AuditLog, error)
}
