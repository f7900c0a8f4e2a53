package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	portsrepo "github.com/ledgerly/ledgerly-backend/internal/core/ports/repositories"
	"github.com/ledgerly/ledgerly-backend/internal/models"
)

type PgxAuditRepository struct {
	BaseRepository
}

// NewAuditRepository creates an audit repository over the pool.
func NewAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

func toDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		LogID:        m.LogID,
		Action:       m.Action,
		EntityType:   m.EntityType,
		EntityID:     m.EntityID.String,
		Status:       domain.AuditStatus(m.Status),
		Detail:       m.Detail.String,
		ActingUserID: m.ActingUserID,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *PgxAuditRepository) SaveLog(ctx context.Context, log domain.AuditLog) error {
	query := `
        INSERT INTO audit_logs (log_id, action, entity_type, entity_id, status, detail, acting_user_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query,
		log.LogID,
		log.Action,
		log.EntityType,
		sql.NullString{String: log.EntityID, Valid: log.EntityID != ""},
		string(log.Status),
		sql.NullString{String: log.Detail, Valid: log.Detail != ""},
		log.ActingUserID,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `
        SELECT log_id, action, entity_type, entity_id, status, detail, acting_user_id, created_at
        FROM audit_logs
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.LogID, &m.Action, &m.EntityType, &m.EntityID, &m.Status, &m.Detail, &m.ActingUserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		logs = append(logs, toDomainAuditLog(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating audit log rows: %w", rows.Err())
	}
	return logs, nil
}
