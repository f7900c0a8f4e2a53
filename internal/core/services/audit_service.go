package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/apperrors"
	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	portsrepo "github.com/ledgerly/ledgerly-backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
)

// auditService implements the AuditSvcFacade. Write failures are logged and
// swallowed so auditing never fails the audited operation.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepository
	userRepo  portsrepo.UserReader
}

// NewAuditService creates a new audit service with the provided dependencies.
func NewAuditService(auditRepo portsrepo.AuditRepository, userRepo portsrepo.UserReader) portssvc.AuditSvcFacade {
	return &auditService{
		auditRepo: auditRepo,
		userRepo:  userRepo,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) record(ctx context.Context, status domain.AuditStatus, action, entityType, entityID, detail, actingUserID string) {
	log := domain.AuditLog{
		LogID:        uuid.NewString(),
		Action:       action,
		EntityType:   entityType,
		EntityID:     entityID,
		Status:       status,
		Detail:       detail,
		ActingUserID: actingUserID,
		CreatedAt:    time.Now(),
	}
	if err := s.auditRepo.SaveLog(ctx, log); err != nil {
		s.LogError(ctx, err, "Failed to write audit log",
			slog.String("action", action),
			slog.String("entity_type", entityType))
	}
}

// LogSuccess records a successful action.
func (s *auditService) LogSuccess(ctx context.Context, action, entityType, entityID, detail, actingUserID string) {
	s.record(ctx, domain.AuditSuccess, action, entityType, entityID, detail, actingUserID)
}

// LogFailure records a failed action.
func (s *auditService) LogFailure(ctx context.Context, action, entityType, entityID, detail, actingUserID string) {
	s.record(ctx, domain.AuditFailure, action, entityType, entityID, detail, actingUserID)
}

// ListRecent returns the newest audit rows; owner/admin only.
func (s *auditService) ListRecent(ctx context.Context, actingUserID string, limit, offset int) ([]domain.AuditLog, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleOwner && actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("user %s may not read audit logs: %w", actingUserID, apperrors.ErrForbidden)
	}

	logs, err := s.auditRepo.ListRecent(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs")
		return nil, err
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}
	return logs, nil
}
