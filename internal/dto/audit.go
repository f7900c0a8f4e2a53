package dto

import (
	"time"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
)

// ListAuditLogsParams defines query parameters for listing audit rows.
type ListAuditLogsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// AuditLogResponse is the public view of one audit row.
type AuditLogResponse struct {
	LogID        string    `json:"logID"`
	Action       string    `json:"action"`
	EntityType   string    `json:"entityType"`
	EntityID     string    `json:"entityID,omitempty"`
	Status       string    `json:"status"`
	Detail       string    `json:"detail,omitempty"`
	ActingUserID string    `json:"actingUserID"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListAuditLogsResponse wraps the list of audit rows.
type ListAuditLogsResponse struct {
	Logs []AuditLogResponse `json:"logs"`
}

// ToListAuditLogsResponse converts a slice of domain.AuditLog to the list DTO.
func ToListAuditLogsResponse(logs []domain.AuditLog) ListAuditLogsResponse {
	out := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		out[i] = AuditLogResponse{
			LogID:        l.LogID,
			Action:       l.Action,
			EntityType:   l.EntityType,
			EntityID:     l.EntityID,
			Status:       string(l.Status),
			Detail:       l.Detail,
			ActingUserID: l.ActingUserID,
			CreatedAt:    l.CreatedAt,
		}
	}
	return ListAuditLogsResponse{Logs: out}
}
