package repository

import (
	"context"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// AuditFilter filtros de consulta de auditoria. OrganizationID vazio = todas (super admin).
type AuditFilter struct {
	OrganizationID string
	UserID         string
	EntityType     string
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

// AuditLogRepository persistência append-only de logs de auditoria.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, f AuditFilter) ([]*entity.AuditLog, error)
}
