// Package audit monta os registros de auditoria gravados pelos casos de uso.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// Diff acumula alterações de campos; valores iguais são ignorados.
type Diff []entity.FieldChange

// Add registra a mudança de field se oldValue e newValue diferirem.
func (d *Diff) Add(field string, oldValue, newValue any) {
	if same(oldValue, newValue) {
		return
	}
	*d = append(*d, entity.FieldChange{Field: field, Old: oldValue, New: newValue})
}

// Set registra um valor sem comparação (criação, exclusão).
func (d *Diff) Set(field string, value any) {
	*d = append(*d, entity.FieldChange{Field: field, New: value})
}

// Empty indica que nada mudou.
func (d Diff) Empty() bool { return len(d) == 0 }

func same(a, b any) bool {
	da, okA := a.(decimal.Decimal)
	db, okB := b.(decimal.Decimal)
	if okA && okB {
		return da.Equal(db)
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// New constrói um registro de auditoria para o ator de tc.
// Para super_admin sem organização usa organizationID informado pelo chamador.
func New(tc tenant.Context, organizationID, action, entityType, entityID string, changes Diff) *entity.AuditLog {
	if organizationID == "" {
		organizationID = tc.OrganizationID
	}
	return &entity.AuditLog{
		ID:             uuid.New().String(),
		OrganizationID: optional(organizationID),
		UserID:         optional(tc.UserID),
		Action:         action,
		EntityType:     entityType,
		EntityID:       entityID,
		Changes:        []entity.FieldChange(changes),
		IPAddress:      tc.ClientIP,
		CreatedAt:      time.Now().UTC(),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Record grava o registro no repositório (normalmente ligado à transação corrente).
func Record(ctx context.Context, repo repository.AuditLogRepository, tc tenant.Context, action, entityType, entityID string, changes Diff) error {
	if err := repo.Create(ctx, New(tc, "", action, entityType, entityID, changes)); err != nil {
		return fmt.Errorf("auditoria: %w", err)
	}
	return nil
}
