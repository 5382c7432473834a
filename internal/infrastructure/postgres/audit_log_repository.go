package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

const maxAuditPage = 500

// AuditLogRepo implementação append-only de AuditLogRepository.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository constrói o adaptador.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create grava o log; as alterações vão em JSONB.
func (r *AuditLogRepo) Create(ctx context.Context, l *entity.AuditLog) error {
	changes := l.Changes
	if changes == nil {
		changes = []entity.FieldChange{}
	}
	raw, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO audit_logs (id, organization_id, user_id, action, entity_type, entity_id, changes, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.OrganizationID, l.UserID, l.Action, l.EntityType, l.EntityID, raw, l.IPAddress, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List consulta logs do mais recente para o mais antigo. Limite máximo de 500 por página.
func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditLog, error) {
	var args []any
	where := ` WHERE 1 = 1`
	add := func(cond string, v any) {
		args = append(args, v)
		where += fmt.Sprintf(cond, len(args))
	}
	if f.OrganizationID != "" {
		add(` AND organization_id = $%d`, f.OrganizationID)
	}
	if f.UserID != "" {
		add(` AND user_id = $%d`, f.UserID)
	}
	if f.EntityType != "" {
		add(` AND entity_type = $%d`, f.EntityType)
	}
	if f.From != nil {
		add(` AND created_at >= $%d`, *f.From)
	}
	if f.To != nil {
		add(` AND created_at < $%d`, *f.To)
	}
	limit := f.Limit
	if limit <= 0 || limit > maxAuditPage {
		limit = maxAuditPage
	}
	args = append(args, limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT id, organization_id, user_id, action, entity_type, entity_id, changes, ip_address, created_at
		FROM audit_logs%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var (
			l   entity.AuditLog
			raw []byte
		)
		if err := rows.Scan(&l.ID, &l.OrganizationID, &l.UserID, &l.Action, &l.EntityType, &l.EntityID, &raw, &l.IPAddress, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &l.Changes); err != nil {
				return nil, fmt.Errorf("unmarshal audit changes: %w", err)
			}
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
