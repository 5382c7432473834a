package usecase

import (
	"context"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/period"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// AuditUseCase consulta de logs de auditoria.
type AuditUseCase struct {
	logs repository.AuditLogRepository
}

func NewAuditUseCase(logs repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{logs: logs}
}

// List o super admin filtra por qualquer organização; o gestor fica preso à sua.
func (uc *AuditUseCase) List(ctx context.Context, tc tenant.Context, in dto.AuditListRequest) ([]dto.AuditLogResponse, error) {
	org := in.OrganizationID
	if !tc.IsSuperAdmin() {
		if err := tc.Manager(); err != nil {
			return nil, err
		}
		org = tc.OrganizationID
	}
	from, to, err := period.Bounds(in.From, in.To)
	if err != nil {
		return nil, err
	}
	in.DefaultPage(100, maxPage)
	list, err := uc.logs.List(ctx, repository.AuditFilter{
		OrganizationID: org,
		UserID:         in.UserID,
		EntityType:     in.EntityType,
		From:           from,
		To:             to,
		Limit:          in.Limit,
		Offset:         in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, len(list))
	for i, l := range list {
		out[i] = toAuditResponse(l)
	}
	return out, nil
}

func toAuditResponse(l *entity.AuditLog) dto.AuditLogResponse {
	resp := dto.AuditLogResponse{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		UserID:         l.UserID,
		Action:         l.Action,
		EntityType:     l.EntityType,
		EntityID:       l.EntityID,
		Changes:        make([]dto.FieldChangeResponse, len(l.Changes)),
		IPAddress:      l.IPAddress,
		CreatedAt:      l.CreatedAt,
	}
	for i, c := range l.Changes {
		resp.Changes[i] = dto.FieldChangeResponse{Field: c.Field, Old: c.Old, New: c.New}
	}
	return resp
}
