package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/usecase"
)

// AuditHandler consulta de logs de auditoria (admin e gestor).
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Logs de auditoria
// @Description  Super admin filtra qualquer organização; gestor vê apenas a sua.
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        organization_id  query  string  false  "Organização (super admin)"
// @Param        user_id          query  string  false  "Usuário"
// @Param        entity_type      query  string  false  "Tipo de entidade"
// @Param        from             query  string  false  "AAAA-MM-DD"
// @Param        to               query  string  false  "AAAA-MM-DD"
// @Param        limit            query  int     false  "Limite (máx. 500)"
// @Success      200  {array}  dto.AuditLogResponse
// @Router       /api/admin/logs [get]
// @Router       /api/gestor/logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var in dto.AuditListRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
