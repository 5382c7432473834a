package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/usecase"
)

// CommissionHandler regras de comissão.
type CommissionHandler struct {
	uc *usecase.CommissionRuleUseCase
}

func NewCommissionHandler(uc *usecase.CommissionRuleUseCase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

// List godoc
// @Summary      Listar regras de comissão
// @Tags         comissoes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.CommissionRuleResponse
// @Router       /api/gestor/commission-rules [get]
func (h *CommissionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), Tenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter regra de comissão
// @Tags         comissoes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID da regra"
// @Success      200  {object}  dto.CommissionRuleResponse
// @Router       /api/gestor/commission-rules/{id} [get]
func (h *CommissionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar regra de comissão
// @Tags         comissoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CommissionRuleRequest  true  "Regra"
// @Success      201   {object}  dto.CommissionRuleResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/gestor/commission-rules [post]
func (h *CommissionHandler) Create(c *fiber.Ctx) error {
	var in dto.CommissionRuleRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// Update godoc
// @Summary      Atualizar regra de comissão
// @Tags         comissoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID da regra"
// @Param        body  body  dto.CommissionRuleRequest  true  "Regra"
// @Success      200   {object}  dto.CommissionRuleResponse
// @Router       /api/gestor/commission-rules/{id} [put]
func (h *CommissionHandler) Update(c *fiber.Ctx) error {
	var in dto.CommissionRuleRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir regra de comissão
// @Tags         comissoes
// @Security     BearerAuth
// @Param        id   path  string  true  "ID da regra"
// @Success      204
// @Router       /api/gestor/commission-rules/{id} [delete]
func (h *CommissionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), Tenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// Preview godoc
// @Summary      Percentual de comissão vigente
// @Description  Resolve a regra mais específica para empresa, vendedor e data.
// @Tags         comissoes
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  query  string  true   "Empresa"
// @Param        seller_id   query  string  true   "Vendedor"
// @Param        date        query  string  false  "AAAA-MM-DD (padrão hoje)"
// @Success      200         {object}  dto.CommissionPreviewResponse
// @Router       /api/gestor/commission-rules/preview [get]
func (h *CommissionHandler) Preview(c *fiber.Ctx) error {
	var in dto.CommissionPreviewRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Preview(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
