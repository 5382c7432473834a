package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/usecase"
)

// SellerHandler vendedores da organização e seus vínculos com empresas.
type SellerHandler struct {
	uc *usecase.SellerUseCase
}

func NewSellerHandler(uc *usecase.SellerUseCase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

// Create godoc
// @Summary      Criar vendedor
// @Tags         gestor-vendedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSellerRequest  true  "Dados do vendedor"
// @Success      201   {object}  dto.SellerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/gestor/sellers [post]
func (h *SellerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSellerRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// List godoc
// @Summary      Listar vendedores com empresas vinculadas
// @Tags         gestor-vendedores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.SellerResponse
// @Router       /api/gestor/sellers [get]
func (h *SellerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), Tenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter vendedor
// @Tags         gestor-vendedores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do vendedor"
// @Success      200  {object}  dto.SellerResponse
// @Router       /api/gestor/sellers/{id} [get]
func (h *SellerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar vendedor
// @Tags         gestor-vendedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID do vendedor"
// @Param        body  body  dto.UpdateSellerRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.SellerResponse
// @Router       /api/gestor/sellers/{id} [put]
func (h *SellerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSellerRequest
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
// @Summary      Desativar vendedor
// @Tags         gestor-vendedores
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do vendedor"
// @Success      204
// @Router       /api/gestor/sellers/{id} [delete]
func (h *SellerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), Tenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}

// LinkCompany godoc
// @Summary      Vincular vendedor a uma empresa
// @Tags         gestor-vendedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID do vendedor"
// @Param        body  body  dto.LinkCompanyRequest  true  "company_id"
// @Success      201   {object}  dto.SellerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/gestor/sellers/{id}/companies [post]
func (h *SellerHandler) LinkCompany(c *fiber.Ctx) error {
	var in dto.LinkCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.LinkCompany(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// UnlinkCompany godoc
// @Summary      Desvincular vendedor de uma empresa
// @Tags         gestor-vendedores
// @Security     BearerAuth
// @Param        id          path  string  true  "ID do vendedor"
// @Param        company_id  path  string  true  "ID da empresa"
// @Success      204
// @Router       /api/gestor/sellers/{id}/companies/{company_id} [delete]
func (h *SellerHandler) UnlinkCompany(c *fiber.Ctx) error {
	if err := h.uc.UnlinkCompany(c.UserContext(), Tenant(c), c.Params("id"), c.Params("company_id")); err != nil {
		return respondError(c, err)
	}
	return noContent(c)
}
