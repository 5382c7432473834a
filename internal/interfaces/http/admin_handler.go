package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/analytics"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/usecase"
)

// AdminHandler rotas do super admin: organizações e KPIs globais.
type AdminHandler struct {
	orgs      *usecase.OrganizationUseCase
	dashboard *analytics.DashboardUseCase
}

func NewAdminHandler(orgs *usecase.OrganizationUseCase, dashboard *analytics.DashboardUseCase) *AdminHandler {
	return &AdminHandler{orgs: orgs, dashboard: dashboard}
}

// CreateOrganization godoc
// @Summary      Criar organização com o primeiro gestor
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateOrganizationRequest  true  "Organização e gestor"
// @Success      201   {object}  dto.OrganizationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/admin/organizations [post]
func (h *AdminHandler) CreateOrganization(c *fiber.Ctx) error {
	var in dto.CreateOrganizationRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.orgs.Create(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out)
}

// ListOrganizations godoc
// @Summary      Listar organizações
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query  int  false  "Deslocamento"
// @Param        limit  query  int  false  "Limite"  default(100)
// @Success      200    {object}  dto.OrganizationListResponse
// @Router       /api/admin/organizations [get]
func (h *AdminHandler) ListOrganizations(c *fiber.Ctx) error {
	var in dto.PageRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.orgs.List(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetOrganization godoc
// @Summary      Obter organização
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID da organização"
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/organizations/{id} [get]
func (h *AdminHandler) GetOrganization(c *fiber.Ctx) error {
	out, err := h.orgs.Get(c.UserContext(), Tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateOrganization godoc
// @Summary      Atualizar plano, status, limites ou CNPJ
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                          true  "ID da organização"
// @Param        body  body  dto.UpdateOrganizationRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.OrganizationResponse
// @Router       /api/admin/organizations/{id} [put]
func (h *AdminHandler) UpdateOrganization(c *fiber.Ctx) error {
	var in dto.UpdateOrganizationRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.orgs.Update(c.UserContext(), Tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// KPIs godoc
// @Summary      Indicadores globais do SaaS
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AdminKPIResponse
// @Router       /api/admin/dashboard/kpis [get]
func (h *AdminHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.dashboard.Admin(c.UserContext(), Tenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
