package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/analytics"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
)

// ReportHandler relatórios agregados e painéis de KPIs.
// Sem from/to o período é o mês corrente.
type ReportHandler struct {
	reports   *analytics.ReportUseCase
	dashboard *analytics.DashboardUseCase
}

func NewReportHandler(reports *analytics.ReportUseCase, dashboard *analytics.DashboardUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, dashboard: dashboard}
}

func (h *ReportHandler) query(c *fiber.Ctx) (dto.ReportRequest, error) {
	var in dto.ReportRequest
	err := parseQuery(c, &in)
	return in, err
}

// SalesBySeller godoc
// @Summary      Vendas por vendedor e mês
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Param        from        query  string  false  "AAAA-MM-DD"
// @Param        to          query  string  false  "AAAA-MM-DD"
// @Param        company_id  query  string  false  "Empresa"
// @Param        seller_id   query  string  false  "Vendedor"
// @Success      200         {array}  dto.SellerSalesRow
// @Router       /api/gestor/reports/sales-by-seller [get]
func (h *ReportHandler) SalesBySeller(c *fiber.Ctx) error {
	in, err := h.query(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.reports.SalesBySeller(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesByCompany godoc
// @Summary      Vendas por empresa e mês
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Param        from  query  string  false  "AAAA-MM-DD"
// @Param        to    query  string  false  "AAAA-MM-DD"
// @Success      200   {array}  dto.CompanySalesRow
// @Router       /api/gestor/reports/sales-by-company [get]
func (h *ReportHandler) SalesByCompany(c *fiber.Ctx) error {
	in, err := h.query(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.reports.SalesByCompany(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesByCity godoc
// @Summary      Vendas por cidade e mês
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Param        from  query  string  false  "AAAA-MM-DD"
// @Param        to    query  string  false  "AAAA-MM-DD"
// @Success      200   {array}  dto.CitySalesRow
// @Router       /api/gestor/reports/sales-by-city [get]
func (h *ReportHandler) SalesByCity(c *fiber.Ctx) error {
	in, err := h.query(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.reports.SalesByCity(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Commissions godoc
// @Summary      Comissões por pedido
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Param        from       query  string  false  "AAAA-MM-DD"
// @Param        to         query  string  false  "AAAA-MM-DD"
// @Param        seller_id  query  string  false  "Vendedor"
// @Success      200        {object}  dto.CommissionReportResponse
// @Router       /api/gestor/reports/commissions [get]
func (h *ReportHandler) Commissions(c *fiber.Ctx) error {
	in, err := h.query(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.reports.Commissions(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ManagerKPIs godoc
// @Summary      KPIs do gestor
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Param        from  query  string  false  "AAAA-MM-DD"
// @Param        to    query  string  false  "AAAA-MM-DD"
// @Success      200   {object}  dto.ManagerDashboardResponse
// @Router       /api/gestor/dashboard/kpis [get]
func (h *ReportHandler) ManagerKPIs(c *fiber.Ctx) error {
	in, err := h.query(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.dashboard.Manager(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SellerKPIs godoc
// @Summary      KPIs do vendedor na empresa ativa
// @Tags         vendedor
// @Produce      json
// @Security     BearerAuth
// @Param        from  query  string  false  "AAAA-MM-DD"
// @Param        to    query  string  false  "AAAA-MM-DD"
// @Success      200   {object}  dto.KPIResponse
// @Router       /api/vendedor/dashboard/kpis [get]
func (h *ReportHandler) SellerKPIs(c *fiber.Ctx) error {
	in, err := h.query(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.dashboard.Seller(c.UserContext(), Tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
