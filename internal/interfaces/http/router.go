package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/weslleycarlos/representacao-comercial/internal/application/analytics"
	"github.com/weslleycarlos/representacao-comercial/internal/application/auth"
	"github.com/weslleycarlos/representacao-comercial/internal/application/catalog"
	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/application/sales"
	"github.com/weslleycarlos/representacao-comercial/internal/application/usecase"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganizationUC *usecase.OrganizationUseCase
	CompanyUC      *usecase.CompanyUseCase
	SellerUC       *usecase.SellerUseCase
	CustomerUC     *usecase.CustomerUseCase
	PaymentUC      *usecase.PaymentMethodUseCase
	CommissionUC   *usecase.CommissionRuleUseCase
	AuditUC        *usecase.AuditUseCase
	LookupUC       *usecase.LookupUseCase
	CatalogUC      *catalog.CatalogUseCase
	ImportUC       *catalog.ImportUseCase
	OrderUC        *sales.OrderUseCase
	ReportUC       *analytics.ReportUseCase
	DashboardUC    *analytics.DashboardUseCase
	Tokens         ports.TokenCodec
	Sessions       SessionResolver
	LoginRateLimit int // tentativas por minuto por IP; 0 desativa
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authenticated := AuthMiddleware(deps.Tokens, deps.Sessions)

	authHandler := NewAuthHandler(deps.AuthUC)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	sellerHandler := NewSellerHandler(deps.SellerUC)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	commissionHandler := NewCommissionHandler(deps.CommissionUC)
	auditHandler := NewAuditHandler(deps.AuditUC)
	productHandler := NewProductHandler(deps.CatalogUC)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	importHandler := NewImportHandler(deps.ImportUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	reportHandler := NewReportHandler(deps.ReportUC, deps.DashboardUC)
	adminHandler := NewAdminHandler(deps.OrganizationUC, deps.DashboardUC)
	utilsHandler := NewUtilsHandler(deps.LookupUC)

	// Auth
	authGroup := api.Group("/auth")
	if deps.LoginRateLimit > 0 {
		authGroup.Post("/login", limiter.New(limiter.Config{
			Max:        deps.LoginRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "muitas tentativas de login, aguarde um minuto")
			},
		}), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Post("/select-company", authenticated, RequireRole(entity.RoleVendedor), authHandler.SelectCompany)
	authGroup.Get("/me", authenticated, authHandler.Me)
	authGroup.Put("/change-password", authenticated, authHandler.ChangePassword)

	// Super admin
	admin := api.Group("/admin", authenticated, RequireRole(entity.RoleSuperAdmin))
	admin.Get("/organizations", adminHandler.ListOrganizations)
	admin.Post("/organizations", adminHandler.CreateOrganization)
	admin.Get("/organizations/:id", adminHandler.GetOrganization)
	admin.Put("/organizations/:id", adminHandler.UpdateOrganization)
	admin.Get("/dashboard/kpis", adminHandler.KPIs)
	admin.Get("/logs", auditHandler.List)

	// Gestor
	gestor := api.Group("/gestor", authenticated, RequireRole(entity.RoleGestor, entity.RoleSuperAdmin))

	gestor.Get("/companies", companyHandler.List)
	gestor.Post("/companies", companyHandler.Create)
	gestor.Get("/companies/:id", companyHandler.GetByID)
	gestor.Put("/companies/:id", companyHandler.Update)
	gestor.Delete("/companies/:id", companyHandler.Delete)

	gestor.Get("/sellers", sellerHandler.List)
	gestor.Post("/sellers", sellerHandler.Create)
	gestor.Get("/sellers/:id", sellerHandler.GetByID)
	gestor.Put("/sellers/:id", sellerHandler.Update)
	gestor.Delete("/sellers/:id", sellerHandler.Delete)
	gestor.Post("/sellers/:id/companies", sellerHandler.LinkCompany)
	gestor.Delete("/sellers/:id/companies/:company_id", sellerHandler.UnlinkCompany)

	registerCustomerRoutes(gestor, customerHandler, true)

	gestor.Get("/categories", productHandler.ListCategories)
	gestor.Post("/categories", productHandler.CreateCategory)
	gestor.Put("/categories/:id", productHandler.UpdateCategory)
	gestor.Delete("/categories/:id", productHandler.DeleteCategory)

	gestor.Get("/products", productHandler.List)
	gestor.Post("/products", productHandler.Create)
	gestor.Get("/products/:id", productHandler.GetByID)
	gestor.Put("/products/:id", productHandler.Update)
	gestor.Get("/products/:id/price-history", productHandler.PriceHistory)
	gestor.Post("/products/:id/variants", productHandler.AddVariant)
	gestor.Put("/products/:id/variants/:variant_id", productHandler.UpdateVariant)
	gestor.Delete("/products/:id/variants/:variant_id", productHandler.DeleteVariant)

	gestor.Get("/catalogs", catalogHandler.List)
	gestor.Post("/catalogs", catalogHandler.Create)
	gestor.Get("/catalogs/:id", catalogHandler.GetByID)
	gestor.Put("/catalogs/:id", catalogHandler.Update)
	gestor.Delete("/catalogs/:id", catalogHandler.Delete)
	gestor.Get("/catalogs/:id/items", catalogHandler.ListItems)
	gestor.Post("/catalogs/:id/items", catalogHandler.AddItem)
	gestor.Put("/catalogs/:id/items/:item_id", catalogHandler.UpdateItem)
	gestor.Delete("/catalogs/:id/items/:item_id", catalogHandler.RemoveItem)

	gestor.Get("/payment-methods", paymentHandler.List)
	gestor.Post("/payment-methods", paymentHandler.Create)
	gestor.Put("/payment-methods/:id", paymentHandler.Update)
	gestor.Delete("/payment-methods/:id", paymentHandler.Delete)

	// preview antes de :id
	gestor.Get("/commission-rules/preview", commissionHandler.Preview)
	gestor.Get("/commission-rules", commissionHandler.List)
	gestor.Post("/commission-rules", commissionHandler.Create)
	gestor.Get("/commission-rules/:id", commissionHandler.GetByID)
	gestor.Put("/commission-rules/:id", commissionHandler.Update)
	gestor.Delete("/commission-rules/:id", commissionHandler.Delete)

	gestor.Get("/orders", orderHandler.List)
	gestor.Get("/orders/:id", orderHandler.GetByID)
	gestor.Put("/orders/:id/status", orderHandler.UpdateStatus)
	gestor.Get("/orders/:id/history", orderHandler.History)

	gestor.Get("/reports/sales-by-seller", reportHandler.SalesBySeller)
	gestor.Get("/reports/sales-by-company", reportHandler.SalesByCompany)
	gestor.Get("/reports/sales-by-city", reportHandler.SalesByCity)
	gestor.Get("/reports/commissions", reportHandler.Commissions)
	gestor.Get("/dashboard/kpis", reportHandler.ManagerKPIs)

	gestor.Post("/import/preview", importHandler.Preview)
	gestor.Get("/import/template", importHandler.Template)
	gestor.Post("/import", importHandler.Import)

	gestor.Get("/logs", auditHandler.List)

	// Vendedor
	vendedor := api.Group("/vendedor", authenticated, RequireRole(entity.RoleVendedor), RequireActiveCompany())

	vendedor.Get("/catalog", catalogHandler.SellerCatalog)
	vendedor.Get("/categories", productHandler.ListCategories)
	registerCustomerRoutes(vendedor, customerHandler, false)
	vendedor.Get("/payment-methods", paymentHandler.List)

	vendedor.Get("/orders", orderHandler.ListOwn)
	vendedor.Post("/orders", orderHandler.Create)
	vendedor.Get("/orders/:id", orderHandler.GetOwn)
	vendedor.Put("/orders/:id", orderHandler.UpdatePending)
	vendedor.Post("/orders/:id/cancel", orderHandler.Cancel)
	vendedor.Post("/orders/:id/resend-email", orderHandler.ResendConfirmation)
	vendedor.Get("/orders/:id/pdf", orderHandler.PDF)

	vendedor.Get("/dashboard/kpis", reportHandler.SellerKPIs)

	// Utils
	utils := api.Group("/utils", authenticated)
	utils.Get("/cnpj/:cnpj", utilsHandler.CNPJ)
	utils.Get("/cep/:cep", utilsHandler.CEP)
}

// registerCustomerRoutes o vendedor lista, cadastra e mantém endereços; contatos,
// edição e exclusão ficam com o gestor.
func registerCustomerRoutes(r fiber.Router, h *CustomerHandler, manager bool) {
	r.Get("/customers", h.List)
	r.Post("/customers", h.Create)
	r.Get("/customers/:id", h.GetByID)
	r.Post("/customers/:id/addresses", h.AddAddress)
	r.Put("/customers/:id/addresses/:address_id", h.UpdateAddress)
	r.Delete("/customers/:id/addresses/:address_id", h.DeleteAddress)
	if !manager {
		return
	}
	r.Put("/customers/:id", h.Update)
	r.Delete("/customers/:id", h.Delete)
	r.Post("/customers/:id/contacts", h.AddContact)
	r.Put("/customers/:id/contacts/:contact_id", h.UpdateContact)
	r.Delete("/customers/:id/contacts/:contact_id", h.DeleteContact)
}
