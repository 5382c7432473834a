package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SellerMonthSales linha da visão de vendas por vendedor/mês.
// Pedidos cancelados nunca entram nas agregações.
type SellerMonthSales struct {
	SellerID      string
	SellerName    string
	Month         time.Time // primeiro dia do mês
	OrderCount    int
	TotalValue    decimal.Decimal
	AverageTicket decimal.Decimal
}

// CompanyMonthSales linha da visão de vendas por empresa/mês.
type CompanyMonthSales struct {
	CompanyID       string
	CompanyName     string
	Month           time.Time
	OrderCount      int
	TotalValue      decimal.Decimal
	DistinctClients int
}

// CityMonthSales linha da visão de vendas por cidade (endereço de entrega)/mês.
type CityMonthSales struct {
	City       string
	State      string
	Month      time.Time
	OrderCount int
	TotalValue decimal.Decimal
}

// OrderCommissionRow comissão calculada por pedido (snapshot).
type OrderCommissionRow struct {
	OrderID     string
	OrderNumber string
	OrderDate   time.Time
	SellerID    string
	SellerName  string
	CompanyID   string
	CompanyName string
	OrderTotal  decimal.Decimal
	Percent     decimal.Decimal
	Amount      decimal.Decimal
}

// SalesSummary agregado de vendas de um período (KPIs).
type SalesSummary struct {
	OrderCount      int
	TotalValue      decimal.Decimal
	CommissionTotal decimal.Decimal
	CustomersServed int
}

// AdminSummary KPIs globais do SaaS.
type AdminSummary struct {
	ActiveOrganizations    int
	SuspendedOrganizations int
	ActiveManagers         int
	ActiveSellers          int
	OrderCount             int
	OrderValue             decimal.Decimal
}

// ReportFilter período e escopo opcional das consultas de relatório.
type ReportFilter struct {
	OrganizationID string
	CompanyID      string
	SellerID       string
	From           time.Time
	To             time.Time
}

// ReportRepository consultas de leitura sobre as visões agregadas. Implementações são read-only.
type ReportRepository interface {
	SalesBySellerMonth(ctx context.Context, f ReportFilter) ([]SellerMonthSales, error)
	SalesByCompanyMonth(ctx context.Context, f ReportFilter) ([]CompanyMonthSales, error)
	SalesByCityMonth(ctx context.Context, f ReportFilter) ([]CityMonthSales, error)
	CommissionsByOrder(ctx context.Context, f ReportFilter) ([]OrderCommissionRow, error)

	// ── Dashboards ────────────────────────────────────────────────────────────

	// Summary agrega pedidos não cancelados do filtro (valor, quantidade, clientes, comissão).
	Summary(ctx context.Context, f ReportFilter) (SalesSummary, error)
	AdminSummary(ctx context.Context) (AdminSummary, error)
}
