package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRequest período das consultas (AAAA-MM-DD). Vazio = mês corrente.
type ReportRequest struct {
	From      string `query:"from"`
	To        string `query:"to"`
	CompanyID string `query:"company_id"`
	SellerID  string `query:"seller_id"`
}

// SellerSalesRow vendas por vendedor/mês.
type SellerSalesRow struct {
	SellerID      string          `json:"seller_id"`
	SellerName    string          `json:"seller_name"`
	Month         string          `json:"month"` // AAAA-MM
	OrderCount    int             `json:"order_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

// CompanySalesRow vendas por empresa/mês.
type CompanySalesRow struct {
	CompanyID       string          `json:"company_id"`
	CompanyName     string          `json:"company_name"`
	Month           string          `json:"month"`
	OrderCount      int             `json:"order_count"`
	TotalValue      decimal.Decimal `json:"total_value"`
	DistinctClients int             `json:"distinct_clients"`
}

// CitySalesRow vendas por cidade/mês.
type CitySalesRow struct {
	City       string          `json:"city"`
	State      string          `json:"state"`
	Month      string          `json:"month"`
	OrderCount int             `json:"order_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// CommissionRow comissão por pedido.
type CommissionRow struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	OrderDate   time.Time       `json:"order_date"`
	SellerID    string          `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
	CompanyID   string          `json:"company_id"`
	CompanyName string          `json:"company_name"`
	OrderTotal  decimal.Decimal `json:"order_total"`
	Percent     decimal.Decimal `json:"percent"`
	Amount      decimal.Decimal `json:"amount"`
}

// CommissionReportResponse comissões do período com o total.
type CommissionReportResponse struct {
	Items []CommissionRow `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// KPIResponse indicadores de vendas do período (gestor e vendedor).
type KPIResponse struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	Label           string          `json:"label"` // ex.: "Outubro 2026"
	TotalSales      decimal.Decimal `json:"total_sales"`
	OrderCount      int             `json:"order_count"`
	AverageTicket   decimal.Decimal `json:"average_ticket"`
	CustomersServed int             `json:"customers_served"`
	CommissionTotal decimal.Decimal `json:"commission_total"`
}

// ManagerDashboardResponse KPIs do gestor mais os rankings do período.
type ManagerDashboardResponse struct {
	KPIResponse
	TopSellers   []SellerSalesRow  `json:"top_sellers"`
	TopCompanies []CompanySalesRow `json:"top_companies"`
}
