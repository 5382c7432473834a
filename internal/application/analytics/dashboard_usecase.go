package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/period"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

const dashboardTop = 5 // vendedores/empresas no ranking do painel

// DashboardUseCase KPIs dos painéis.
//
// Fonte de dados: ReportRepository (consultas read-only).
type DashboardUseCase struct {
	reports repository.ReportRepository
	now     func() time.Time
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(reports repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reports: reports, now: time.Now}
}

// Manager painel do gestor: KPIs do período mais os rankings de vendedores e empresas.
//
// Três consultas em paralelo:
//  1. Summary              → vendas, pedidos, clientes, comissão
//  2. SalesBySellerMonth   → TopSellers
//  3. SalesByCompanyMonth  → TopCompanies
func (uc *DashboardUseCase) Manager(ctx context.Context, tc tenant.Context, in dto.ReportRequest) (*dto.ManagerDashboardResponse, error) {
	f, err := managerFilter(tc, in, uc.now())
	if err != nil {
		return nil, err
	}

	// ── Goroutines para as 3 consultas ──
	type summaryResult struct {
		s   repository.SalesSummary
		err error
	}
	type sellersResult struct {
		rows []repository.SellerMonthSales
		err  error
	}
	type companiesResult struct {
		rows []repository.CompanyMonthSales
		err  error
	}

	summaryCh := make(chan summaryResult, 1)
	sellersCh := make(chan sellersResult, 1)
	companiesCh := make(chan companiesResult, 1)

	go func() {
		s, err := uc.reports.Summary(ctx, f)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		rows, err := uc.reports.SalesBySellerMonth(ctx, f)
		sellersCh <- sellersResult{rows, err}
	}()
	go func() {
		rows, err := uc.reports.SalesByCompanyMonth(ctx, f)
		companiesCh <- companiesResult{rows, err}
	}()

	summary := <-summaryCh
	sellers := <-sellersCh
	companies := <-companiesCh

	if summary.err != nil {
		return nil, fmt.Errorf("dashboard: resumo: %w", summary.err)
	}
	if sellers.err != nil {
		return nil, fmt.Errorf("dashboard: vendedores: %w", sellers.err)
	}
	if companies.err != nil {
		return nil, fmt.Errorf("dashboard: empresas: %w", companies.err)
	}

	// ── Rankings ──
	resp := &dto.ManagerDashboardResponse{
		KPIResponse:  kpis(f, summary.s),
		TopSellers:   topSellers(sellers.rows),
		TopCompanies: topCompanies(companies.rows),
	}
	return resp, nil
}

// Seller painel do vendedor: seus pedidos na empresa selecionada.
func (uc *DashboardUseCase) Seller(ctx context.Context, tc tenant.Context, in dto.ReportRequest) (*dto.KPIResponse, error) {
	companyID, err := tc.Seller()
	if err != nil {
		return nil, err
	}
	from, to, err := period.Range(in.From, in.To, uc.now())
	if err != nil {
		return nil, err
	}
	f := repository.ReportFilter{OrganizationID: tc.OrganizationID, CompanyID: companyID, SellerID: tc.UserID, From: from, To: to}
	s, err := uc.reports.Summary(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumo: %w", err)
	}
	resp := kpis(f, s)
	return &resp, nil
}

// Admin KPIs globais do SaaS (apenas super_admin).
func (uc *DashboardUseCase) Admin(ctx context.Context, tc tenant.Context) (*dto.AdminKPIResponse, error) {
	if err := tc.RequireRole(entity.RoleSuperAdmin); err != nil {
		return nil, err
	}
	s, err := uc.reports.AdminSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: admin: %w", err)
	}
	return &dto.AdminKPIResponse{
		ActiveOrganizations:    s.ActiveOrganizations,
		SuspendedOrganizations: s.SuspendedOrganizations,
		ActiveManagers:         s.ActiveManagers,
		ActiveSellers:          s.ActiveSellers,
		OrderCount:             s.OrderCount,
		OrderValue:             s.OrderValue.Round(2),
	}, nil
}

func kpis(f repository.ReportFilter, s repository.SalesSummary) dto.KPIResponse {
	ticket := decimal.Zero
	if s.OrderCount > 0 {
		ticket = s.TotalValue.DivRound(decimal.NewFromInt(int64(s.OrderCount)), 2)
	}
	return dto.KPIResponse{
		From:            f.From.Format(period.DayLayout),
		To:              f.To.AddDate(0, 0, -1).Format(period.DayLayout),
		Label:           monthLabel(f.From),
		TotalSales:      s.TotalValue.Round(2),
		OrderCount:      s.OrderCount,
		AverageTicket:   ticket,
		CustomersServed: s.CustomersServed,
		CommissionTotal: s.CommissionTotal.Round(2),
	}
}

// topSellers soma os meses do período por vendedor e devolve os maiores.
func topSellers(rows []repository.SellerMonthSales) []dto.SellerSalesRow {
	acc := map[string]*repository.SellerMonthSales{}
	var order []string
	for _, r := range rows {
		cur, ok := acc[r.SellerID]
		if !ok {
			r := r
			acc[r.SellerID] = &r
			order = append(order, r.SellerID)
			continue
		}
		cur.OrderCount += r.OrderCount
		cur.TotalValue = cur.TotalValue.Add(r.TotalValue)
		if r.Month.Before(cur.Month) {
			cur.Month = r.Month
		}
	}
	out := make([]dto.SellerSalesRow, 0, len(order))
	for _, id := range order {
		r := acc[id]
		r.AverageTicket = r.TotalValue.DivRound(decimal.NewFromInt(int64(r.OrderCount)), 2)
		out = append(out, toSellerRow(*r))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalValue.GreaterThan(out[j].TotalValue) })
	if len(out) > dashboardTop {
		out = out[:dashboardTop]
	}
	return out
}

// topCompanies idem por empresa. Clientes distintos são somados entre meses (aproximação).
func topCompanies(rows []repository.CompanyMonthSales) []dto.CompanySalesRow {
	acc := map[string]*repository.CompanyMonthSales{}
	var order []string
	for _, r := range rows {
		cur, ok := acc[r.CompanyID]
		if !ok {
			r := r
			acc[r.CompanyID] = &r
			order = append(order, r.CompanyID)
			continue
		}
		cur.OrderCount += r.OrderCount
		cur.TotalValue = cur.TotalValue.Add(r.TotalValue)
		cur.DistinctClients += r.DistinctClients
		if r.Month.Before(cur.Month) {
			cur.Month = r.Month
		}
	}
	out := make([]dto.CompanySalesRow, 0, len(order))
	for _, id := range order {
		out = append(out, toCompanyRow(*acc[id]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalValue.GreaterThan(out[j].TotalValue) })
	if len(out) > dashboardTop {
		out = out[:dashboardTop]
	}
	return out
}

// monthLabel rótulo legível do mês, ex.: "Outubro 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
