// Package analytics relatórios de vendas e comissões e os painéis (dashboards)
// do administrador, do gestor e do vendedor.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/period"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

const monthLayout = "2006-01"

// ReportUseCase relatórios agregados do gestor.
//
// Fonte de dados: ReportRepository (visões read-only); nada aqui escreve.
type ReportUseCase struct {
	reports repository.ReportRepository
	now     func() time.Time
}

// NewReportUseCase constrói o caso de uso.
func NewReportUseCase(reports repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports, now: time.Now}
}

// SalesBySeller vendas por vendedor/mês.
func (uc *ReportUseCase) SalesBySeller(ctx context.Context, tc tenant.Context, in dto.ReportRequest) ([]dto.SellerSalesRow, error) {
	f, err := managerFilter(tc, in, uc.now())
	if err != nil {
		return nil, err
	}
	rows, err := uc.reports.SalesBySellerMonth(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SellerSalesRow, len(rows))
	for i, r := range rows {
		out[i] = toSellerRow(r)
	}
	return out, nil
}

// SalesByCompany vendas por empresa/mês.
func (uc *ReportUseCase) SalesByCompany(ctx context.Context, tc tenant.Context, in dto.ReportRequest) ([]dto.CompanySalesRow, error) {
	f, err := managerFilter(tc, in, uc.now())
	if err != nil {
		return nil, err
	}
	rows, err := uc.reports.SalesByCompanyMonth(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanySalesRow, len(rows))
	for i, r := range rows {
		out[i] = toCompanyRow(r)
	}
	return out, nil
}

// SalesByCity vendas por cidade de entrega/mês.
func (uc *ReportUseCase) SalesByCity(ctx context.Context, tc tenant.Context, in dto.ReportRequest) ([]dto.CitySalesRow, error) {
	f, err := managerFilter(tc, in, uc.now())
	if err != nil {
		return nil, err
	}
	rows, err := uc.reports.SalesByCityMonth(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CitySalesRow, len(rows))
	for i, r := range rows {
		out[i] = dto.CitySalesRow{
			City:       r.City,
			State:      r.State,
			Month:      r.Month.Format(monthLayout),
			OrderCount: r.OrderCount,
			TotalValue: r.TotalValue,
		}
	}
	return out, nil
}

// Commissions comissão de cada pedido do período e o total.
func (uc *ReportUseCase) Commissions(ctx context.Context, tc tenant.Context, in dto.ReportRequest) (*dto.CommissionReportResponse, error) {
	f, err := managerFilter(tc, in, uc.now())
	if err != nil {
		return nil, err
	}
	rows, err := uc.reports.CommissionsByOrder(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := &dto.CommissionReportResponse{Items: make([]dto.CommissionRow, len(rows)), Total: decimal.Zero}
	for i, r := range rows {
		resp.Items[i] = dto.CommissionRow{
			OrderID:     r.OrderID,
			OrderNumber: r.OrderNumber,
			OrderDate:   r.OrderDate,
			SellerID:    r.SellerID,
			SellerName:  r.SellerName,
			CompanyID:   r.CompanyID,
			CompanyName: r.CompanyName,
			OrderTotal:  r.OrderTotal,
			Percent:     r.Percent,
			Amount:      r.Amount,
		}
		resp.Total = resp.Total.Add(r.Amount)
	}
	return resp, nil
}

func managerFilter(tc tenant.Context, in dto.ReportRequest, now time.Time) (repository.ReportFilter, error) {
	if err := tc.Manager(); err != nil {
		return repository.ReportFilter{}, err
	}
	from, to, err := period.Range(in.From, in.To, now)
	if err != nil {
		return repository.ReportFilter{}, err
	}
	return repository.ReportFilter{
		OrganizationID: tc.OrganizationID,
		CompanyID:      in.CompanyID,
		SellerID:       in.SellerID,
		From:           from,
		To:             to,
	}, nil
}

func toSellerRow(r repository.SellerMonthSales) dto.SellerSalesRow {
	return dto.SellerSalesRow{
		SellerID:      r.SellerID,
		SellerName:    r.SellerName,
		Month:         r.Month.Format(monthLayout),
		OrderCount:    r.OrderCount,
		TotalValue:    r.TotalValue,
		AverageTicket: r.AverageTicket,
	}
}

func toCompanyRow(r repository.CompanyMonthSales) dto.CompanySalesRow {
	return dto.CompanySalesRow{
		CompanyID:       r.CompanyID,
		CompanyName:     r.CompanyName,
		Month:           r.Month.Format(monthLayout),
		OrderCount:      r.OrderCount,
		TotalValue:      r.TotalValue,
		DistinctClients: r.DistinctClients,
	}
}
