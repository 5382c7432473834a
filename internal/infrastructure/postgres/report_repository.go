package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de leitura sobre as visões de relatório (vw_*).
type ReportRepo struct {
	q Querier
}

// NewReportRepository constrói o adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// reportWhere monta o filtro comum às visões. monthCol é a coluna de data usada no período.
// Nas visões mensais o período é comparado pelo primeiro dia do mês.
func reportWhere(f repository.ReportFilter, monthCol string, monthly bool) (string, []any) {
	args := []any{f.OrganizationID}
	where := ` WHERE organization_id = $1`
	add := func(cond string, v any) {
		args = append(args, v)
		where += fmt.Sprintf(cond, len(args))
	}
	if f.CompanyID != "" {
		add(` AND company_id = $%d`, f.CompanyID)
	}
	if f.SellerID != "" {
		add(` AND seller_id = $%d`, f.SellerID)
	}
	if !f.From.IsZero() {
		if monthly {
			add(` AND `+monthCol+` >= date_trunc('month', $%d::timestamptz)::date`, f.From)
		} else {
			add(` AND `+monthCol+` >= $%d`, f.From)
		}
	}
	if !f.To.IsZero() {
		add(` AND `+monthCol+` < $%d`, f.To)
	}
	return where, args
}

// SalesBySellerMonth vendas por vendedor e mês.
func (r *ReportRepo) SalesBySellerMonth(ctx context.Context, f repository.ReportFilter) ([]repository.SellerMonthSales, error) {
	where, args := reportWhere(f, "month", true)
	rows, err := r.q.Query(ctx, `
		SELECT seller_id, seller_name, month, SUM(order_count)::int, SUM(total_value)
		FROM vw_vendas_vendedor_mes`+where+`
		GROUP BY seller_id, seller_name, month
		ORDER BY month DESC, SUM(total_value) DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by seller: %w", err)
	}
	defer rows.Close()
	var list []repository.SellerMonthSales
	for rows.Next() {
		var s repository.SellerMonthSales
		if err := rows.Scan(&s.SellerID, &s.SellerName, &s.Month, &s.OrderCount, &s.TotalValue); err != nil {
			return nil, fmt.Errorf("scan sales by seller: %w", err)
		}
		if s.OrderCount > 0 {
			s.AverageTicket = s.TotalValue.DivRound(decimal.NewFromInt(int64(s.OrderCount)), 2)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// SalesByCompanyMonth vendas por empresa e mês.
func (r *ReportRepo) SalesByCompanyMonth(ctx context.Context, f repository.ReportFilter) ([]repository.CompanyMonthSales, error) {
	// A visão de empresa não tem vendedor; o filtro por vendedor é ignorado aqui.
	f.SellerID = ""
	where, args := reportWhere(f, "month", true)
	rows, err := r.q.Query(ctx, `
		SELECT company_id, company_name, month, SUM(order_count)::int, SUM(total_value), SUM(distinct_clients)::int
		FROM vw_vendas_empresa_mes`+where+`
		GROUP BY company_id, company_name, month
		ORDER BY month DESC, SUM(total_value) DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by company: %w", err)
	}
	defer rows.Close()
	var list []repository.CompanyMonthSales
	for rows.Next() {
		var s repository.CompanyMonthSales
		if err := rows.Scan(&s.CompanyID, &s.CompanyName, &s.Month, &s.OrderCount, &s.TotalValue, &s.DistinctClients); err != nil {
			return nil, fmt.Errorf("scan sales by company: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// SalesByCityMonth vendas por cidade do endereço de entrega e mês.
func (r *ReportRepo) SalesByCityMonth(ctx context.Context, f repository.ReportFilter) ([]repository.CityMonthSales, error) {
	f.SellerID = ""
	where, args := reportWhere(f, "month", true)
	rows, err := r.q.Query(ctx, `
		SELECT city, state, month, SUM(order_count)::int, SUM(total_value)
		FROM vw_vendas_cidade_mes`+where+`
		GROUP BY city, state, month
		ORDER BY month DESC, SUM(total_value) DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by city: %w", err)
	}
	defer rows.Close()
	var list []repository.CityMonthSales
	for rows.Next() {
		var s repository.CityMonthSales
		if err := rows.Scan(&s.City, &s.State, &s.Month, &s.OrderCount, &s.TotalValue); err != nil {
			return nil, fmt.Errorf("scan sales by city: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CommissionsByOrder comissões por pedido no período (data do pedido).
func (r *ReportRepo) CommissionsByOrder(ctx context.Context, f repository.ReportFilter) ([]repository.OrderCommissionRow, error) {
	where, args := reportWhere(f, "order_date", false)
	rows, err := r.q.Query(ctx, `
		SELECT order_id, order_number, order_date, seller_id, seller_name, company_id, company_name,
			order_total, percent, amount
		FROM vw_comissoes_pedido`+where+`
		ORDER BY order_date DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("commissions by order: %w", err)
	}
	defer rows.Close()
	var list []repository.OrderCommissionRow
	for rows.Next() {
		var c repository.OrderCommissionRow
		if err := rows.Scan(&c.OrderID, &c.OrderNumber, &c.OrderDate, &c.SellerID, &c.SellerName, &c.CompanyID, &c.CompanyName,
			&c.OrderTotal, &c.Percent, &c.Amount); err != nil {
			return nil, fmt.Errorf("scan commission: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Summary KPIs de pedidos não cancelados do filtro.
func (r *ReportRepo) Summary(ctx context.Context, f repository.ReportFilter) (repository.SalesSummary, error) {
	args := []any{f.OrganizationID}
	where := ` WHERE o.organization_id = $1 AND o.status <> 'cancelado'`
	add := func(cond string, v any) {
		args = append(args, v)
		where += fmt.Sprintf(cond, len(args))
	}
	if f.CompanyID != "" {
		add(` AND o.company_id = $%d`, f.CompanyID)
	}
	if f.SellerID != "" {
		add(` AND o.seller_id = $%d`, f.SellerID)
	}
	if !f.From.IsZero() {
		add(` AND o.created_at >= $%d`, f.From)
	}
	if !f.To.IsZero() {
		add(` AND o.created_at < $%d`, f.To)
	}
	var s repository.SalesSummary
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*)::int, COALESCE(SUM(o.total), 0), COALESCE(SUM(oc.amount), 0), COUNT(DISTINCT o.customer_id)::int
		FROM orders o
		LEFT JOIN order_commissions oc ON oc.order_id = o.id`+where, args...).
		Scan(&s.OrderCount, &s.TotalValue, &s.CommissionTotal, &s.CustomersServed)
	if err != nil {
		return s, fmt.Errorf("sales summary: %w", err)
	}
	return s, nil
}

// AdminSummary KPIs globais (todas as organizações).
func (r *ReportRepo) AdminSummary(ctx context.Context) (repository.AdminSummary, error) {
	var s repository.AdminSummary
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM organizations WHERE subscription_status = 'ativo')::int,
			(SELECT COUNT(*) FROM organizations WHERE subscription_status = 'suspenso')::int,
			(SELECT COUNT(*) FROM users WHERE role = 'gestor' AND is_active)::int,
			(SELECT COUNT(*) FROM users WHERE role = 'vendedor' AND is_active)::int,
			(SELECT COUNT(*) FROM orders WHERE status <> 'cancelado')::int,
			(SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> 'cancelado')`).
		Scan(&s.ActiveOrganizations, &s.SuspendedOrganizations, &s.ActiveManagers, &s.ActiveSellers, &s.OrderCount, &s.OrderValue)
	if err != nil {
		return s, fmt.Errorf("admin summary: %w", err)
	}
	return s, nil
}
