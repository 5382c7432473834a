package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.ReportRepository = reportRepo{}

// reportRepo agrega direto dos pedidos em memória, com a mesma regra das visões:
// cancelados ficam de fora e o período mensal compara o primeiro dia do mês.
type reportRepo struct{ s *Store }

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// matching pedidos válidos do filtro; monthly aplica o período pelo mês. Chamar com o lock.
func (r reportRepo) matching(f repository.ReportFilter, withSeller, monthly bool) []entity.Order {
	var out []entity.Order
	for _, o := range r.s.orders {
		if o.OrganizationID != f.OrganizationID || o.Status == entity.OrderCancelled {
			continue
		}
		if (f.CompanyID != "" && o.CompanyID != f.CompanyID) || (withSeller && f.SellerID != "" && o.SellerID != f.SellerID) {
			continue
		}
		at := o.CreatedAt
		from := f.From
		if monthly {
			at = monthStart(at)
			from = monthStart(from)
		}
		if !f.From.IsZero() && at.Before(from) {
			continue
		}
		if !f.To.IsZero() && !at.Before(f.To) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (r reportRepo) SalesBySellerMonth(_ context.Context, f repository.ReportFilter) ([]repository.SellerMonthSales, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	type key struct {
		seller string
		month  time.Time
	}
	acc := map[key]*repository.SellerMonthSales{}
	for _, o := range r.matching(f, true, true) {
		k := key{o.SellerID, monthStart(o.CreatedAt)}
		row, ok := acc[k]
		if !ok {
			row = &repository.SellerMonthSales{SellerID: o.SellerID, SellerName: r.s.users[o.SellerID].FullName, Month: k.month}
			acc[k] = row
		}
		row.OrderCount++
		row.TotalValue = row.TotalValue.Add(o.Total)
	}
	list := make([]repository.SellerMonthSales, 0, len(acc))
	for _, row := range acc {
		row.AverageTicket = row.TotalValue.DivRound(decimal.NewFromInt(int64(row.OrderCount)), 2)
		list = append(list, *row)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Month.Equal(list[j].Month) {
			return list[i].Month.After(list[j].Month)
		}
		return list[i].TotalValue.GreaterThan(list[j].TotalValue)
	})
	return list, nil
}

func (r reportRepo) SalesByCompanyMonth(_ context.Context, f repository.ReportFilter) ([]repository.CompanyMonthSales, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	type key struct {
		company string
		month   time.Time
	}
	acc := map[key]*repository.CompanyMonthSales{}
	clients := map[key]map[string]bool{}
	for _, o := range r.matching(f, false, true) {
		k := key{o.CompanyID, monthStart(o.CreatedAt)}
		row, ok := acc[k]
		if !ok {
			row = &repository.CompanyMonthSales{CompanyID: o.CompanyID, CompanyName: r.s.companies[o.CompanyID].Name, Month: k.month}
			acc[k] = row
			clients[k] = map[string]bool{}
		}
		row.OrderCount++
		row.TotalValue = row.TotalValue.Add(o.Total)
		clients[k][o.CustomerID] = true
	}
	list := make([]repository.CompanyMonthSales, 0, len(acc))
	for k, row := range acc {
		row.DistinctClients = len(clients[k])
		list = append(list, *row)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Month.Equal(list[j].Month) {
			return list[i].Month.After(list[j].Month)
		}
		return list[i].TotalValue.GreaterThan(list[j].TotalValue)
	})
	return list, nil
}

func (r reportRepo) SalesByCityMonth(_ context.Context, f repository.ReportFilter) ([]repository.CityMonthSales, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	type key struct {
		city, state string
		month       time.Time
	}
	acc := map[key]*repository.CityMonthSales{}
	for _, o := range r.matching(f, false, true) {
		city, state := "Não informado", ""
		if o.DeliveryAddressID != nil {
			if a, ok := r.s.addresses[*o.DeliveryAddressID]; ok {
				city, state = a.City, a.State
			}
		}
		k := key{city, state, monthStart(o.CreatedAt)}
		row, ok := acc[k]
		if !ok {
			row = &repository.CityMonthSales{City: city, State: state, Month: k.month}
			acc[k] = row
		}
		row.OrderCount++
		row.TotalValue = row.TotalValue.Add(o.Total)
	}
	list := make([]repository.CityMonthSales, 0, len(acc))
	for _, row := range acc {
		list = append(list, *row)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Month.Equal(list[j].Month) {
			return list[i].Month.After(list[j].Month)
		}
		return list[i].TotalValue.GreaterThan(list[j].TotalValue)
	})
	return list, nil
}

func (r reportRepo) CommissionsByOrder(_ context.Context, f repository.ReportFilter) ([]repository.OrderCommissionRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []repository.OrderCommissionRow
	for _, o := range r.matching(f, true, false) {
		c, ok := r.s.commissions[o.ID]
		if !ok {
			continue
		}
		list = append(list, repository.OrderCommissionRow{
			OrderID:     o.ID,
			OrderNumber: o.Number,
			OrderDate:   o.CreatedAt,
			SellerID:    c.SellerID,
			SellerName:  r.s.users[c.SellerID].FullName,
			CompanyID:   o.CompanyID,
			CompanyName: r.s.companies[o.CompanyID].Name,
			OrderTotal:  o.Total,
			Percent:     c.Percent,
			Amount:      c.Amount,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OrderDate.After(list[j].OrderDate) })
	return list, nil
}

func (r reportRepo) Summary(_ context.Context, f repository.ReportFilter) (repository.SalesSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var s repository.SalesSummary
	customers := map[string]bool{}
	for _, o := range r.matching(f, true, false) {
		s.OrderCount++
		s.TotalValue = s.TotalValue.Add(o.Total)
		if c, ok := r.s.commissions[o.ID]; ok {
			s.CommissionTotal = s.CommissionTotal.Add(c.Amount)
		}
		customers[o.CustomerID] = true
	}
	s.CustomersServed = len(customers)
	return s, nil
}

func (r reportRepo) AdminSummary(_ context.Context) (repository.AdminSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var s repository.AdminSummary
	for _, o := range r.s.orgs {
		switch o.SubscriptionStatus {
		case entity.SubscriptionActive:
			s.ActiveOrganizations++
		case entity.SubscriptionSuspended:
			s.SuspendedOrganizations++
		}
	}
	for _, u := range r.s.users {
		if !u.IsActive {
			continue
		}
		switch u.Role {
		case entity.RoleGestor:
			s.ActiveManagers++
		case entity.RoleVendedor:
			s.ActiveSellers++
		}
	}
	for _, o := range r.s.orders {
		if o.Status != entity.OrderCancelled {
			s.OrderCount++
			s.OrderValue = s.OrderValue.Add(o.Total)
		}
	}
	return s, nil
}
