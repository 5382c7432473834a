package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/apptest"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

var (
	manager = tenant.Context{UserID: "g1", OrganizationID: "org1", Role: entity.RoleGestor}
	seller  = tenant.Context{UserID: "v1", OrganizationID: "org1", Role: entity.RoleVendedor, ActiveCompanyID: "emp1"}
	admin   = tenant.Context{UserID: "adm", Role: entity.RoleSuperAdmin}
	march   = dto.ReportRequest{From: "2026-03-01", To: "2026-03-31"}
)

// newStore março/2026 em org1: três pedidos de v1 (um cancelado), um de v3 e um em abril;
// org2 tem um pedido que nunca deve aparecer.
func newStore(t *testing.T) *apptest.Store {
	t.Helper()
	s := apptest.Fixture()
	s.PutUser(entity.User{ID: "v3", OrganizationID: "org1", FullName: "Vendedora Três", Role: entity.RoleVendedor, IsActive: true}, "emp1")
	at := func(day int) time.Time { return time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC) }
	end1 := "end1"
	put := func(id, sellerID, customer string, status string, total string, created time.Time, commission string) {
		s.PutOrder(entity.Order{ID: id, OrganizationID: "org1", CompanyID: "emp1", SellerID: sellerID, CustomerID: customer,
			CatalogID: "cat1", Number: id, Status: status, Total: apptest.Dec(total), DeliveryAddressID: &end1, CreatedAt: created})
		s.PutCommission(entity.OrderCommission{OrderID: id, SellerID: sellerID, Percent: apptest.Dec("5"), Amount: apptest.Dec(commission)})
	}
	put("p1", "v1", "cli1", entity.OrderPending, "100.00", at(2), "5.00")
	put("p2", "v1", "cli1", entity.OrderDelivered, "300.00", at(10), "15.00")
	put("p3", "v1", "cli1", entity.OrderCancelled, "999.00", at(11), "49.95")
	put("p4", "v3", "cli3", entity.OrderConfirmed, "50.00", at(20), "2.50")
	put("p5", "v1", "cli1", entity.OrderPending, "70.00", time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), "3.50")
	s.PutOrder(entity.Order{ID: "x1", OrganizationID: "org2", CompanyID: "emp2", SellerID: "v2", CustomerID: "cli2",
		Status: entity.OrderPending, Total: apptest.Dec("1000"), CreatedAt: at(5)})
	return s
}

// ── Relatórios ──

func TestSalesBySeller(t *testing.T) {
	uc := NewReportUseCase(newStore(t).Repos().Reports)

	rows, err := uc.SalesBySeller(context.Background(), manager, march)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "v1", rows[0].SellerID)
	assert.Equal(t, "2026-03", rows[0].Month)
	assert.Equal(t, 2, rows[0].OrderCount)
	assert.True(t, rows[0].TotalValue.Equal(apptest.Dec("400")))
	assert.True(t, rows[0].AverageTicket.Equal(apptest.Dec("200")))
}

func TestSalesByCompanyAndCity(t *testing.T) {
	uc := NewReportUseCase(newStore(t).Repos().Reports)
	ctx := context.Background()

	companies, err := uc.SalesByCompany(ctx, manager, march)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Malhas Sul", companies[0].CompanyName)
	assert.Equal(t, 3, companies[0].OrderCount)
	assert.Equal(t, 2, companies[0].DistinctClients)

	cities, err := uc.SalesByCity(ctx, manager, march)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Curitiba", cities[0].City)
	assert.True(t, cities[0].TotalValue.Equal(apptest.Dec("450")))
}

func TestCommissions(t *testing.T) {
	uc := NewReportUseCase(newStore(t).Repos().Reports)

	resp, err := uc.Commissions(context.Background(), manager, dto.ReportRequest{From: "2026-03-01", To: "2026-03-31", SellerID: "v1"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Total.Equal(apptest.Dec("20.00")), resp.Total.String())
	assert.Equal(t, "p2", resp.Items[0].OrderID)
}

func TestReports_PeriodoPadraoEAcesso(t *testing.T) {
	uc := NewReportUseCase(newStore(t).Repos().Reports)
	uc.now = func() time.Time { return time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	rows, err := uc.SalesBySeller(ctx, manager, dto.ReportRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-04", rows[0].Month)

	_, err = uc.SalesBySeller(ctx, seller, march)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.SalesBySeller(ctx, manager, dto.ReportRequest{From: "2026-03-10", To: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Painéis ──

func TestManagerDashboard(t *testing.T) {
	uc := NewDashboardUseCase(newStore(t).Repos().Reports)

	resp, err := uc.Manager(context.Background(), manager, march)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", resp.From)
	assert.Equal(t, "2026-03-31", resp.To)
	assert.Equal(t, "Março 2026", resp.Label)
	assert.Equal(t, 3, resp.OrderCount)
	assert.True(t, resp.TotalSales.Equal(apptest.Dec("450")))
	assert.True(t, resp.AverageTicket.Equal(apptest.Dec("150")))
	assert.Equal(t, 2, resp.CustomersServed)
	assert.True(t, resp.CommissionTotal.Equal(apptest.Dec("22.50")))

	require.Len(t, resp.TopSellers, 2)
	assert.Equal(t, "v1", resp.TopSellers[0].SellerID)
	require.Len(t, resp.TopCompanies, 1)
}

func TestTopSellers_SomaMesesELimita(t *testing.T) {
	uc := NewDashboardUseCase(newStore(t).Repos().Reports)

	resp, err := uc.Manager(context.Background(), manager, dto.ReportRequest{From: "2026-03-01", To: "2026-04-30"})
	require.NoError(t, err)
	require.Len(t, resp.TopSellers, 2)
	assert.Equal(t, 3, resp.TopSellers[0].OrderCount)
	assert.True(t, resp.TopSellers[0].TotalValue.Equal(apptest.Dec("470")))
	assert.True(t, resp.TopSellers[0].AverageTicket.Equal(apptest.Dec("156.67")), resp.TopSellers[0].AverageTicket.String())
}

func TestSellerDashboard(t *testing.T) {
	uc := NewDashboardUseCase(newStore(t).Repos().Reports)
	ctx := context.Background()

	resp, err := uc.Seller(ctx, seller, march)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.OrderCount)
	assert.True(t, resp.CommissionTotal.Equal(apptest.Dec("20")))

	noCompany := seller
	noCompany.ActiveCompanyID = ""
	_, err = uc.Seller(ctx, noCompany, march)
	assert.ErrorIs(t, err, domain.ErrNoActiveCompany)
}

func TestSellerDashboard_PeriodoVazio(t *testing.T) {
	uc := NewDashboardUseCase(apptest.Fixture().Repos().Reports)

	resp, err := uc.Seller(context.Background(), seller, march)
	require.NoError(t, err)
	assert.Zero(t, resp.OrderCount)
	assert.True(t, resp.AverageTicket.IsZero())
}

func TestAdminDashboard(t *testing.T) {
	s := newStore(t)
	s.PutOrganization(entity.Organization{ID: "org3", Name: "Suspensa", SubscriptionStatus: entity.SubscriptionSuspended})
	uc := NewDashboardUseCase(s.Repos().Reports)

	resp, err := uc.Admin(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ActiveOrganizations)
	assert.Equal(t, 1, resp.SuspendedOrganizations)
	assert.Equal(t, 1, resp.ActiveManagers)
	assert.Equal(t, 3, resp.ActiveSellers)
	assert.Equal(t, 5, resp.OrderCount)
	assert.True(t, resp.OrderValue.Equal(apptest.Dec("1520")), resp.OrderValue.String())

	_, err = uc.Admin(context.Background(), manager)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Outubro 2026", monthLabel(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)))
}
