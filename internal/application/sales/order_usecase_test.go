package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/apptest"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

var (
	seller  = tenant.Context{UserID: "v1", OrganizationID: "org1", Role: entity.RoleVendedor, ActiveCompanyID: "emp1"}
	manager = tenant.Context{UserID: "g1", OrganizationID: "org1", Role: entity.RoleGestor}
)

type env struct {
	store    *apptest.Store
	notifier *apptest.Notifier
	docs     *apptest.Documents
	uc       *OrderUseCase
}

// newEnv org1/emp1 com comissão padrão de 10%, camiseta sem grade (cam) e polo com grade G +2,00 (pol),
// ambas a 49,90 no catálogo ativo cat1.
func newEnv(t *testing.T) *env {
	t.Helper()
	s := apptest.Fixture()
	now := time.Now().UTC()
	s.PutCompany(entity.Company{ID: "emp1", OrganizationID: "org1", Name: "Malhas Sul", TaxID: "12345678000195",
		DefaultCommissionPercent: apptest.Dec("10"), IsActive: true, CreatedAt: now})
	s.PutProduct(entity.Product{ID: "cam", CompanyID: "emp1", Code: "CAM-001", Description: "Camiseta", BasePrice: apptest.Dec("49.90"), IsActive: true})
	s.PutProduct(entity.Product{ID: "pol", CompanyID: "emp1", Code: "POL-001", Description: "Polo", BasePrice: apptest.Dec("49.90"), IsActive: true,
		Variants: []entity.Variant{{ID: "pol-g", Size: "G", Color: "Azul", PriceAdjustment: apptest.Dec("2.00"), IsActive: true}}})
	s.PutCatalog(entity.Catalog{ID: "cat1", CompanyID: "emp1", Name: "Verão", IsActive: true},
		entity.CatalogItem{ID: "it-cam", ProductID: "cam", Price: apptest.Dec("49.90"), IsActive: true, Version: 1},
		entity.CatalogItem{ID: "it-pol", ProductID: "pol", Price: apptest.Dec("49.90"), IsActive: true, Version: 1})
	s.PutPaymentMethod(entity.PaymentMethod{ID: "pix", Name: "PIX", IsActive: true})

	e := &env{store: s, notifier: &apptest.Notifier{}, docs: apptest.NewDocuments()}
	e.uc = NewOrderUseCase(s.Repos(), s.Tx(), e.notifier, apptest.PDF{}, e.docs)
	return e
}

func (e *env) create(t *testing.T, items ...dto.OrderItemRequest) *dto.OrderResponse {
	t.Helper()
	resp, err := e.uc.Create(context.Background(), seller, dto.CreateOrderRequest{CatalogID: "cat1", CustomerID: "cli1", Items: items})
	require.NoError(t, err)
	return resp
}

func TestCreate_SemGradeComComissaoPadrao(t *testing.T) {
	e := newEnv(t)
	resp := e.create(t, dto.OrderItemRequest{ProductID: "cam", Quantity: 10})

	assert.True(t, resp.Total.Equal(apptest.Dec("499.00")), resp.Total.String())
	assert.Equal(t, "000001", resp.Number)
	assert.Equal(t, entity.OrderPending, resp.Status)
	require.Len(t, resp.Items, 1)
	assert.Nil(t, resp.Items[0].VariantID)
	assert.True(t, resp.Items[0].UnitPrice.Equal(apptest.Dec("49.90")))

	require.NotNil(t, resp.Commission)
	assert.True(t, resp.Commission.Amount.Equal(apptest.Dec("49.90")), resp.Commission.Amount.String())
	assert.Nil(t, resp.Commission.RuleID)

	hist := e.store.StatusHistory(resp.ID)
	require.Len(t, hist, 1)
	assert.Nil(t, hist[0].FromStatus)
	assert.Equal(t, entity.OrderPending, hist[0].ToStatus)

	logs := e.store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "pedido", logs[0].EntityType)

	require.Len(t, e.notifier.Orders, 1)
	assert.Equal(t, "000001", e.notifier.Orders[0].Number)
	assert.Equal(t, []string{"compras@lojacentro.com", "vendedor@org1.com"}, e.notifier.To[0])
}

func TestCreate_ComGradeEDescontoDeItem(t *testing.T) {
	e := newEnv(t)
	variant := "pol-g"
	resp := e.create(t, dto.OrderItemRequest{ProductID: "pol", VariantID: &variant, Quantity: 5, DiscountPercent: apptest.Dec("10")})

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(apptest.Dec("51.90")))
	assert.True(t, resp.Items[0].LineTotal.Equal(apptest.Dec("233.55")), resp.Items[0].LineTotal.String())
	assert.True(t, resp.Total.Equal(apptest.Dec("233.55")))
}

func TestCreate_RegraDeComissaoPrevalece(t *testing.T) {
	e := newEnv(t)
	sellerID := "v1"
	e.store.PutRule(entity.CommissionRule{ID: "r1", OrganizationID: "org1", SellerID: &sellerID, Percent: apptest.Dec("7.5"), Priority: 1, IsActive: true})

	resp := e.create(t, dto.OrderItemRequest{ProductID: "cam", Quantity: 10})
	require.NotNil(t, resp.Commission.RuleID)
	assert.Equal(t, "r1", *resp.Commission.RuleID)
	assert.True(t, resp.Commission.Amount.Equal(apptest.Dec("37.43")), resp.Commission.Amount.String())
}

func TestCreate_TotalDeterministico(t *testing.T) {
	e := newEnv(t)
	variant := "pol-g"
	var first decimal.Decimal
	for i := 0; i < 1000; i++ {
		resp := e.create(t,
			dto.OrderItemRequest{ProductID: "cam", Quantity: 3, DiscountPercent: apptest.Dec("3.3")},
			dto.OrderItemRequest{ProductID: "pol", VariantID: &variant, Quantity: 7, DiscountPercent: apptest.Dec("12.5")},
		)
		if i == 0 {
			first = resp.Total
			continue
		}
		require.True(t, first.Equal(resp.Total), "iteração %d: %s != %s", i, resp.Total, first)
	}
}

func TestCreate_Erros(t *testing.T) {
	ctx := context.Background()
	variant := "pol-g"
	tests := []struct {
		name string
		tc   tenant.Context
		req  dto.CreateOrderRequest
		want error
	}{
		{
			name: "sem itens",
			tc:   seller,
			req:  dto.CreateOrderRequest{CatalogID: "cat1", CustomerID: "cli1"},
			want: domain.ErrInvalidInput,
		},
		{
			name: "grade obrigatória",
			tc:   seller,
			req:  dto.CreateOrderRequest{CatalogID: "cat1", CustomerID: "cli1", Items: []dto.OrderItemRequest{{ProductID: "pol", Quantity: 1}}},
			want: domain.ErrInvalidInput,
		},
		{
			name: "variação em produto sem grade é descartada",
			tc:   seller,
			req:  dto.CreateOrderRequest{CatalogID: "cat1", CustomerID: "cli1", Items: []dto.OrderItemRequest{{ProductID: "cam", VariantID: &variant, Quantity: 1}}},
			want: nil, // produto sem grade: a variação é descartada
		},
		{
			name: "produto fora do catálogo",
			tc:   seller,
			req:  dto.CreateOrderRequest{CatalogID: "cat1", CustomerID: "cli1", Items: []dto.OrderItemRequest{{ProductID: "xyz", Quantity: 1}}},
			want: domain.ErrNotFound,
		},
		{
			name: "cliente de outra organização",
			tc:   seller,
			req:  dto.CreateOrderRequest{CatalogID: "cat1", CustomerID: "cli2", Items: []dto.OrderItemRequest{{ProductID: "cam", Quantity: 1}}},
			want: domain.ErrNotFound,
		},
		{
			name: "endereço de outro cliente",
			tc:   seller,
			req: dto.CreateOrderRequest{CatalogID: "cat1", CustomerID: "cli1", DeliveryAddressID: strPtr("nao-existe"),
				Items: []dto.OrderItemRequest{{ProductID: "cam", Quantity: 1}}},
			want: domain.ErrInvalidReference,
		},
		{
			name: "sem empresa ativa",
			tc:   tenant.Context{UserID: "v1", OrganizationID: "org1", Role: entity.RoleVendedor},
			req:  dto.CreateOrderRequest{CatalogID: "cat1", CustomerID: "cli1", Items: []dto.OrderItemRequest{{ProductID: "cam", Quantity: 1}}},
			want: domain.ErrNoActiveCompany,
		},
		{
			name: "gestor não cria pedido",
			tc:   manager,
			req:  dto.CreateOrderRequest{CatalogID: "cat1", CustomerID: "cli1", Items: []dto.OrderItemRequest{{ProductID: "cam", Quantity: 1}}},
			want: domain.ErrForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			_, err := e.uc.Create(ctx, tt.tc, tt.req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, e.store.AuditLogs(), "nada é gravado quando a criação falha")
		})
	}
}

func TestCreate_ProdutoDesativado(t *testing.T) {
	e := newEnv(t)
	e.store.PutProduct(entity.Product{ID: "cam", CompanyID: "emp1", Code: "CAM-001", Description: "Camiseta", BasePrice: apptest.Dec("49.90")})

	_, err := e.uc.Create(context.Background(), seller, dto.CreateOrderRequest{CatalogID: "cat1", CustomerID: "cli1",
		Items: []dto.OrderItemRequest{{ProductID: "cam", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, e.store.AuditLogs())
}

func TestCreate_CentavosFracionados(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	line := dto.OrderItemRequest{ProductID: "cam", Quantity: 1, DiscountPercent: apptest.Dec("33.333")}

	// 49,90 * 0,66667 = 33,266833 por linha; soma exata 99,800499
	created := e.create(t, line, line, line)
	assert.True(t, created.Items[0].LineTotal.Equal(apptest.Dec("33.27")), created.Items[0].LineTotal.String())
	assert.True(t, created.Total.Equal(apptest.Dec("99.80")), created.Total.String())

	zero := apptest.Dec("0")
	resp, err := e.uc.UpdatePending(ctx, seller, created.ID, dto.UpdateOrderRequest{DiscountPercent: &zero, Version: 1})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(apptest.Dec("99.80")), "reprecificar a partir dos itens gravados: %s", resp.Total)
}

func TestCreate_FalhaNoEmailNaoDesfazPedido(t *testing.T) {
	e := newEnv(t)
	e.notifier.Err = errors.New("fila fora do ar")
	resp := e.create(t, dto.OrderItemRequest{ProductID: "cam", Quantity: 1})
	assert.Equal(t, entity.OrderPending, e.store.Order(resp.ID).Status)
}

func TestOwnOrders_IsolamentoPorVendedor(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	resp := e.create(t, dto.OrderItemRequest{ProductID: "cam", Quantity: 2})

	got, err := e.uc.GetOwn(ctx, seller, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	other := tenant.Context{UserID: "v2", OrganizationID: "org2", Role: entity.RoleVendedor, ActiveCompanyID: "emp2"}
	_, err = e.uc.GetOwn(ctx, other, resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	otherManager := tenant.Context{UserID: "g2", OrganizationID: "org2", Role: entity.RoleGestor}
	_, err = e.uc.Get(ctx, otherManager, resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := e.uc.ListOwn(ctx, seller, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 50, list.Page.Limit)
}

func TestUpdatePending(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	created := e.create(t, dto.OrderItemRequest{ProductID: "cam", Quantity: 10})

	// preço do catálogo muda depois do pedido: o snapshot do item não muda
	require.NoError(t, e.store.Repos().Catalogs.UpdateItem(ctx,
		&entity.CatalogItem{ID: "it-cam", CatalogID: "cat1", ProductID: "cam", Price: apptest.Dec("99.90"), IsActive: true}, 1))

	discount := apptest.Dec("10")
	notes := "entregar pela manhã"
	resp, err := e.uc.UpdatePending(ctx, seller, created.ID, dto.UpdateOrderRequest{DiscountPercent: &discount, Notes: &notes, Version: 1})
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(apptest.Dec("499")))
	assert.True(t, resp.Total.Equal(apptest.Dec("449.10")), resp.Total.String())
	assert.Equal(t, 2, resp.Version)
	assert.True(t, resp.Commission.Amount.Equal(apptest.Dec("44.91")), resp.Commission.Amount.String())

	_, err = e.uc.UpdatePending(ctx, seller, created.ID, dto.UpdateOrderRequest{Notes: &notes, Version: 1})
	assert.ErrorIs(t, err, domain.ErrConflict, "versão antiga")

	bad := apptest.Dec("120")
	_, err = e.uc.UpdatePending(ctx, seller, created.ID, dto.UpdateOrderRequest{DiscountPercent: &bad, Version: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.UpdateStatus(ctx, manager, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderConfirmed, Version: 2})
	require.NoError(t, err)
	_, err = e.uc.UpdatePending(ctx, seller, created.ID, dto.UpdateOrderRequest{Notes: &notes, Version: 3})
	assert.ErrorIs(t, err, domain.ErrForbidden, "só pedidos pendentes são editáveis")
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	created := e.create(t, dto.OrderItemRequest{ProductID: "cam", Quantity: 1})

	resp, err := e.uc.Cancel(ctx, seller, created.ID, dto.CancelOrderRequest{Reason: "cliente desistiu", Version: 1})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, resp.Status)

	hist := e.store.StatusHistory(created.ID)
	require.Len(t, hist, 2)
	assert.Equal(t, entity.OrderPending, *hist[1].FromStatus)
	assert.Contains(t, hist[1].Note, "cliente desistiu")

	_, err = e.uc.Cancel(ctx, seller, created.ID, dto.CancelOrderRequest{Reason: "de novo", Version: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_Ciclo(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	created := e.create(t, dto.OrderItemRequest{ProductID: "cam", Quantity: 1})

	version := 1
	for _, st := range []string{entity.OrderConfirmed, entity.OrderPicking, entity.OrderShipped, entity.OrderDelivered} {
		resp, err := e.uc.UpdateStatus(ctx, manager, created.ID, dto.UpdateOrderStatusRequest{Status: st, Version: version})
		require.NoError(t, err, st)
		assert.Equal(t, st, resp.Status)
		version = resp.Version
	}
	_, err := e.uc.UpdateStatus(ctx, manager, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCancelled, Version: version})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "entregue é terminal")

	hist, err := e.uc.History(ctx, manager, created.ID)
	require.NoError(t, err)
	require.Len(t, hist, 5)
	assert.Equal(t, entity.OrderDelivered, hist[4].ToStatus)
}

func TestUpdateStatus_Erros(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	created := e.create(t, dto.OrderItemRequest{ProductID: "cam", Quantity: 1})

	_, err := e.uc.UpdateStatus(ctx, manager, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderShipped, Version: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "não pula etapas")

	_, err = e.uc.UpdateStatus(ctx, manager, created.ID, dto.UpdateOrderStatusRequest{Status: "arquivado", Version: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.UpdateStatus(ctx, manager, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderConfirmed, Version: 7})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = e.uc.UpdateStatus(ctx, seller, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderConfirmed, Version: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestList_Filtros(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	a := e.create(t, dto.OrderItemRequest{ProductID: "cam", Quantity: 1})
	e.create(t, dto.OrderItemRequest{ProductID: "cam", Quantity: 2})
	_, err := e.uc.UpdateStatus(ctx, manager, a.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderConfirmed, Version: 1})
	require.NoError(t, err)

	list, err := e.uc.List(ctx, manager, dto.OrderListRequest{Status: entity.OrderConfirmed})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, a.ID, list.Items[0].ID)

	list, err = e.uc.List(ctx, manager, dto.OrderListRequest{SellerID: "v1", PageRequest: dto.PageRequest{Limit: 1}})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 2, list.Page.Total)

	_, err = e.uc.List(ctx, manager, dto.OrderListRequest{From: "2024-02-10", To: "2024-02-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResendAndPDF(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	created := e.create(t, dto.OrderItemRequest{ProductID: "cam", Quantity: 1})

	require.NoError(t, e.uc.ResendConfirmation(ctx, seller, created.ID))
	assert.Len(t, e.notifier.Orders, 2)

	content, name, err := e.uc.PDF(ctx, seller, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pedido-000001.pdf", name)
	assert.Contains(t, string(content), "000001")
	assert.Contains(t, e.docs.Files, "pedidos/org1/emp1/pedido-000001.pdf")

	e.store.PutCustomer(entity.Customer{ID: "cli1", OrganizationID: "org1", TaxID: "45997418000153", LegalName: "Loja Centro Ltda", IsActive: true})
	err = e.uc.ResendConfirmation(ctx, seller, created.ID)
	assert.ErrorIs(t, err, ErrCustomerWithoutEmail)
}

func TestDocument_ResolveNomes(t *testing.T) {
	e := newEnv(t)
	variant := "pol-g"
	address := "end1"
	pm := "pix"
	resp, err := e.uc.Create(context.Background(), seller, dto.CreateOrderRequest{
		CatalogID: "cat1", CustomerID: "cli1", DeliveryAddressID: &address, PaymentMethodID: &pm,
		Items:     []dto.OrderItemRequest{{ProductID: "pol", VariantID: &variant, Quantity: 1}},
	})
	require.NoError(t, err)

	order := e.store.Order(resp.ID)
	doc, err := e.uc.Document(context.Background(), &order)
	require.NoError(t, err)
	assert.Equal(t, "Malhas Sul", doc.CompanyName)
	assert.Equal(t, "Vendedor Um", doc.SellerName)
	assert.Equal(t, "PIX", doc.PaymentMethod)
	assert.Contains(t, doc.DeliveryAddress, "Curitiba/PR")
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "POL-001", doc.Items[0].Code)
	assert.Equal(t, "G / Azul", doc.Items[0].Variant)
}

func strPtr(s string) *string { return &s }
