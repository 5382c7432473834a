package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/apptest"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

func TestCreateProduct(t *testing.T) {
	_, uc := newCatalogEnv(t)
	ctx := context.Background()
	sku := " CAL-P-AZ "

	resp, err := uc.CreateProduct(ctx, manager, dto.CreateProductRequest{
		CompanyID: "emp1", Code: "CAL-001", Description: "Calça", BasePrice: apptest.Dec("99.90"), Unit: "un",
		Variants:  []dto.VariantRequest{{Size: "P", Color: "Azul", SKU: &sku}, {Size: "M", Color: "Azul"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "UN", resp.Unit)
	require.Len(t, resp.Variants, 2)

	got, err := uc.GetProduct(ctx, manager, resp.ID)
	require.NoError(t, err)
	require.Len(t, got.Variants, 2)

	_, err = uc.CreateProduct(ctx, manager, dto.CreateProductRequest{CompanyID: "emp1", Code: "CAL-001", Description: "Outra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProduct_Validacoes(t *testing.T) {
	_, uc := newCatalogEnv(t)
	ctx := context.Background()
	missing := "nao-existe"

	tests := []struct {
		name string
		in   dto.CreateProductRequest
		want error
	}{
		{"preço negativo", dto.CreateProductRequest{CompanyID: "emp1", Code: "A", Description: "A", BasePrice: apptest.Dec("-1")}, domain.ErrInvalidInput},
		{"categoria inexistente", dto.CreateProductRequest{CompanyID: "emp1", Code: "A", Description: "A", CategoryID: &missing}, domain.ErrNotFound},
		{"empresa de outra organização", dto.CreateProductRequest{CompanyID: "emp2", Code: "A", Description: "A"}, domain.ErrNotFound},
		{"estoque negativo", dto.CreateProductRequest{CompanyID: "emp1", Code: "A", Description: "A", Variants: []dto.VariantRequest{{Size: "P", Stock: -1}}}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateProduct(ctx, manager, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateProduct_PrecoBaseGeraHistorico(t *testing.T) {
	s, uc := newCatalogEnv(t)
	ctx := context.Background()
	price := apptest.Dec("42.00")

	_, err := uc.UpdateProduct(ctx, manager, "cam", dto.UpdateProductRequest{BasePrice: &price, Reason: "tabela nova"})
	require.NoError(t, err)

	hist, err := uc.PriceHistory(ctx, manager, "cam")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Nil(t, hist[0].CatalogID)
	assert.True(t, hist[0].NewPrice.Equal(price))
	assert.Equal(t, "tabela nova", hist[0].Reason)

	// mesmo preço não gera novo registro
	_, err = uc.UpdateProduct(ctx, manager, "cam", dto.UpdateProductRequest{BasePrice: &price})
	require.NoError(t, err)
	assert.Len(t, s.PriceHistory("cam"), 1)
}

func TestVariants(t *testing.T) {
	s, uc := newCatalogEnv(t)
	ctx := context.Background()

	v, err := uc.AddVariant(ctx, manager, "pol", dto.VariantRequest{Size: "M", Color: "Azul", PriceAdjustment: apptest.Dec("1.00")})
	require.NoError(t, err)
	assert.True(t, v.IsActive)

	_, err = uc.AddVariant(ctx, manager, "pol", dto.VariantRequest{Size: "M", Color: "Azul"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	upd, err := uc.UpdateVariant(ctx, manager, "pol", v.ID, dto.VariantRequest{Size: "M", Color: "Azul", Stock: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, upd.Stock)

	_, err = uc.UpdateVariant(ctx, manager, "cam", v.ID, dto.VariantRequest{Size: "M"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// variação usada em pedido é desativada, não removida
	s.PutOrder(entity.Order{ID: "o1", OrganizationID: "org1", CompanyID: "emp1", CatalogID: "cat1",
		Items: []entity.OrderItem{{ID: "i1", ProductID: "pol", VariantID: strPtr("pol-g"), Quantity: 1}}})
	require.NoError(t, uc.DeleteVariant(ctx, manager, "pol", "pol-g"))
	p, err := uc.GetProduct(ctx, manager, "pol")
	require.NoError(t, err)
	for _, pv := range p.Variants {
		if pv.ID == "pol-g" {
			assert.False(t, pv.IsActive)
		}
	}

	require.NoError(t, uc.DeleteVariant(ctx, manager, "pol", v.ID))
	p, err = uc.GetProduct(ctx, manager, "pol")
	require.NoError(t, err)
	assert.Len(t, p.Variants, 2)
}

func TestListProducts(t *testing.T) {
	_, uc := newCatalogEnv(t)

	list, err := uc.ListProducts(context.Background(), manager, dto.ProductListRequest{Search: "pol"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "POL-001", list[0].Code)

	list, err = uc.ListProducts(context.Background(), other, dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ── Categorias ──

func TestCategories(t *testing.T) {
	_, uc := newCatalogEnv(t)
	ctx := context.Background()

	root, err := uc.CreateCategory(ctx, manager, dto.CategoryRequest{Name: "Roupas"})
	require.NoError(t, err)
	child, err := uc.CreateCategory(ctx, manager, dto.CategoryRequest{Name: "Camisas", ParentID: &root.ID})
	require.NoError(t, err)

	_, err = uc.CreateCategory(ctx, manager, dto.CategoryRequest{Name: "roupas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.UpdateCategory(ctx, manager, child.ID, dto.CategoryRequest{Name: "Camisas", ParentID: &child.ID})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "parent_id", ve.Field)

	off := false
	_, err = uc.UpdateCategory(ctx, manager, child.ID, dto.CategoryRequest{Name: "Camisas", ParentID: &root.ID, IsActive: &off})
	require.NoError(t, err)

	all, err := uc.ListCategories(ctx, manager, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// vendedor sempre vê só as ativas
	visible, err := uc.ListCategories(ctx, seller, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Roupas", visible[0].Name)

	_, err = uc.CreateCategory(ctx, seller, dto.CategoryRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, uc.DeleteCategory(ctx, manager, child.ID))
	assert.ErrorIs(t, uc.DeleteCategory(ctx, other, root.ID), domain.ErrNotFound)
}

func strPtr(s string) *string { return &s }
