package repository

import (
	"context"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// CatalogEntry item de catálogo com o produto (e suas variações) carregado.
type CatalogEntry struct {
	Item    entity.CatalogItem
	Product entity.Product
}

// CatalogItemFilter filtros de listagem de itens.
type CatalogItemFilter struct {
	OnlyActive bool // item ativo no catálogo e produto ativo
	CategoryID string
}

// CatalogRepository define a porta de persistência para Catalog e CatalogItem.
type CatalogRepository interface {
	Create(ctx context.Context, catalog *entity.Catalog) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Catalog, error)
	Update(ctx context.Context, catalog *entity.Catalog) error
	Delete(ctx context.Context, id string) error
	ListByCompany(ctx context.Context, organizationID, companyID string) ([]*entity.Catalog, error)
	GetActiveByCompany(ctx context.Context, companyID string) (*entity.Catalog, error)
	// DeactivateOthers garante um único catálogo ativo por empresa.
	DeactivateOthers(ctx context.Context, companyID, keepID string) error

	AddItem(ctx context.Context, item *entity.CatalogItem) error
	GetItem(ctx context.Context, catalogID, productID string) (*entity.CatalogItem, error)
	GetItemByID(ctx context.Context, id string) (*entity.CatalogItem, error)
	// UpdateItem grava preço/flag somente se a versão persistida for expectedVersion; caso contrário ErrConflict.
	UpdateItem(ctx context.Context, item *entity.CatalogItem, expectedVersion int) error
	RemoveItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, catalogID string, f CatalogItemFilter) ([]*CatalogEntry, error)
}
