package repository

import (
	"context"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// ProductFilter filtros de listagem de produtos.
type ProductFilter struct {
	CompanyID  string
	CategoryID string
	Search     string
	Limit      int
	Offset     int
}

// ProductRepository define a porta de persistência para Product, Variant e histórico de preços.
// Leituras por ID recebem o organizationID e resolvem o tenant via a empresa do produto.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Product, error)
	GetByCompanyAndCode(ctx context.Context, companyID, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, organizationID string, f ProductFilter) ([]*entity.Product, error)

	CreateVariant(ctx context.Context, v *entity.Variant) error
	GetVariant(ctx context.Context, id string) (*entity.Variant, error)
	FindVariant(ctx context.Context, productID, size, color string) (*entity.Variant, error)
	UpdateVariant(ctx context.Context, v *entity.Variant) error
	DeleteVariant(ctx context.Context, id string) error
	CountActiveVariants(ctx context.Context, productID string) (int, error)
	IsProductActive(ctx context.Context, productID string) (bool, error)

	AddPriceHistory(ctx context.Context, h *entity.PriceHistory) error
	ListPriceHistory(ctx context.Context, productID string) ([]*entity.PriceHistory, error)
}
