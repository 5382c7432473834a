// Package pricing resolve o preço efetivo de itens de catálogo e precifica pedidos.
// Toda aritmética monetária usa shopspring/decimal; percentuais vêm em 0–100.
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// ItemSource busca o item de um catálogo para um produto.
type ItemSource interface {
	GetItem(ctx context.Context, catalogID, productID string) (*entity.CatalogItem, error)
}

// VariantSource busca variações e a situação do produto.
type VariantSource interface {
	GetVariant(ctx context.Context, id string) (*entity.Variant, error)
	CountActiveVariants(ctx context.Context, productID string) (int, error)
	IsProductActive(ctx context.Context, productID string) (bool, error)
}

// Resolver calcula o preço unitário efetivo: preço base do catálogo + ajuste da variação.
// Não há cache; cada chamada consulta a fonte.
type Resolver struct {
	items    ItemSource
	variants VariantSource
}

// NewResolver constrói o resolvedor de preços.
func NewResolver(items ItemSource, variants VariantSource) *Resolver {
	return &Resolver{items: items, variants: variants}
}

// ResolvePrice devolve o preço unitário de productID no catálogo catalogID, com a variação opcional.
// Item ausente ou inativo no catálogo: NotFound. Variação de outro produto ou inativa: ErrInvalidReference.
func (r *Resolver) ResolvePrice(ctx context.Context, catalogID, productID string, variantID *string) (decimal.Decimal, error) {
	item, err := r.items.GetItem(ctx, catalogID, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get catalog item: %w", err)
	}
	if item == nil || !item.IsActive {
		return decimal.Zero, domain.NotFound("produto no catálogo")
	}
	price := item.Price
	if variantID == nil {
		return price, nil
	}
	v, err := r.variants.GetVariant(ctx, *variantID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get variant: %w", err)
	}
	if v == nil || v.ProductID != productID || !v.IsActive {
		return decimal.Zero, fmt.Errorf("variação %s do produto %s: %w", *variantID, productID, domain.ErrInvalidReference)
	}
	return price.Add(v.PriceAdjustment), nil
}
