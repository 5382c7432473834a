package catalog

import (
	"context"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// SellerCatalog catálogo ativo da empresa selecionada, apenas com produtos e variações ativos
// e o preço efetivo de cada variação.
func (uc *CatalogUseCase) SellerCatalog(ctx context.Context, tc tenant.Context, categoryID string) (*dto.SellerCatalogResponse, error) {
	companyID, err := tc.Seller()
	if err != nil {
		return nil, err
	}
	catalog, err := uc.repos.Catalogs.GetActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, domain.NotFound("catálogo ativo")
	}
	entries, err := uc.repos.Catalogs.ListItems(ctx, catalog.ID, repository.CatalogItemFilter{OnlyActive: true, CategoryID: categoryID})
	if err != nil {
		return nil, err
	}
	resp := &dto.SellerCatalogResponse{CatalogID: catalog.ID, Name: catalog.Name, Items: make([]dto.SellerCatalogItem, 0, len(entries))}
	for _, e := range entries {
		item := dto.SellerCatalogItem{
			ProductID:   e.Product.ID,
			Code:        e.Product.Code,
			Description: e.Product.Description,
			CategoryID:  e.Product.CategoryID,
			Unit:        e.Product.Unit,
			Price:       e.Item.Price,
			Variants:    []dto.SellerCatalogVariant{},
		}
		for _, v := range e.Product.ActiveVariants() {
			item.Variants = append(item.Variants, dto.SellerCatalogVariant{
				ID:             v.ID,
				Size:           v.Size,
				Color:          v.Color,
				EffectivePrice: e.Item.Price.Add(v.PriceAdjustment),
				Stock:          v.Stock,
			})
		}
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}
