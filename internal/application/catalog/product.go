package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weslleycarlos/representacao-comercial/internal/application/audit"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

const (
	defaultPage = 50
	maxPage     = 500
)

// ListProducts produtos das empresas da organização.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, tc tenant.Context, in dto.ProductListRequest) ([]dto.ProductResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	in.DefaultPage(defaultPage, maxPage)
	list, err := uc.repos.Products.List(ctx, tc.OrganizationID, repository.ProductFilter{
		CompanyID:  in.CompanyID,
		CategoryID: in.CategoryID,
		Search:     strings.TrimSpace(in.Search),
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, len(list))
	for i, p := range list {
		out[i] = toProductResponse(p)
	}
	return out, nil
}

// GetProduct produto com variações.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, tc tenant.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.product(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// CreateProduct cadastra produto (e variações iniciais) numa empresa da organização.
// Código duplicado na empresa: ErrDuplicate.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, tc tenant.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	company, err := uc.company(ctx, tc, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := validatePrice("base_price", in.BasePrice); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, tc, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   company.ID,
		CategoryID:  in.CategoryID,
		Code:        strings.TrimSpace(in.Code),
		Description: strings.TrimSpace(in.Description),
		BasePrice:   in.BasePrice,
		Unit:        strings.ToUpper(strings.TrimSpace(in.Unit)),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, v := range in.Variants {
		variant, err := newVariant(p.ID, v, now)
		if err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, *variant)
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("codigo", p.Code)
		d.Set("preco_base", p.BasePrice)
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "produto", p.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// UpdateProduct altera o produto. Mudança de preço base grava histórico de preço.
func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, tc tenant.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.product(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	var d audit.Diff
	var history *entity.PriceHistory
	now := time.Now().UTC()
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, tc, in.CategoryID); err != nil {
			return nil, err
		}
		d.Add("id_categoria", deref(p.CategoryID), *in.CategoryID)
		p.CategoryID = in.CategoryID
	}
	if in.Code != nil {
		d.Add("codigo", p.Code, strings.TrimSpace(*in.Code))
		p.Code = strings.TrimSpace(*in.Code)
	}
	if in.Description != nil {
		d.Add("descricao", p.Description, strings.TrimSpace(*in.Description))
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Unit != nil {
		p.Unit = strings.ToUpper(strings.TrimSpace(*in.Unit))
	}
	if in.IsActive != nil {
		d.Add("ativo", p.IsActive, *in.IsActive)
		p.IsActive = *in.IsActive
	}
	if in.BasePrice != nil && !in.BasePrice.Equal(p.BasePrice) {
		if err := validatePrice("base_price", *in.BasePrice); err != nil {
			return nil, err
		}
		history = &entity.PriceHistory{
			ID:            uuid.New().String(),
			ProductID:     p.ID,
			PreviousPrice: p.BasePrice,
			NewPrice:      *in.BasePrice,
			Reason:        in.Reason,
			ChangedBy:     tc.UserID,
			ChangedAt:     now,
		}
		d.Add("preco_base", p.BasePrice, *in.BasePrice)
		p.BasePrice = *in.BasePrice
	}
	p.UpdatedAt = now

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}
		if history != nil {
			if err := r.Products.AddPriceHistory(ctx, history); err != nil {
				return err
			}
		}
		if d.Empty() {
			return nil
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "produto", p.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// PriceHistory alterações de preço do produto, mais recentes primeiro.
func (uc *CatalogUseCase) PriceHistory(ctx context.Context, tc tenant.Context, productID string) ([]dto.PriceHistoryResponse, error) {
	p, err := uc.product(ctx, tc, productID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repos.Products.ListPriceHistory(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceHistoryResponse, len(rows))
	for i, h := range rows {
		out[i] = dto.PriceHistoryResponse{
			ID:            h.ID,
			CatalogID:     h.CatalogID,
			PreviousPrice: h.PreviousPrice,
			NewPrice:      h.NewPrice,
			Reason:        h.Reason,
			ChangedBy:     h.ChangedBy,
			ChangedAt:     h.ChangedAt,
		}
	}
	return out, nil
}

// AddVariant inclui uma variação. SKU duplicado ou grade repetida: ErrDuplicate.
func (uc *CatalogUseCase) AddVariant(ctx context.Context, tc tenant.Context, productID string, in dto.VariantRequest) (*dto.VariantResponse, error) {
	p, err := uc.product(ctx, tc, productID)
	if err != nil {
		return nil, err
	}
	v, err := newVariant(p.ID, in, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Products.CreateVariant(ctx, v); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("grade", v.Size+"/"+v.Color)
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "variacao", v.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toVariantResponse(v)
	return &resp, nil
}

// UpdateVariant substitui os dados da variação.
func (uc *CatalogUseCase) UpdateVariant(ctx context.Context, tc tenant.Context, productID, variantID string, in dto.VariantRequest) (*dto.VariantResponse, error) {
	v, err := uc.variant(ctx, tc, productID, variantID)
	if err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, domain.NewValidationError("stock", "estoque não pode ser negativo")
	}
	var d audit.Diff
	d.Add("tamanho", v.Size, strings.TrimSpace(in.Size))
	d.Add("cor", v.Color, strings.TrimSpace(in.Color))
	d.Add("ajuste_preco", v.PriceAdjustment, in.PriceAdjustment)
	d.Add("estoque", v.Stock, in.Stock)
	v.Size, v.Color = strings.TrimSpace(in.Size), strings.TrimSpace(in.Color)
	v.SKU = cleanSKU(in.SKU)
	v.PriceAdjustment, v.Stock = in.PriceAdjustment, in.Stock
	if in.IsActive != nil {
		d.Add("ativo", v.IsActive, *in.IsActive)
		v.IsActive = *in.IsActive
	}
	v.UpdatedAt = time.Now().UTC()
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Products.UpdateVariant(ctx, v); err != nil {
			return err
		}
		if d.Empty() {
			return nil
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "variacao", v.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toVariantResponse(v)
	return &resp, nil
}

// DeleteVariant remove a variação (ou a desativa, se já usada em pedidos).
func (uc *CatalogUseCase) DeleteVariant(ctx context.Context, tc tenant.Context, productID, variantID string) error {
	v, err := uc.variant(ctx, tc, productID, variantID)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Products.DeleteVariant(ctx, v.ID); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditDelete, "variacao", v.ID, nil)
	})
}

func (uc *CatalogUseCase) product(ctx context.Context, tc tenant.Context, id string) (*entity.Product, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	p, err := uc.repos.Products.GetByID(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("produto")
	}
	return p, nil
}

func (uc *CatalogUseCase) variant(ctx context.Context, tc tenant.Context, productID, variantID string) (*entity.Variant, error) {
	p, err := uc.product(ctx, tc, productID)
	if err != nil {
		return nil, err
	}
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i], nil
		}
	}
	return nil, domain.NotFound("variação")
}

func (uc *CatalogUseCase) checkCategory(ctx context.Context, tc tenant.Context, id *string) error {
	if id == nil {
		return nil
	}
	c, err := uc.repos.Categories.GetByID(ctx, tc.OrganizationID, *id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("categoria")
	}
	return nil
}

func newVariant(productID string, in dto.VariantRequest, now time.Time) (*entity.Variant, error) {
	if in.Stock < 0 {
		return nil, domain.NewValidationError("stock", "estoque não pode ser negativo")
	}
	return &entity.Variant{
		ID:              uuid.New().String(),
		ProductID:       productID,
		Size:            strings.TrimSpace(in.Size),
		Color:           strings.TrimSpace(in.Color),
		SKU:             cleanSKU(in.SKU),
		PriceAdjustment: in.PriceAdjustment,
		Stock:           in.Stock,
		IsActive:        boolOr(in.IsActive, true),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func cleanSKU(sku *string) *string {
	if sku == nil {
		return nil
	}
	s := strings.TrimSpace(*sku)
	if s == "" {
		return nil
	}
	return &s
}

func toVariantResponse(v *entity.Variant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:              v.ID,
		Size:            v.Size,
		Color:           v.Color,
		SKU:             v.SKU,
		PriceAdjustment: v.PriceAdjustment,
		Stock:           v.Stock,
		IsActive:        v.IsActive,
	}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	variants := make([]dto.VariantResponse, len(p.Variants))
	for i := range p.Variants {
		variants[i] = toVariantResponse(&p.Variants[i])
	}
	return dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		CategoryID:  p.CategoryID,
		Code:        p.Code,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		Unit:        p.Unit,
		IsActive:    p.IsActive,
		Variants:    variants,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
