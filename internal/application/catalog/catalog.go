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

// ListCatalogs catálogos de uma empresa da organização.
func (uc *CatalogUseCase) ListCatalogs(ctx context.Context, tc tenant.Context, companyID string) ([]dto.CatalogResponse, error) {
	company, err := uc.company(ctx, tc, companyID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Catalogs.ListByCompany(ctx, tc.OrganizationID, company.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogResponse, len(list))
	for i, c := range list {
		out[i] = toCatalogResponse(c)
	}
	return out, nil
}

// GetCatalog catálogo da organização.
func (uc *CatalogUseCase) GetCatalog(ctx context.Context, tc tenant.Context, id string) (*dto.CatalogResponse, error) {
	c, err := uc.catalog(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	resp := toCatalogResponse(c)
	return &resp, nil
}

// CreateCatalog cria catálogo. Criado ativo, desativa os demais da empresa.
func (uc *CatalogUseCase) CreateCatalog(ctx context.Context, tc tenant.Context, in dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	company, err := uc.company(ctx, tc, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := checkValidity(in.ValidFrom, in.ValidTo); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &entity.Catalog{
		ID:          uuid.New().String(),
		CompanyID:   company.ID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		ValidFrom:   in.ValidFrom,
		ValidTo:     in.ValidTo,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Catalogs.Create(ctx, c); err != nil {
			return err
		}
		if c.IsActive {
			if err := r.Catalogs.DeactivateOthers(ctx, c.CompanyID, c.ID); err != nil {
				return err
			}
		}
		var d audit.Diff
		d.Set("nome", c.Name)
		d.Set("ativo", c.IsActive)
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "catalogo", c.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toCatalogResponse(c)
	return &resp, nil
}

// UpdateCatalog altera o catálogo. Ativar desativa os demais catálogos da empresa.
func (uc *CatalogUseCase) UpdateCatalog(ctx context.Context, tc tenant.Context, id string, in dto.UpdateCatalogRequest) (*dto.CatalogResponse, error) {
	c, err := uc.catalog(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	var d audit.Diff
	if in.Name != nil {
		d.Add("nome", c.Name, strings.TrimSpace(*in.Name))
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.ValidFrom != nil {
		c.ValidFrom = in.ValidFrom
	}
	if in.ValidTo != nil {
		c.ValidTo = in.ValidTo
	}
	if in.ClearValidTo {
		c.ValidTo = nil
	}
	if err := checkValidity(c.ValidFrom, c.ValidTo); err != nil {
		return nil, err
	}
	activated := false
	if in.IsActive != nil {
		d.Add("ativo", c.IsActive, *in.IsActive)
		activated = *in.IsActive && !c.IsActive
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now().UTC()
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Catalogs.Update(ctx, c); err != nil {
			return err
		}
		if activated {
			if err := r.Catalogs.DeactivateOthers(ctx, c.CompanyID, c.ID); err != nil {
				return err
			}
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "catalogo", c.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toCatalogResponse(c)
	return &resp, nil
}

// DeleteCatalog remove catálogo sem pedidos (com pedidos: ErrConflict).
func (uc *CatalogUseCase) DeleteCatalog(ctx context.Context, tc tenant.Context, id string) error {
	c, err := uc.catalog(ctx, tc, id)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Catalogs.Delete(ctx, c.ID); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("nome", c.Name)
		return audit.Record(ctx, r.Audit, tc, entity.AuditDelete, "catalogo", c.ID, d)
	})
}

// ListItems itens do catálogo com produto e variações.
func (uc *CatalogUseCase) ListItems(ctx context.Context, tc tenant.Context, catalogID string) ([]dto.CatalogItemResponse, error) {
	c, err := uc.catalog(ctx, tc, catalogID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.repos.Catalogs.ListItems(ctx, c.ID, repository.CatalogItemFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogItemResponse, len(entries))
	for i, e := range entries {
		out[i] = toItemResponse(&e.Item, &e.Product)
	}
	return out, nil
}

// AddItem inclui produto da mesma empresa no catálogo. Produto já presente: ErrDuplicate.
func (uc *CatalogUseCase) AddItem(ctx context.Context, tc tenant.Context, catalogID string, in dto.AddCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	c, err := uc.catalog(ctx, tc, catalogID)
	if err != nil {
		return nil, err
	}
	p, err := uc.repos.Products.GetByID(ctx, tc.OrganizationID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != c.CompanyID {
		return nil, domain.NotFound("produto")
	}
	if err := validatePrice("price", in.Price); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	item := &entity.CatalogItem{
		ID:        uuid.New().String(),
		CatalogID: c.ID,
		ProductID: p.ID,
		Price:     in.Price,
		IsActive:  true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Catalogs.AddItem(ctx, item); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("produto", p.ID)
		d.Set("preco", item.Price)
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "item_catalogo", item.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toItemResponse(item, p)
	return &resp, nil
}

// UpdateItem altera preço/flag do item com checagem de versão; mudança de preço grava histórico.
func (uc *CatalogUseCase) UpdateItem(ctx context.Context, tc tenant.Context, catalogID, itemID string, in dto.UpdateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	c, err := uc.catalog(ctx, tc, catalogID)
	if err != nil {
		return nil, err
	}
	item, err := uc.repos.Catalogs.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CatalogID != c.ID {
		return nil, domain.NotFound("item de catálogo")
	}
	if item.Version != in.Version {
		return nil, domain.ErrConflict
	}
	now := time.Now().UTC()
	var d audit.Diff
	var history *entity.PriceHistory
	if in.Price != nil && !in.Price.Equal(item.Price) {
		if err := validatePrice("price", *in.Price); err != nil {
			return nil, err
		}
		catalogID := c.ID
		history = &entity.PriceHistory{
			ID:            uuid.New().String(),
			ProductID:     item.ProductID,
			CatalogID:     &catalogID,
			PreviousPrice: item.Price,
			NewPrice:      *in.Price,
			Reason:        in.Reason,
			ChangedBy:     tc.UserID,
			ChangedAt:     now,
		}
		d.Add("preco", item.Price, *in.Price)
		item.Price = *in.Price
	}
	if in.IsActive != nil {
		d.Add("ativo", item.IsActive, *in.IsActive)
		item.IsActive = *in.IsActive
	}
	item.UpdatedAt = now
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Catalogs.UpdateItem(ctx, item, in.Version); err != nil {
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
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "item_catalogo", item.ID, d)
	})
	if err != nil {
		return nil, err
	}
	p, err := uc.repos.Products.GetByID(ctx, tc.OrganizationID, item.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &entity.Product{ID: item.ProductID}
	}
	resp := toItemResponse(item, p)
	return &resp, nil
}

// RemoveItem retira o produto do catálogo.
func (uc *CatalogUseCase) RemoveItem(ctx context.Context, tc tenant.Context, catalogID, itemID string) error {
	c, err := uc.catalog(ctx, tc, catalogID)
	if err != nil {
		return err
	}
	item, err := uc.repos.Catalogs.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.CatalogID != c.ID {
		return domain.NotFound("item de catálogo")
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Catalogs.RemoveItem(ctx, item.ID); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("produto", item.ProductID)
		return audit.Record(ctx, r.Audit, tc, entity.AuditDelete, "item_catalogo", item.ID, d)
	})
}

func (uc *CatalogUseCase) catalog(ctx context.Context, tc tenant.Context, id string) (*entity.Catalog, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	c, err := uc.repos.Catalogs.GetByID(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("catálogo")
	}
	return c, nil
}

func checkValidity(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return domain.NewValidationError("valid_to", "fim da vigência anterior ao início")
	}
	return nil
}

func toCatalogResponse(c *entity.Catalog) dto.CatalogResponse {
	return dto.CatalogResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		Name:        c.Name,
		Description: c.Description,
		ValidFrom:   c.ValidFrom,
		ValidTo:     c.ValidTo,
		IsActive:    c.IsActive,
	}
}

func toItemResponse(i *entity.CatalogItem, p *entity.Product) dto.CatalogItemResponse {
	return dto.CatalogItemResponse{
		ID:        i.ID,
		CatalogID: i.CatalogID,
		Price:     i.Price,
		IsActive:  i.IsActive,
		Version:   i.Version,
		Product:   toProductResponse(p),
	}
}
