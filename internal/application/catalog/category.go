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
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// ListCategories categorias da organização. Vendedor vê apenas as ativas.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, tc tenant.Context, onlyActive bool) ([]dto.CategoryResponse, error) {
	if tc.OrganizationID == "" {
		return nil, domain.ErrForbidden
	}
	if tc.Role == entity.RoleVendedor {
		onlyActive = true
	}
	list, err := uc.repos.Categories.List(ctx, tc.OrganizationID, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, len(list))
	for i, c := range list {
		out[i] = toCategoryResponse(c)
	}
	return out, nil
}

// CreateCategory cria categoria; o pai, se informado, deve ser da mesma organização.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, tc tenant.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	if err := uc.checkParent(ctx, tc, "", in.ParentID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &entity.Category{
		ID:             uuid.New().String(),
		OrganizationID: tc.OrganizationID,
		ParentID:       in.ParentID,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		IsActive:       boolOr(in.IsActive, true),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Categories.Create(ctx, c); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("nome", c.Name)
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "categoria", c.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// UpdateCategory substitui os dados da categoria.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, tc tenant.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.category(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkParent(ctx, tc, c.ID, in.ParentID); err != nil {
		return nil, err
	}
	var d audit.Diff
	name := strings.TrimSpace(in.Name)
	d.Add("nome", c.Name, name)
	d.Add("descricao", c.Description, in.Description)
	d.Add("id_pai", deref(c.ParentID), deref(in.ParentID))
	active := boolOr(in.IsActive, c.IsActive)
	d.Add("ativo", c.IsActive, active)
	c.Name, c.Description, c.ParentID, c.IsActive = name, in.Description, in.ParentID, active
	c.UpdatedAt = time.Now().UTC()

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Categories.Update(ctx, c); err != nil {
			return err
		}
		if d.Empty() {
			return nil
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "categoria", c.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// DeleteCategory remove a categoria; produtos ficam sem categoria.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, tc tenant.Context, id string) error {
	c, err := uc.category(ctx, tc, id)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Categories.Delete(ctx, tc.OrganizationID, c.ID); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("nome", c.Name)
		return audit.Record(ctx, r.Audit, tc, entity.AuditDelete, "categoria", c.ID, d)
	})
}

func (uc *CatalogUseCase) category(ctx context.Context, tc tenant.Context, id string) (*entity.Category, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	c, err := uc.repos.Categories.GetByID(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("categoria")
	}
	return c, nil
}

func (uc *CatalogUseCase) checkParent(ctx context.Context, tc tenant.Context, selfID string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	if *parentID == selfID {
		return domain.NewValidationError("parent_id", "categoria não pode ser pai de si mesma")
	}
	parent, err := uc.repos.Categories.GetByID(ctx, tc.OrganizationID, *parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return domain.NotFound("categoria pai")
	}
	return nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, ParentID: c.ParentID, Name: c.Name, Description: c.Description, IsActive: c.IsActive}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
