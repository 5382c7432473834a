package postgres

import (
	"context"
	"fmt"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementação de CategoryRepository.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository constrói o adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, organization_id, parent_id, name, description, is_active, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.OrganizationID, &c.ParentID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// Create persiste a categoria. Nome repetido na organização: ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.OrganizationID, c.ParentID, c.Name, c.Description, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtém a categoria da organização.
func (r *CategoryRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Category, error) {
	return r.getOne(ctx, "get category",
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND organization_id = $2`, id, organizationID)
}

// FindByName busca pelo nome sem diferenciar maiúsculas.
func (r *CategoryRepo) FindByName(ctx context.Context, organizationID, name string) (*entity.Category, error) {
	return r.getOne(ctx, "find category by name",
		`SELECT `+categoryColumns+` FROM categories WHERE organization_id = $1 AND lower(name) = lower($2)`, organizationID, name)
}

// Update atualiza a categoria.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		UPDATE categories SET parent_id = $3, name = $4, description = $5, is_active = $6, updated_at = $7
		WHERE id = $1 AND organization_id = $2`,
		c.ID, c.OrganizationID, c.ParentID, c.Name, c.Description, c.IsActive, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// List lista as categorias da organização por nome.
func (r *CategoryRepo) List(ctx context.Context, organizationID string, onlyActive bool) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT `+categoryColumns+` FROM categories
		WHERE organization_id = $1 AND (NOT $2 OR is_active) ORDER BY name`, organizationID, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete remove a categoria. Produtos e subcategorias ficam sem categoria (ON DELETE SET NULL).
func (r *CategoryRepo) Delete(ctx context.Context, organizationID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("categoria")
	}
	return nil
}
