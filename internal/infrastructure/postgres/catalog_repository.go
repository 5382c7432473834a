package postgres

import (
	"context"
	"fmt"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementação de CatalogRepository (pool ou tx).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository constrói o adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

const catalogColumns = `k.id, k.company_id, k.name, k.description, k.valid_from, k.valid_to, k.is_active,
	k.created_at, k.updated_at`

const catalogItemColumns = `i.id, i.catalog_id, i.product_id, i.price, i.is_active, i.version, i.created_at, i.updated_at`

func scanCatalog(row interface{ Scan(...any) error }) (*entity.Catalog, error) {
	var c entity.Catalog
	err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.ValidFrom, &c.ValidTo, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCatalogItem(row interface{ Scan(...any) error }) (*entity.CatalogItem, error) {
	var i entity.CatalogItem
	if err := row.Scan(&i.ID, &i.CatalogID, &i.ProductID, &i.Price, &i.IsActive, &i.Version, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *CatalogRepo) getCatalog(ctx context.Context, op, query string, args ...any) (*entity.Catalog, error) {
	c, err := scanCatalog(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (r *CatalogRepo) getItem(ctx context.Context, op, query string, args ...any) (*entity.CatalogItem, error) {
	i, err := scanCatalogItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return i, nil
}

// Create persiste o catálogo. Um segundo catálogo ativo na empresa: ErrDuplicate.
func (r *CatalogRepo) Create(ctx context.Context, c *entity.Catalog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO catalogs (id, company_id, name, description, valid_from, valid_to, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.CompanyID, c.Name, c.Description, dateOnly(c.ValidFrom), dateOnly(c.ValidTo), c.IsActive,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert catalog: %w", err)
	}
	return nil
}

// GetByID obtém o catálogo se a empresa pertencer à organização.
func (r *CatalogRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Catalog, error) {
	return r.getCatalog(ctx, "get catalog", `SELECT `+catalogColumns+` FROM catalogs k
		JOIN companies c ON c.id = k.company_id
		WHERE k.id = $1 AND c.organization_id = $2 AND c.deleted_at IS NULL`, id, organizationID)
}

// Update atualiza o catálogo.
func (r *CatalogRepo) Update(ctx context.Context, c *entity.Catalog) error {
	_, err := r.q.Exec(ctx, `
		UPDATE catalogs SET name = $2, description = $3, valid_from = $4, valid_to = $5, is_active = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.Name, c.Description, dateOnly(c.ValidFrom), dateOnly(c.ValidTo), c.IsActive, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update catalog: %w", err)
	}
	return nil
}

// Delete remove o catálogo e seus itens. Catálogo já usado em pedidos: ErrConflict.
func (r *CatalogRepo) Delete(ctx context.Context, id string) error {
	var used bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE catalog_id = $1)`, id).Scan(&used); err != nil {
		return fmt.Errorf("check catalog usage: %w", err)
	}
	if used {
		return fmt.Errorf("catálogo possui pedidos: %w", domain.ErrConflict)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM catalogs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	return nil
}

// ListByCompany lista os catálogos da empresa (verificando o tenant).
func (r *CatalogRepo) ListByCompany(ctx context.Context, organizationID, companyID string) ([]*entity.Catalog, error) {
	rows, err := r.q.Query(ctx, `SELECT `+catalogColumns+` FROM catalogs k
		JOIN companies c ON c.id = k.company_id
		WHERE k.company_id = $1 AND c.organization_id = $2
		ORDER BY k.is_active DESC, k.valid_from DESC NULLS LAST, k.name`, companyID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Catalog
	for rows.Next() {
		c, err := scanCatalog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetActiveByCompany devolve o catálogo ativo da empresa, se houver.
func (r *CatalogRepo) GetActiveByCompany(ctx context.Context, companyID string) (*entity.Catalog, error) {
	return r.getCatalog(ctx, "get active catalog",
		`SELECT `+catalogColumns+` FROM catalogs k WHERE k.company_id = $1 AND k.is_active`, companyID)
}

// DeactivateOthers inativa os demais catálogos da empresa.
func (r *CatalogRepo) DeactivateOthers(ctx context.Context, companyID, keepID string) error {
	_, err := r.q.Exec(ctx, `UPDATE catalogs SET is_active = FALSE, updated_at = now()
		WHERE company_id = $1 AND is_active AND id::text <> $2`, companyID, keepID)
	if err != nil {
		return fmt.Errorf("deactivate catalogs: %w", err)
	}
	return nil
}

// AddItem inclui o produto no catálogo. Produto já presente: ErrDuplicate.
func (r *CatalogRepo) AddItem(ctx context.Context, i *entity.CatalogItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO catalog_items (id, catalog_id, product_id, price, is_active, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		i.ID, i.CatalogID, i.ProductID, i.Price, i.IsActive, i.Version, i.CreatedAt, i.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// GetItem obtém o item de (catálogo, produto), ativo ou não.
func (r *CatalogRepo) GetItem(ctx context.Context, catalogID, productID string) (*entity.CatalogItem, error) {
	return r.getItem(ctx, "get catalog item", `SELECT `+catalogItemColumns+` FROM catalog_items i
		WHERE i.catalog_id = $1 AND i.product_id = $2`, catalogID, productID)
}

// GetItemByID obtém o item por ID.
func (r *CatalogRepo) GetItemByID(ctx context.Context, id string) (*entity.CatalogItem, error) {
	return r.getItem(ctx, "get catalog item by id", `SELECT `+catalogItemColumns+` FROM catalog_items i WHERE i.id = $1`, id)
}

// UpdateItem grava preço e flag se a versão persistida for expectedVersion; incrementa a versão.
func (r *CatalogRepo) UpdateItem(ctx context.Context, i *entity.CatalogItem, expectedVersion int) error {
	var version int
	err := r.q.QueryRow(ctx, `
		UPDATE catalog_items SET price = $2, is_active = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $5
		RETURNING version`, i.ID, i.Price, i.IsActive, i.UpdatedAt, expectedVersion).Scan(&version)
	if err != nil {
		if noRows(err) {
			return fmt.Errorf("item de catálogo alterado por outra requisição: %w", domain.ErrConflict)
		}
		return fmt.Errorf("update catalog item: %w", err)
	}
	i.Version = version
	return nil
}

// RemoveItem remove o item do catálogo.
func (r *CatalogRepo) RemoveItem(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM catalog_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	return nil
}

// ListItems itens do catálogo com o produto e suas variações.
func (r *CatalogRepo) ListItems(ctx context.Context, catalogID string, f repository.CatalogItemFilter) ([]*repository.CatalogEntry, error) {
	args := []any{catalogID}
	query := `SELECT ` + catalogItemColumns + `, ` + productColumns + `
		FROM catalog_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.catalog_id = $1`
	if f.OnlyActive {
		query += ` AND i.is_active AND p.is_active`
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		query += fmt.Sprintf(` AND p.category_id = $%d`, len(args))
	}
	query += ` ORDER BY p.description`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	var list []*repository.CatalogEntry
	for rows.Next() {
		var e repository.CatalogEntry
		i, p := &e.Item, &e.Product
		err := rows.Scan(&i.ID, &i.CatalogID, &i.ProductID, &i.Price, &i.IsActive, &i.Version, &i.CreatedAt, &i.UpdatedAt,
			&p.ID, &p.CompanyID, &p.CategoryID, &p.Code, &p.Description, &p.BasePrice, &p.Unit, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		list = append(list, &e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	products := NewProductRepository(r.q)
	for _, e := range list {
		if e.Product.Variants, err = products.listVariants(ctx, e.Product.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}
