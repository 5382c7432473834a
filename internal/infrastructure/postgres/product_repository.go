package postgres

import (
	"context"
	"fmt"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementação de ProductRepository (pool ou tx).
// O tenant de um produto é o da sua empresa.
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `p.id, p.company_id, p.category_id, p.code, p.description, p.base_price, p.unit, p.is_active,
	p.created_at, p.updated_at`

const variantColumns = `v.id, v.product_id, v.size, v.color, v.sku, v.price_adjustment, v.stock, v.is_active,
	v.created_at, v.updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.CategoryID, &p.Code, &p.Description, &p.BasePrice, &p.Unit, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanVariant(row interface{ Scan(...any) error }) (*entity.Variant, error) {
	var v entity.Variant
	err := row.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.SKU, &v.PriceAdjustment, &v.Stock, &v.IsActive,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste o produto (sem variações). Código repetido na empresa: ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, category_id, code, description, base_price, unit, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.CategoryID, p.Code, p.Description, p.BasePrice, p.Unit, p.IsActive,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtém o produto com variações se a empresa pertencer à organização.
func (r *ProductRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p
		JOIN companies c ON c.id = p.company_id
		WHERE p.id = $1 AND c.organization_id = $2 AND c.deleted_at IS NULL`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p.Variants, err = r.listVariants(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByCompanyAndCode busca o produto pelo código dentro da empresa.
func (r *ProductRepo) GetByCompanyAndCode(ctx context.Context, companyID, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.company_id = $1 AND p.code = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	if p.Variants, err = r.listVariants(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Update atualiza o produto (variações têm métodos próprios).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, code = $3, description = $4, base_price = $5, unit = $6,
			is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.CategoryID, p.Code, p.Description, p.BasePrice, p.Unit, p.IsActive, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista produtos das empresas da organização com variações.
func (r *ProductRepo) List(ctx context.Context, organizationID string, f repository.ProductFilter) ([]*entity.Product, error) {
	args := []any{organizationID}
	query := `SELECT ` + productColumns + ` FROM products p
		JOIN companies c ON c.id = p.company_id
		WHERE c.organization_id = $1 AND c.deleted_at IS NULL`
	if f.CompanyID != "" {
		args = append(args, f.CompanyID)
		query += fmt.Sprintf(` AND p.company_id = $%d`, len(args))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		query += fmt.Sprintf(` AND p.category_id = $%d`, len(args))
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		query += fmt.Sprintf(` AND (p.code ILIKE $%d OR p.description ILIKE $%d)`, len(args), len(args))
	}
	query += ` ORDER BY p.description`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	for _, p := range list {
		if p.Variants, err = r.listVariants(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// CreateVariant persiste a variação. SKU ou (tamanho, cor) repetidos: ErrDuplicate.
func (r *ProductRepo) CreateVariant(ctx context.Context, v *entity.Variant) error {
	query := `
		INSERT INTO product_variants (id, product_id, size, color, sku, price_adjustment, stock, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.ProductID, v.Size, v.Color, v.SKU, v.PriceAdjustment, v.Stock, v.IsActive, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetVariant obtém a variação por ID (o chamador confere o produto).
func (r *ProductRepo) GetVariant(ctx context.Context, id string) (*entity.Variant, error) {
	v, err := scanVariant(r.q.QueryRow(ctx, `SELECT `+variantColumns+` FROM product_variants v WHERE v.id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

// FindVariant busca a variação por (produto, tamanho, cor).
func (r *ProductRepo) FindVariant(ctx context.Context, productID, size, color string) (*entity.Variant, error) {
	v, err := scanVariant(r.q.QueryRow(ctx, `SELECT `+variantColumns+` FROM product_variants v
		WHERE v.product_id = $1 AND v.size = $2 AND v.color = $3`, productID, size, color))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find variant: %w", err)
	}
	return v, nil
}

// UpdateVariant atualiza a variação.
func (r *ProductRepo) UpdateVariant(ctx context.Context, v *entity.Variant) error {
	_, err := r.q.Exec(ctx, `
		UPDATE product_variants SET size = $2, color = $3, sku = $4, price_adjustment = $5, stock = $6,
			is_active = $7, updated_at = $8
		WHERE id = $1`, v.ID, v.Size, v.Color, v.SKU, v.PriceAdjustment, v.Stock, v.IsActive, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update variant: %w", err)
	}
	return nil
}

// DeleteVariant remove a variação. Se já houver pedidos com ela, apenas inativa.
func (r *ProductRepo) DeleteVariant(ctx context.Context, id string) error {
	var used bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM order_items WHERE variant_id = $1)`, id).Scan(&used); err != nil {
		return fmt.Errorf("check variant usage: %w", err)
	}
	if used {
		if _, err := r.q.Exec(ctx, `UPDATE product_variants SET is_active = FALSE, updated_at = now() WHERE id = $1`, id); err != nil {
			return fmt.Errorf("deactivate variant: %w", err)
		}
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM product_variants WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	return nil
}

// CountActiveVariants conta as variações ativas do produto.
func (r *ProductRepo) CountActiveVariants(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product_variants WHERE product_id = $1 AND is_active`, productID).Scan(&n)
	if err != nil {
		if noRows(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count variants: %w", err)
	}
	return n, nil
}

// IsProductActive informa se o produto existe e está ativo.
func (r *ProductRepo) IsProductActive(ctx context.Context, productID string) (bool, error) {
	var active bool
	err := r.q.QueryRow(ctx, `SELECT is_active FROM products WHERE id::text = $1`, productID).Scan(&active)
	if err != nil {
		if noRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("product status: %w", err)
	}
	return active, nil
}

// AddPriceHistory registra uma alteração de preço.
func (r *ProductRepo) AddPriceHistory(ctx context.Context, h *entity.PriceHistory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO price_history (id, product_id, catalog_id, previous_price, new_price, reason, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		h.ID, h.ProductID, h.CatalogID, h.PreviousPrice, h.NewPrice, h.Reason, h.ChangedBy, h.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert price history: %w", err)
	}
	return nil
}

// ListPriceHistory histórico de preços do produto, mais recente primeiro.
func (r *ProductRepo) ListPriceHistory(ctx context.Context, productID string) ([]*entity.PriceHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, catalog_id, previous_price, new_price, reason, changed_by, changed_at
		FROM price_history WHERE product_id = $1 ORDER BY changed_at DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceHistory
	for rows.Next() {
		var h entity.PriceHistory
		if err := rows.Scan(&h.ID, &h.ProductID, &h.CatalogID, &h.PreviousPrice, &h.NewPrice, &h.Reason, &h.ChangedBy, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

func (r *ProductRepo) listVariants(ctx context.Context, productID string) ([]entity.Variant, error) {
	rows, err := r.q.Query(ctx, `SELECT `+variantColumns+` FROM product_variants v
		WHERE v.product_id = $1 ORDER BY v.size, v.color`, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	list := []entity.Variant{}
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, *v)
	}
	return list, rows.Err()
}
