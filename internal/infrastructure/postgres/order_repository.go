package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementação de OrderRepository (pool ou tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository constrói o adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, organization_id, company_id, seller_id, customer_id, catalog_id, delivery_address_id,
	billing_address_id, payment_method_id, number, discount_percent, subtotal, total, status, notes, version,
	created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }, extra ...any) (*entity.Order, error) {
	var o entity.Order
	dest := []any{&o.ID, &o.OrganizationID, &o.CompanyID, &o.SellerID, &o.CustomerID, &o.CatalogID, &o.DeliveryAddressID,
		&o.BillingAddressID, &o.PaymentMethodID, &o.Number, &o.DiscountPercent, &o.Subtotal, &o.Total, &o.Status, &o.Notes,
		&o.Version, &o.CreatedAt, &o.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste o pedido e seus itens. Referência inexistente: ErrInvalidReference.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		o.ID, o.OrganizationID, o.CompanyID, o.SellerID, o.CustomerID, o.CatalogID, o.DeliveryAddressID,
		o.BillingAddressID, o.PaymentMethodID, o.Number, o.DiscountPercent, o.Subtotal, o.Total, o.Status, o.Notes,
		o.Version, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, variant_id, quantity, unit_price, discount_percent, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, it.OrderID, it.ProductID, it.VariantID, it.Quantity, it.UnitPrice, it.DiscountPercent, it.LineTotal)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidReference
			}
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtém o pedido da organização com os itens.
func (r *OrderRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 AND organization_id = $2`, id, organizationID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o.Items, err = r.listItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// List lista pedidos (mais recentes primeiro) e o total sem paginação. Itens não são carregados.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	var args []any
	where := ` WHERE 1 = 1`
	add := func(cond string, v any) {
		args = append(args, v)
		where += fmt.Sprintf(cond, len(args))
	}
	if f.OrganizationID != "" {
		add(` AND organization_id = $%d`, f.OrganizationID)
	}
	if f.SellerID != "" {
		add(` AND seller_id = $%d`, f.SellerID)
	}
	if f.CompanyID != "" {
		add(` AND company_id = $%d`, f.CompanyID)
	}
	if f.CustomerID != "" {
		add(` AND customer_id = $%d`, f.CustomerID)
	}
	if f.Status != "" {
		add(` AND status = $%d`, f.Status)
	}
	if f.From != nil {
		add(` AND created_at >= $%d`, *f.From)
	}
	if f.To != nil {
		add(` AND created_at < $%d`, *f.To)
	}
	query := `SELECT ` + orderColumns + `, COUNT(*) OVER () FROM orders` + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Order
		total int
	)
	for rows.Next() {
		o, err := scanOrder(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// UpdatePricing regrava desconto, totais e observações com checagem de versão.
func (r *OrderRepo) UpdatePricing(ctx context.Context, o *entity.Order, expectedVersion int) error {
	var version int
	err := r.q.QueryRow(ctx, `
		UPDATE orders SET discount_percent = $2, subtotal = $3, total = $4, notes = $5, version = version + 1, updated_at = $6
		WHERE id = $1 AND version = $7 AND status = 'pendente'
		RETURNING version`,
		o.ID, o.DiscountPercent, o.Subtotal, o.Total, o.Notes, o.UpdatedAt, expectedVersion).Scan(&version)
	if err != nil {
		if noRows(err) {
			return fmt.Errorf("pedido alterado por outra requisição: %w", domain.ErrConflict)
		}
		return fmt.Errorf("update order pricing: %w", err)
	}
	o.Version = version
	return nil
}

// UpdateStatus troca o status com checagem de versão.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID, status string, expectedVersion int, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $2, version = version + 1, updated_at = $3
		WHERE id = $1 AND version = $4`, orderID, status, at, expectedVersion)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pedido alterado por outra requisição: %w", domain.ErrConflict)
	}
	return nil
}

// NextNumber reserva o próximo número sequencial de pedido da empresa (000001, 000002...).
func (r *OrderRepo) NextNumber(ctx context.Context, companyID string) (string, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO order_counters (company_id, last_number) VALUES ($1, 1)
		ON CONFLICT (company_id) DO UPDATE SET last_number = order_counters.last_number + 1
		RETURNING last_number`, companyID).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next order number: %w", err)
	}
	return fmt.Sprintf("%06d", n), nil
}

// AddStatusHistory acrescenta uma linha ao histórico de status.
func (r *OrderRepo) AddStatusHistory(ctx context.Context, h *entity.OrderStatusHistory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_status_history (id, order_id, from_status, to_status, note, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, h.OrderID, h.FromStatus, h.ToStatus, h.Note, h.ChangedBy, h.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert status history: %w", err)
	}
	return nil
}

// ListStatusHistory histórico em ordem cronológica.
func (r *OrderRepo) ListStatusHistory(ctx context.Context, orderID string) ([]*entity.OrderStatusHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, from_status, to_status, note, changed_by, changed_at
		FROM order_status_history WHERE order_id = $1 ORDER BY changed_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderStatusHistory
	for rows.Next() {
		var h entity.OrderStatusHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.FromStatus, &h.ToStatus, &h.Note, &h.ChangedBy, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan status history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// SaveCommission grava o snapshot de comissão por (pedido, vendedor); regrava percentual e valor se já existir.
func (r *OrderRepo) SaveCommission(ctx context.Context, c *entity.OrderCommission) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_commissions (id, order_id, seller_id, rule_id, percent, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (order_id, seller_id) DO UPDATE SET amount = EXCLUDED.amount`,
		c.ID, c.OrderID, c.SellerID, c.RuleID, c.Percent, c.Amount, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("save commission: %w", err)
	}
	return nil
}

// GetCommission obtém o snapshot de comissão do pedido.
func (r *OrderRepo) GetCommission(ctx context.Context, orderID string) (*entity.OrderCommission, error) {
	var c entity.OrderCommission
	err := r.q.QueryRow(ctx, `
		SELECT id, order_id, seller_id, rule_id, percent, amount, created_at
		FROM order_commissions WHERE order_id = $1`, orderID).
		Scan(&c.ID, &c.OrderID, &c.SellerID, &c.RuleID, &c.Percent, &c.Amount, &c.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission: %w", err)
	}
	return &c, nil
}

func (r *OrderRepo) listItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, variant_id, quantity, unit_price, discount_percent, line_total
		FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	list := []entity.OrderItem{}
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.Quantity, &it.UnitPrice, &it.DiscountPercent, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
