package postgres

import (
	"context"
	"fmt"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)

// PaymentMethodRepo implementação de PaymentMethodRepository.
type PaymentMethodRepo struct {
	q Querier
}

// NewPaymentMethodRepository constrói o adaptador.
func NewPaymentMethodRepository(q Querier) *PaymentMethodRepo {
	return &PaymentMethodRepo{q: q}
}

const paymentMethodColumns = `id, organization_id, name, allows_installments, max_installments, is_active, created_at`

func scanPaymentMethod(row interface{ Scan(...any) error }) (*entity.PaymentMethod, error) {
	var p entity.PaymentMethod
	if err := row.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.AllowsInstallments, &p.MaxInstallments, &p.IsActive, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste a forma de pagamento.
func (r *PaymentMethodRepo) Create(ctx context.Context, p *entity.PaymentMethod) error {
	_, err := r.q.Exec(ctx, `INSERT INTO payment_methods (`+paymentMethodColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.OrganizationID, p.Name, p.AllowsInstallments, p.MaxInstallments, p.IsActive, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert payment method: %w", err)
	}
	return nil
}

// GetVisible obtém a forma de pagamento se for global ou da organização.
func (r *PaymentMethodRepo) GetVisible(ctx context.Context, organizationID, id string) (*entity.PaymentMethod, error) {
	p, err := scanPaymentMethod(r.q.QueryRow(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods
		WHERE id = $1 AND (organization_id IS NULL OR organization_id = $2)`, id, organizationID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return p, nil
}

// FindByName busca pelo nome entre as formas da organização.
func (r *PaymentMethodRepo) FindByName(ctx context.Context, organizationID, name string) (*entity.PaymentMethod, error) {
	p, err := scanPaymentMethod(r.q.QueryRow(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods
		WHERE organization_id = $1 AND lower(name) = lower($2)`, organizationID, name))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find payment method: %w", err)
	}
	return p, nil
}

// ListVisible lista as formas globais e da organização, globais primeiro.
func (r *PaymentMethodRepo) ListVisible(ctx context.Context, organizationID string, onlyActive bool) ([]*entity.PaymentMethod, error) {
	rows, err := r.q.Query(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods
		WHERE (organization_id IS NULL OR organization_id = $1) AND (NOT $2 OR is_active)
		ORDER BY organization_id NULLS FIRST, name`, organizationID, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentMethod
	for rows.Next() {
		p, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update atualiza uma forma de pagamento da organização (globais nunca são alteradas aqui).
func (r *PaymentMethodRepo) Update(ctx context.Context, p *entity.PaymentMethod) error {
	_, err := r.q.Exec(ctx, `
		UPDATE payment_methods SET name = $2, allows_installments = $3, max_installments = $4, is_active = $5
		WHERE id = $1 AND organization_id IS NOT NULL`,
		p.ID, p.Name, p.AllowsInstallments, p.MaxInstallments, p.IsActive)
	if err != nil {
		return fmt.Errorf("update payment method: %w", err)
	}
	return nil
}
