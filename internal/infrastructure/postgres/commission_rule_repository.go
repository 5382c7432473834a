package postgres

import (
	"context"
	"fmt"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.CommissionRuleRepository = (*CommissionRuleRepo)(nil)

// CommissionRuleRepo implementação de CommissionRuleRepository.
type CommissionRuleRepo struct {
	q Querier
}

// NewCommissionRuleRepository constrói o adaptador.
func NewCommissionRuleRepository(q Querier) *CommissionRuleRepo {
	return &CommissionRuleRepo{q: q}
}

const commissionRuleColumns = `id, organization_id, company_id, seller_id, percent, priority, valid_from, valid_to,
	is_active, created_at, updated_at`

func scanCommissionRule(row interface{ Scan(...any) error }) (*entity.CommissionRule, error) {
	var c entity.CommissionRule
	err := row.Scan(&c.ID, &c.OrganizationID, &c.CompanyID, &c.SellerID, &c.Percent, &c.Priority, &c.ValidFrom, &c.ValidTo,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommissionRuleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.CommissionRule, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list commission rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.CommissionRule
	for rows.Next() {
		c, err := scanCommissionRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan commission rule: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Create persiste a regra.
func (r *CommissionRuleRepo) Create(ctx context.Context, c *entity.CommissionRule) error {
	_, err := r.q.Exec(ctx, `INSERT INTO commission_rules (`+commissionRuleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.OrganizationID, c.CompanyID, c.SellerID, c.Percent, c.Priority, dateOnly(c.ValidFrom), dateOnly(c.ValidTo),
		c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert commission rule: %w", err)
	}
	return nil
}

// GetByID obtém a regra da organização.
func (r *CommissionRuleRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.CommissionRule, error) {
	c, err := scanCommissionRule(r.q.QueryRow(ctx, `SELECT `+commissionRuleColumns+` FROM commission_rules
		WHERE id = $1 AND organization_id = $2`, id, organizationID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission rule: %w", err)
	}
	return c, nil
}

// Update atualiza a regra.
func (r *CommissionRuleRepo) Update(ctx context.Context, c *entity.CommissionRule) error {
	_, err := r.q.Exec(ctx, `
		UPDATE commission_rules SET company_id = $3, seller_id = $4, percent = $5, priority = $6,
			valid_from = $7, valid_to = $8, is_active = $9, updated_at = $10
		WHERE id = $1 AND organization_id = $2`,
		c.ID, c.OrganizationID, c.CompanyID, c.SellerID, c.Percent, c.Priority, dateOnly(c.ValidFrom), dateOnly(c.ValidTo),
		c.IsActive, c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("update commission rule: %w", err)
	}
	return nil
}

// Delete remove a regra. Snapshots de comissão já gravados mantêm o percentual (rule_id vira NULL).
func (r *CommissionRuleRepo) Delete(ctx context.Context, organizationID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM commission_rules WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete commission rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("regra de comissão")
	}
	return nil
}

// ListByOrganization lista as regras da organização.
func (r *CommissionRuleRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.CommissionRule, error) {
	return r.list(ctx, `SELECT `+commissionRuleColumns+` FROM commission_rules
		WHERE organization_id = $1 ORDER BY priority DESC, created_at`, organizationID)
}

// ListCandidates regras ativas cujo escopo casa com (empresa, vendedor).
func (r *CommissionRuleRepo) ListCandidates(ctx context.Context, organizationID, companyID, sellerID string) ([]*entity.CommissionRule, error) {
	return r.list(ctx, `SELECT `+commissionRuleColumns+` FROM commission_rules
		WHERE organization_id = $1 AND is_active
			AND (company_id IS NULL OR company_id = $2)
			AND (seller_id IS NULL OR seller_id = $3)`, organizationID, companyID, sellerID)
}
