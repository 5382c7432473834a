package postgres

import (
	"context"
	"fmt"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementação de OrganizationRepository (pool ou tx).
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository constrói o adaptador.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

const organizationColumns = `id, name, tax_id, contact_email, contact_phone, subscription_status, plan,
	user_limit, company_limit, created_at, updated_at`

func scanOrganization(row interface{ Scan(...any) error }) (*entity.Organization, error) {
	var o entity.Organization
	err := row.Scan(&o.ID, &o.Name, &o.TaxID, &o.ContactEmail, &o.ContactPhone, &o.SubscriptionStatus, &o.Plan,
		&o.UserLimit, &o.CompanyLimit, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste uma organização. CNPJ repetido: ErrDuplicate.
func (r *OrganizationRepo) Create(ctx context.Context, o *entity.Organization) error {
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Name, o.TaxID, o.ContactEmail, o.ContactPhone, o.SubscriptionStatus, o.Plan,
		o.UserLimit, o.CompanyLimit, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtém uma organização por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	o, err := scanOrganization(r.q.QueryRow(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return o, nil
}

// GetByTaxID obtém uma organização pelo CNPJ.
func (r *OrganizationRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Organization, error) {
	o, err := scanOrganization(r.q.QueryRow(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE tax_id = $1`, taxID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization by tax_id: %w", err)
	}
	return o, nil
}

// Update atualiza dados, plano e status.
func (r *OrganizationRepo) Update(ctx context.Context, o *entity.Organization) error {
	query := `
		UPDATE organizations SET name = $2, tax_id = $3, contact_email = $4, contact_phone = $5,
			subscription_status = $6, plan = $7, user_limit = $8, company_limit = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Name, o.TaxID, o.ContactEmail, o.ContactPhone, o.SubscriptionStatus, o.Plan,
		o.UserLimit, o.CompanyLimit, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update organization: %w", err)
	}
	return nil
}

// List lista organizações por nome com paginação.
func (r *OrganizationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Organization, error) {
	rows, err := r.q.Query(ctx, `SELECT `+organizationColumns+` FROM organizations ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
