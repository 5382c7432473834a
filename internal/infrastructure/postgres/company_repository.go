package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementação de CompanyRepository. Empresas excluídas (deleted_at) não são lidas.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `c.id, c.organization_id, c.name, c.tax_id, c.state_registration, c.contact_email,
	c.contact_phone, c.website, c.default_commission_percent, c.is_active, c.deleted_at, c.created_at, c.updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.TaxID, &c.StateRegistration, &c.ContactEmail,
		&c.ContactPhone, &c.Website, &c.DefaultCommissionPercent, &c.IsActive, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepo) queryList(ctx context.Context, op, query string, args ...any) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Create persiste uma empresa. CNPJ repetido na organização: ErrDuplicate.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, organization_id, name, tax_id, state_registration, contact_email,
			contact_phone, website, default_commission_percent, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.OrganizationID, c.Name, c.TaxID, c.StateRegistration, c.ContactEmail,
		c.ContactPhone, c.Website, c.DefaultCommissionPercent, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtém a empresa da organização. Empresa de outro tenant: nil.
func (r *CompanyRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies c
		WHERE c.id = $1 AND c.organization_id = $2 AND c.deleted_at IS NULL`
	c, err := scanCompany(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByTaxID obtém a empresa pelo CNPJ dentro da organização.
func (r *CompanyRepo) GetByTaxID(ctx context.Context, organizationID, taxID string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies c
		WHERE c.organization_id = $1 AND c.tax_id = $2 AND c.deleted_at IS NULL`
	c, err := scanCompany(r.q.QueryRow(ctx, query, organizationID, taxID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by tax_id: %w", err)
	}
	return c, nil
}

// Update atualiza a empresa.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET name = $3, tax_id = $4, state_registration = $5, contact_email = $6,
			contact_phone = $7, website = $8, default_commission_percent = $9, is_active = $10, updated_at = $11
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.OrganizationID, c.Name, c.TaxID, c.StateRegistration, c.ContactEmail,
		c.ContactPhone, c.Website, c.DefaultCommissionPercent, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// ListByOrganization lista as empresas não excluídas da organização.
func (r *CompanyRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Company, error) {
	return r.queryList(ctx, "list companies", `SELECT `+companyColumns+` FROM companies c
		WHERE c.organization_id = $1 AND c.deleted_at IS NULL ORDER BY c.name`, organizationID)
}

// SoftDelete marca deleted_at e inativa a empresa.
func (r *CompanyRepo) SoftDelete(ctx context.Context, organizationID, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE companies SET deleted_at = $3, is_active = FALSE, updated_at = $3
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL`, id, organizationID, at)
	if err != nil {
		return fmt.Errorf("soft delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("empresa")
	}
	return nil
}

// ListLinkedToUser lista as empresas ativas vinculadas ao usuário.
func (r *CompanyRepo) ListLinkedToUser(ctx context.Context, userID string) ([]*entity.Company, error) {
	return r.queryList(ctx, "list linked companies", `SELECT `+companyColumns+` FROM companies c
		JOIN user_companies uc ON uc.company_id = c.id
		WHERE uc.user_id = $1 AND c.is_active AND c.deleted_at IS NULL ORDER BY c.name`, userID)
}
