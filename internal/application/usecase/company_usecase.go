package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weslleycarlos/representacao-comercial/internal/application/audit"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/pricing"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// CompanyUseCase aplica as regras de negócio das empresas representadas.
type CompanyUseCase struct {
	repos ports.Repos
	tx    ports.TxRunner
}

// NewCompanyUseCase constrói o caso de uso com as portas de persistência.
func NewCompanyUseCase(repos ports.Repos, tx ports.TxRunner) *CompanyUseCase {
	return &CompanyUseCase{repos: repos, tx: tx}
}

// Create cadastra uma empresa. CNPJ já usado na organização: ErrDuplicate.
func (uc *CompanyUseCase) Create(ctx context.Context, tc tenant.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	taxID, err := cnpj("tax_id", in.TaxID)
	if err != nil {
		return nil, err
	}
	if err := pricing.ValidatePercent("default_commission_percent", in.DefaultCommissionPercent); err != nil {
		return nil, err
	}
	existing, err := uc.repos.Companies.GetByTaxID(ctx, tc.OrganizationID, taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("CNPJ %s já cadastrado nesta organização: %w", taxID, domain.ErrDuplicate)
	}
	now := time.Now().UTC()
	company := &entity.Company{
		ID:                       uuid.New().String(),
		OrganizationID:           tc.OrganizationID,
		Name:                     strings.TrimSpace(in.Name),
		TaxID:                    taxID,
		StateRegistration:        in.StateRegistration,
		ContactEmail:             normalizeEmail(in.ContactEmail),
		ContactPhone:             in.ContactPhone,
		Website:                  in.Website,
		DefaultCommissionPercent: in.DefaultCommissionPercent,
		IsActive:                 true,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Companies.Create(ctx, company); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("nome", company.Name)
		d.Set("cnpj", company.TaxID)
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "empresa", company.ID, d)
	})
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Get empresa da organização.
func (uc *CompanyUseCase) Get(ctx context.Context, tc tenant.Context, id string) (*dto.CompanyResponse, error) {
	c, err := uc.company(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(c), nil
}

// List empresas não excluídas da organização.
func (uc *CompanyUseCase) List(ctx context.Context, tc tenant.Context) ([]dto.CompanyResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	list, err := uc.repos.Companies.ListByOrganization(ctx, tc.OrganizationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, len(list))
	for i, c := range list {
		out[i] = *toCompanyResponse(c)
	}
	return out, nil
}

// Update alteração parcial.
func (uc *CompanyUseCase) Update(ctx context.Context, tc tenant.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	c, err := uc.company(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	var d audit.Diff
	if in.TaxID != nil {
		taxID, err := cnpj("tax_id", *in.TaxID)
		if err != nil {
			return nil, err
		}
		if taxID != c.TaxID {
			other, err := uc.repos.Companies.GetByTaxID(ctx, tc.OrganizationID, taxID)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, fmt.Errorf("CNPJ %s já cadastrado nesta organização: %w", taxID, domain.ErrDuplicate)
			}
		}
		d.Add("cnpj", c.TaxID, taxID)
		c.TaxID = taxID
	}
	if in.Name != nil {
		d.Add("nome", c.Name, strings.TrimSpace(*in.Name))
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.StateRegistration != nil {
		c.StateRegistration = *in.StateRegistration
	}
	if in.ContactEmail != nil {
		c.ContactEmail = normalizeEmail(*in.ContactEmail)
	}
	if in.ContactPhone != nil {
		c.ContactPhone = *in.ContactPhone
	}
	if in.Website != nil {
		c.Website = *in.Website
	}
	if in.DefaultCommissionPercent != nil {
		if err := pricing.ValidatePercent("default_commission_percent", *in.DefaultCommissionPercent); err != nil {
			return nil, err
		}
		d.Add("comissao_padrao", c.DefaultCommissionPercent, *in.DefaultCommissionPercent)
		c.DefaultCommissionPercent = *in.DefaultCommissionPercent
	}
	if in.IsActive != nil {
		d.Add("ativo", c.IsActive, *in.IsActive)
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now().UTC()

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Companies.Update(ctx, c); err != nil {
			return err
		}
		if d.Empty() {
			return nil
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "empresa", c.ID, d)
	})
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(c), nil
}

// Delete exclusão lógica: marca deleted_at e desativa. Pedidos antigos continuam válidos.
func (uc *CompanyUseCase) Delete(ctx context.Context, tc tenant.Context, id string) error {
	c, err := uc.company(ctx, tc, id)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Companies.SoftDelete(ctx, tc.OrganizationID, c.ID, time.Now().UTC()); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("nome", c.Name)
		return audit.Record(ctx, r.Audit, tc, entity.AuditDelete, "empresa", c.ID, d)
	})
}

func (uc *CompanyUseCase) company(ctx context.Context, tc tenant.Context, id string) (*entity.Company, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	c, err := uc.repos.Companies.GetByID(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("empresa")
	}
	return c, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:                       c.ID,
		OrganizationID:           c.OrganizationID,
		Name:                     c.Name,
		TaxID:                    c.TaxID,
		StateRegistration:        c.StateRegistration,
		ContactEmail:             c.ContactEmail,
		ContactPhone:             c.ContactPhone,
		Website:                  c.Website,
		DefaultCommissionPercent: c.DefaultCommissionPercent,
		IsActive:                 c.IsActive,
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}
