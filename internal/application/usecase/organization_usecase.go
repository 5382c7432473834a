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
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// Valores padrão de plano e limites de uma organização nova.
const (
	defaultPlan         = "basico"
	defaultUserLimit    = 10
	defaultCompanyLimit = 5
)

// OrganizationUseCase gestão de organizações (tenants) pelo super admin.
type OrganizationUseCase struct {
	repos  ports.Repos
	tx     ports.TxRunner
	hasher ports.PasswordHasher
}

// NewOrganizationUseCase constrói o caso de uso.
func NewOrganizationUseCase(repos ports.Repos, tx ports.TxRunner, hasher ports.PasswordHasher) *OrganizationUseCase {
	return &OrganizationUseCase{repos: repos, tx: tx, hasher: hasher}
}

// Create cria a organização e seu primeiro gestor na mesma transação.
// CNPJ da organização e e-mail do gestor são únicos no sistema (ErrDuplicate).
func (uc *OrganizationUseCase) Create(ctx context.Context, tc tenant.Context, in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if err := tc.RequireRole(entity.RoleSuperAdmin); err != nil {
		return nil, err
	}
	taxID, err := cnpj("tax_id", in.TaxID)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Manager.Email)
	if u, err := uc.repos.Users.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if u != nil {
		return nil, fmt.Errorf("e-mail do gestor já está em uso: %w", domain.ErrDuplicate)
	}
	if o, err := uc.repos.Organizations.GetByTaxID(ctx, taxID); err != nil {
		return nil, err
	} else if o != nil {
		return nil, fmt.Errorf("CNPJ da organização já está em uso: %w", domain.ErrDuplicate)
	}
	hash, err := uc.hasher.Hash(in.Manager.Password)
	if err != nil {
		return nil, fmt.Errorf("hash: %w", err)
	}

	now := time.Now().UTC()
	org := &entity.Organization{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(in.Name),
		TaxID:              taxID,
		ContactEmail:       normalizeEmail(in.ContactEmail),
		ContactPhone:       in.ContactPhone,
		SubscriptionStatus: entity.SubscriptionActive,
		Plan:               orDefault(in.Plan, defaultPlan),
		UserLimit:          intOr(in.UserLimit, defaultUserLimit),
		CompanyLimit:       intOr(in.CompanyLimit, defaultCompanyLimit),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	manager := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Email:          email,
		PasswordHash:   hash,
		FullName:       strings.TrimSpace(in.Manager.FullName),
		Phone:          in.Manager.Phone,
		Role:           entity.RoleGestor,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Organizations.Create(ctx, org); err != nil {
			return err
		}
		if err := r.Users.Create(ctx, manager); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("nome", org.Name)
		d.Set("cnpj", org.TaxID)
		d.Set("gestor", manager.Email)
		return r.Audit.Create(ctx, audit.New(tc, org.ID, entity.AuditCreate, "organizacao", org.ID, d))
	})
	if err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// List organizações por nome (skip/limit).
func (uc *OrganizationUseCase) List(ctx context.Context, tc tenant.Context, in dto.PageRequest) (*dto.OrganizationListResponse, error) {
	if err := tc.RequireRole(entity.RoleSuperAdmin); err != nil {
		return nil, err
	}
	in.DefaultPage(100, maxPage)
	list, err := uc.repos.Organizations.List(ctx, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.OrganizationListResponse{
		Items: make([]dto.OrganizationResponse, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for i, o := range list {
		resp.Items[i] = *toOrganizationResponse(o)
	}
	return resp, nil
}

// Get organização por ID.
func (uc *OrganizationUseCase) Get(ctx context.Context, tc tenant.Context, id string) (*dto.OrganizationResponse, error) {
	o, err := uc.organization(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	return toOrganizationResponse(o), nil
}

// Update altera plano, status, limites, contato ou CNPJ.
func (uc *OrganizationUseCase) Update(ctx context.Context, tc tenant.Context, id string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	o, err := uc.organization(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	var d audit.Diff
	if in.TaxID != nil {
		taxID, err := cnpj("tax_id", *in.TaxID)
		if err != nil {
			return nil, err
		}
		if taxID != o.TaxID {
			other, err := uc.repos.Organizations.GetByTaxID(ctx, taxID)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, fmt.Errorf("CNPJ já está em uso por outra organização: %w", domain.ErrDuplicate)
			}
		}
		d.Add("cnpj", o.TaxID, taxID)
		o.TaxID = taxID
	}
	if in.Name != nil {
		d.Add("nome", o.Name, strings.TrimSpace(*in.Name))
		o.Name = strings.TrimSpace(*in.Name)
	}
	if in.ContactEmail != nil {
		o.ContactEmail = normalizeEmail(*in.ContactEmail)
	}
	if in.ContactPhone != nil {
		o.ContactPhone = *in.ContactPhone
	}
	if in.SubscriptionStatus != nil {
		switch *in.SubscriptionStatus {
		case entity.SubscriptionActive, entity.SubscriptionSuspended, entity.SubscriptionCancelled:
		default:
			return nil, domain.NewValidationError("subscription_status", "status de assinatura inválido")
		}
		d.Add("status", o.SubscriptionStatus, *in.SubscriptionStatus)
		o.SubscriptionStatus = *in.SubscriptionStatus
	}
	if in.Plan != nil {
		d.Add("plano", o.Plan, *in.Plan)
		o.Plan = *in.Plan
	}
	if in.UserLimit != nil {
		d.Add("limite_usuarios", o.UserLimit, *in.UserLimit)
		o.UserLimit = *in.UserLimit
	}
	if in.CompanyLimit != nil {
		d.Add("limite_empresas", o.CompanyLimit, *in.CompanyLimit)
		o.CompanyLimit = *in.CompanyLimit
	}
	o.UpdatedAt = time.Now().UTC()

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Organizations.Update(ctx, o); err != nil {
			return err
		}
		if d.Empty() {
			return nil
		}
		return r.Audit.Create(ctx, audit.New(tc, o.ID, entity.AuditUpdate, "organizacao", o.ID, d))
	})
	if err != nil {
		return nil, err
	}
	return toOrganizationResponse(o), nil
}

func (uc *OrganizationUseCase) organization(ctx context.Context, tc tenant.Context, id string) (*entity.Organization, error) {
	if err := tc.RequireRole(entity.RoleSuperAdmin); err != nil {
		return nil, err
	}
	o, err := uc.repos.Organizations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("organização")
	}
	return o, nil
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	return &dto.OrganizationResponse{
		ID:                 o.ID,
		Name:               o.Name,
		TaxID:              o.TaxID,
		ContactEmail:       o.ContactEmail,
		ContactPhone:       o.ContactPhone,
		SubscriptionStatus: o.SubscriptionStatus,
		Plan:               o.Plan,
		UserLimit:          o.UserLimit,
		CompanyLimit:       o.CompanyLimit,
		CreatedAt:          o.CreatedAt,
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

func intOr(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
