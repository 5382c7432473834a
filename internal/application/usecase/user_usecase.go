package usecase

import (
	"context"
	"errors"
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

// SellerUseCase gestão de vendedores e de seus vínculos com empresas.
type SellerUseCase struct {
	repos  ports.Repos
	tx     ports.TxRunner
	hasher ports.PasswordHasher
}

// NewSellerUseCase constrói o caso de uso.
func NewSellerUseCase(repos ports.Repos, tx ports.TxRunner, hasher ports.PasswordHasher) *SellerUseCase {
	return &SellerUseCase{repos: repos, tx: tx, hasher: hasher}
}

// Create cadastra um vendedor na organização do gestor. E-mail é único no sistema.
func (uc *SellerUseCase) Create(ctx context.Context, tc tenant.Context, in dto.CreateSellerRequest) (*dto.SellerResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	existing, err := uc.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("e-mail já está em uso: %w", domain.ErrDuplicate)
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash: %w", err)
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: tc.OrganizationID,
		Email:          email,
		PasswordHash:   hash,
		FullName:       strings.TrimSpace(in.FullName),
		Phone:          in.Phone,
		Role:           entity.RoleVendedor,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Users.Create(ctx, u); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("nome", u.FullName)
		d.Set("email", u.Email)
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "vendedor", u.ID, d)
	})
	if err != nil {
		return nil, err
	}
	return &dto.SellerResponse{UserResponse: toUserResponse(u), Companies: []dto.CompanySummary{}}, nil
}

// List vendedores da organização com as empresas vinculadas.
func (uc *SellerUseCase) List(ctx context.Context, tc tenant.Context) ([]dto.SellerResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	users, err := uc.repos.Users.ListByOrganization(ctx, tc.OrganizationID, entity.RoleVendedor)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SellerResponse, 0, len(users))
	for _, u := range users {
		resp, err := uc.withCompanies(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Get vendedor da organização.
func (uc *SellerUseCase) Get(ctx context.Context, tc tenant.Context, id string) (*dto.SellerResponse, error) {
	u, err := uc.seller(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	return uc.withCompanies(ctx, u)
}

// Update alteração parcial; Password redefine a senha.
func (uc *SellerUseCase) Update(ctx context.Context, tc tenant.Context, id string, in dto.UpdateSellerRequest) (*dto.SellerResponse, error) {
	u, err := uc.seller(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	var d audit.Diff
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != u.Email {
			other, err := uc.repos.Users.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != u.ID {
				return nil, fmt.Errorf("e-mail já está em uso: %w", domain.ErrDuplicate)
			}
		}
		d.Add("email", u.Email, email)
		u.Email = email
	}
	if in.FullName != nil {
		d.Add("nome", u.FullName, strings.TrimSpace(*in.FullName))
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		d.Add("telefone", u.Phone, *in.Phone)
		u.Phone = *in.Phone
	}
	if in.IsActive != nil {
		d.Add("ativo", u.IsActive, *in.IsActive)
		u.IsActive = *in.IsActive
	}
	var hash string
	if in.Password != nil {
		if hash, err = uc.hasher.Hash(*in.Password); err != nil {
			return nil, fmt.Errorf("hash: %w", err)
		}
		d.Set("senha", "redefinida")
	}
	u.UpdatedAt = time.Now().UTC()

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Users.Update(ctx, u); err != nil {
			return err
		}
		if hash != "" {
			if err := r.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
				return err
			}
		}
		if d.Empty() {
			return nil
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "vendedor", u.ID, d)
	})
	if err != nil {
		return nil, err
	}
	return uc.withCompanies(ctx, u)
}

// Delete desativa o vendedor; pedidos e comissões antigos continuam apontando para ele.
func (uc *SellerUseCase) Delete(ctx context.Context, tc tenant.Context, id string) error {
	u, err := uc.seller(ctx, tc, id)
	if err != nil {
		return err
	}
	if !u.IsActive {
		return nil
	}
	u.IsActive = false
	u.UpdatedAt = time.Now().UTC()
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Users.Update(ctx, u); err != nil {
			return err
		}
		var d audit.Diff
		d.Add("ativo", true, false)
		return audit.Record(ctx, r.Audit, tc, entity.AuditDelete, "vendedor", u.ID, d)
	})
}

// LinkCompany autoriza o vendedor a vender pela empresa. Vínculo repetido: ErrDuplicate.
func (uc *SellerUseCase) LinkCompany(ctx context.Context, tc tenant.Context, sellerID string, in dto.LinkCompanyRequest) (*dto.SellerResponse, error) {
	u, err := uc.seller(ctx, tc, sellerID)
	if err != nil {
		return nil, err
	}
	company, err := uc.repos.Companies.GetByID(ctx, tc.OrganizationID, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.DeletedAt != nil {
		return nil, domain.NotFound("empresa")
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		link := &entity.UserCompany{UserID: u.ID, CompanyID: company.ID, LinkedAt: time.Now().UTC()}
		if err := r.Users.LinkCompany(ctx, link); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("vendedor já vinculado à empresa: %w", domain.ErrDuplicate)
			}
			return err
		}
		var d audit.Diff
		d.Set("empresa", company.ID)
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "vinculo_vendedor_empresa", u.ID, d)
	})
	if err != nil {
		return nil, err
	}
	return uc.withCompanies(ctx, u)
}

// UnlinkCompany remove o vínculo. Vínculo inexistente: NotFound.
func (uc *SellerUseCase) UnlinkCompany(ctx context.Context, tc tenant.Context, sellerID, companyID string) error {
	u, err := uc.seller(ctx, tc, sellerID)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		removed, err := r.Users.UnlinkCompany(ctx, u.ID, companyID)
		if err != nil {
			return err
		}
		if !removed {
			return domain.NotFound("vínculo")
		}
		var d audit.Diff
		d.Set("empresa", companyID)
		return audit.Record(ctx, r.Audit, tc, entity.AuditDelete, "vinculo_vendedor_empresa", u.ID, d)
	})
}

// seller carrega um vendedor da organização do gestor; outro perfil ou outra organização é NotFound.
func (uc *SellerUseCase) seller(ctx context.Context, tc tenant.Context, id string) (*entity.User, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	u, err := uc.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Role != entity.RoleVendedor || u.OrganizationID != tc.OrganizationID {
		return nil, domain.NotFound("vendedor")
	}
	return u, nil
}

func (uc *SellerUseCase) withCompanies(ctx context.Context, u *entity.User) (*dto.SellerResponse, error) {
	companies, err := uc.repos.Companies.ListLinkedToUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.SellerResponse{UserResponse: toUserResponse(u), Companies: make([]dto.CompanySummary, len(companies))}
	for i, c := range companies {
		resp.Companies[i] = dto.CompanySummary{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Active: c.IsActive}
	}
	return resp, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		FullName:       u.FullName,
		Phone:          u.Phone,
		Role:           u.Role,
		IsActive:       u.IsActive,
		LastAccessAt:   u.LastAccessAt,
		CreatedAt:      u.CreatedAt,
	}
}
