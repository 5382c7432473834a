package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/weslleycarlos/representacao-comercial/internal/application/audit"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// resetTTL validade do token de recuperação de senha.
const resetTTL = time.Hour

// ForgotPasswordMessage resposta genérica de recuperação, igual exista ou não o e-mail.
const ForgotPasswordMessage = "Se o e-mail estiver cadastrado, você receberá as instruções de recuperação."

// AuthUseCase login, seleção de empresa, sessão e fluxos de senha.
type AuthUseCase struct {
	repos       ports.Repos
	tx          ports.TxRunner
	hasher      ports.PasswordHasher
	tokens      ports.TokenCodec
	notifier    ports.Notifier
	frontendURL string
}

// NewAuthUseCase constrói o caso de uso de autenticação.
func NewAuthUseCase(repos ports.Repos, tx ports.TxRunner, hasher ports.PasswordHasher, tokens ports.TokenCodec, notifier ports.Notifier, frontendURL string) *AuthUseCase {
	return &AuthUseCase{
		repos:       repos,
		tx:          tx,
		hasher:      hasher,
		tokens:      tokens,
		notifier:    notifier,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Login confere e-mail e senha, atualiza o último acesso e emite um token sem empresa ativa.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, clientIP string) (*dto.SessionResponse, error) {
	user, err := uc.repos.Users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || uc.hasher.Compare(user.PasswordHash, in.Password) != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	var org *entity.Organization
	if user.OrganizationID != "" {
		org, err = uc.repos.Organizations.GetByID(ctx, user.OrganizationID)
		if err != nil {
			return nil, err
		}
		if org == nil || org.SubscriptionStatus != entity.SubscriptionActive {
			return nil, domain.ErrForbidden
		}
	}

	tc := tenant.Context{UserID: user.ID, OrganizationID: user.OrganizationID, Role: user.Role, ClientIP: clientIP}
	now := time.Now().UTC()
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Users.UpdateLastAccess(ctx, user.ID, now); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditLogin, "usuario", user.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	user.LastAccessAt = &now

	companies, err := uc.sessionCompanies(ctx, user)
	if err != nil {
		return nil, err
	}
	return uc.issue(tc, user, org, nil, companies)
}

// SelectCompany troca a empresa ativa do vendedor e reemite o token.
func (uc *AuthUseCase) SelectCompany(ctx context.Context, tc tenant.Context, companyID string) (*dto.SessionResponse, error) {
	if err := tc.RequireRole(entity.RoleVendedor); err != nil {
		return nil, err
	}
	user, org, err := uc.ResolveSession(ctx, tc)
	if err != nil {
		return nil, err
	}
	company, err := uc.repos.Companies.GetByID(ctx, tc.OrganizationID, companyID)
	if err != nil {
		return nil, err
	}
	if !company.Available() {
		return nil, domain.ErrForbidden
	}
	linked, err := uc.repos.Users.IsLinked(ctx, user.ID, company.ID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, domain.ErrForbidden
	}
	companies, err := uc.sessionCompanies(ctx, user)
	if err != nil {
		return nil, err
	}
	tc.ActiveCompanyID = company.ID
	return uc.issue(tc, user, org, company, companies)
}

// Me devolve a sessão atual sem emitir novo token.
func (uc *AuthUseCase) Me(ctx context.Context, tc tenant.Context) (*dto.SessionResponse, error) {
	user, org, err := uc.ResolveSession(ctx, tc)
	if err != nil {
		return nil, err
	}
	var active *entity.Company
	if tc.ActiveCompanyID != "" {
		active, err = uc.repos.Companies.GetByID(ctx, tc.OrganizationID, tc.ActiveCompanyID)
		if err != nil {
			return nil, err
		}
	}
	companies, err := uc.sessionCompanies(ctx, user)
	if err != nil {
		return nil, err
	}
	resp := &dto.SessionResponse{User: *toUserResponse(user), Companies: companies}
	if org != nil {
		resp.Organization = toOrganizationResponse(org)
	}
	if active.Available() {
		resp.ActiveCompany = toCompanySummary(active)
	}
	return resp, nil
}

// ResolveSession confirma que o usuário do token ainda existe, está ativo e mantém o perfil.
// Usado pelo middleware em toda requisição autenticada.
func (uc *AuthUseCase) ResolveSession(ctx context.Context, tc tenant.Context) (*entity.User, *entity.Organization, error) {
	user, err := uc.repos.Users.GetByID(ctx, tc.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil, domain.NotFound("usuário")
	}
	if user.Role != tc.Role || user.OrganizationID != tc.OrganizationID {
		return nil, nil, domain.ErrUnauthorized
	}
	if user.OrganizationID == "" {
		return user, nil, nil
	}
	org, err := uc.repos.Organizations.GetByID(ctx, user.OrganizationID)
	if err != nil {
		return nil, nil, err
	}
	if org == nil {
		return nil, nil, domain.NotFound("organização")
	}
	return user, org, nil
}

// ForgotPassword gera um token de 1h e enfileira o e-mail. E-mail desconhecido não é erro.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error {
	user, err := uc.repos.Users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return nil
	}
	now := time.Now().UTC()
	reset := &entity.PasswordReset{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(resetTTL),
		CreatedAt: now,
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.PasswordResets.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return r.PasswordResets.Create(ctx, reset)
	})
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/redefinir-senha?token=%s", uc.frontendURL, reset.Token)
	if err := uc.notifier.SendPasswordReset(ctx, user.Email, user.FullName, link); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("falha ao enfileirar e-mail de recuperação")
	}
	return nil
}

// ResetPassword troca a senha com um token válido e o consome.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	reset, err := uc.repos.PasswordResets.Get(ctx, in.Token)
	if err != nil {
		return err
	}
	if reset == nil || reset.Expired(time.Now().UTC()) {
		return domain.NewValidationError("token", "token inválido ou expirado")
	}
	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	tc := tenant.Context{UserID: reset.UserID}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		user, err := r.Users.GetByID(ctx, reset.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NewValidationError("token", "token inválido ou expirado")
		}
		if err := r.Users.UpdatePassword(ctx, user.ID, hash); err != nil {
			return err
		}
		if err := r.PasswordResets.Delete(ctx, reset.Token); err != nil {
			return err
		}
		tc.OrganizationID = user.OrganizationID
		var d audit.Diff
		d.Set("senha", "redefinida")
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "usuario", user.ID, d)
	})
}

// ChangePassword troca a senha do usuário autenticado conferindo a atual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, tc tenant.Context, in dto.ChangePasswordRequest) error {
	user, err := uc.repos.Users.GetByID(ctx, tc.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NotFound("usuário")
	}
	if uc.hasher.Compare(user.PasswordHash, in.CurrentPassword) != nil {
		return domain.NewValidationError("current_password", "senha atual incorreta")
	}
	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Users.UpdatePassword(ctx, user.ID, hash); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("senha", "alterada")
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "usuario", user.ID, d)
	})
}

// sessionCompanies empresas disponíveis na sessão: vinculadas (vendedor) ou da organização (gestor).
func (uc *AuthUseCase) sessionCompanies(ctx context.Context, user *entity.User) ([]dto.CompanySummary, error) {
	var (
		list []*entity.Company
		err  error
	)
	switch user.Role {
	case entity.RoleVendedor:
		list, err = uc.repos.Companies.ListLinkedToUser(ctx, user.ID)
	case entity.RoleGestor:
		list, err = uc.repos.Companies.ListByOrganization(ctx, user.OrganizationID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanySummary, 0, len(list))
	for _, c := range list {
		if c.Available() {
			out = append(out, *toCompanySummary(c))
		}
	}
	return out, nil
}

func (uc *AuthUseCase) issue(tc tenant.Context, user *entity.User, org *entity.Organization, active *entity.Company, companies []dto.CompanySummary) (*dto.SessionResponse, error) {
	token, exp, err := uc.tokens.Issue(tc)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	resp := &dto.SessionResponse{
		Token:     token,
		TokenType: "bearer",
		ExpiresAt: &exp,
		User:      *toUserResponse(user),
		Companies: companies,
	}
	if org != nil {
		resp.Organization = toOrganizationResponse(org)
	}
	if active != nil {
		resp.ActiveCompany = toCompanySummary(active)
	}
	return resp, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
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

func toCompanySummary(c *entity.Company) *dto.CompanySummary {
	return &dto.CompanySummary{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Active: c.IsActive}
}
