package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/apptest"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

func newUseCase(s *apptest.Store) (*AuthUseCase, *apptest.Tokens, *apptest.Notifier) {
	tokens := apptest.NewTokens()
	notifier := &apptest.Notifier{}
	uc := NewAuthUseCase(s.Repos(), s.Tx(), apptest.Hasher{}, tokens, notifier, "https://app.repcom.com.br/")
	return uc, tokens, notifier
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("vendedor recebe token sem empresa ativa e empresas vinculadas", func(t *testing.T) {
		s := apptest.Fixture()
		uc, tokens, _ := newUseCase(s)

		resp, err := uc.Login(ctx, dto.LoginRequest{Email: "vendedor@org1.com", Password: "senha123"}, "10.0.0.9")
		require.NoError(t, err)
		assert.Equal(t, "bearer", resp.TokenType)
		require.Len(t, resp.Companies, 1)
		assert.Equal(t, "emp1", resp.Companies[0].ID)
		assert.Nil(t, resp.ActiveCompany)
		assert.NotNil(t, resp.User.LastAccessAt)

		tc, err := tokens.Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, tenant.Context{UserID: "v1", OrganizationID: "org1", Role: entity.RoleVendedor, ClientIP: "10.0.0.9"}, tc)

		logs := s.AuditLogs()
		require.Len(t, logs, 1)
		assert.Equal(t, entity.AuditLogin, logs[0].Action)
		assert.Equal(t, "10.0.0.9", logs[0].IPAddress)
	})

	t.Run("senha errada e e-mail desconhecido", func(t *testing.T) {
		uc, _, _ := newUseCase(apptest.Fixture())
		_, err := uc.Login(ctx, dto.LoginRequest{Email: "vendedor@org1.com", Password: "errada"}, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		_, err = uc.Login(ctx, dto.LoginRequest{Email: "ninguem@x.com", Password: "senha123"}, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("usuário inativo", func(t *testing.T) {
		s := apptest.Fixture()
		s.PutUser(entity.User{ID: "v9", OrganizationID: "org1", Email: "inativo@org1.com", PasswordHash: "hash:x", Role: entity.RoleVendedor})
		uc, _, _ := newUseCase(s)
		_, err := uc.Login(ctx, dto.LoginRequest{Email: "inativo@org1.com", Password: "x"}, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("organização suspensa", func(t *testing.T) {
		s := apptest.Fixture()
		s.PutOrganization(entity.Organization{ID: "org1", Name: "Org Um", TaxID: "11222333000181", SubscriptionStatus: entity.SubscriptionSuspended})
		uc, _, _ := newUseCase(s)
		_, err := uc.Login(ctx, dto.LoginRequest{Email: "gestor@org1.com", Password: "senha123"}, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("super admin sem organização", func(t *testing.T) {
		uc, _, _ := newUseCase(apptest.Fixture())
		resp, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@repcom.com.br", Password: "admin123"}, "")
		require.NoError(t, err)
		assert.Nil(t, resp.Organization)
		assert.Empty(t, resp.Companies)
	})
}

func TestSelectCompany(t *testing.T) {
	ctx := context.Background()
	s := apptest.Fixture()
	s.PutCompany(entity.Company{ID: "emp3", OrganizationID: "org1", Name: "Sem vínculo", TaxID: "33000167000101", IsActive: true})
	uc, tokens, _ := newUseCase(s)
	seller := tenant.Context{UserID: "v1", OrganizationID: "org1", Role: entity.RoleVendedor}

	resp, err := uc.SelectCompany(ctx, seller, "emp1")
	require.NoError(t, err)
	require.NotNil(t, resp.ActiveCompany)
	assert.Equal(t, "emp1", resp.ActiveCompany.ID)
	tc, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "emp1", tc.ActiveCompanyID)

	_, err = uc.SelectCompany(ctx, seller, "emp3")
	assert.ErrorIs(t, err, domain.ErrForbidden, "empresa sem vínculo")
	_, err = uc.SelectCompany(ctx, seller, "emp2")
	assert.ErrorIs(t, err, domain.ErrForbidden, "empresa de outra organização")

	gestor := tenant.Context{UserID: "g1", OrganizationID: "org1", Role: entity.RoleGestor}
	_, err = uc.SelectCompany(ctx, gestor, "emp1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestResolveSession(t *testing.T) {
	ctx := context.Background()
	s := apptest.Fixture()
	uc, _, _ := newUseCase(s)

	user, org, err := uc.ResolveSession(ctx, tenant.Context{UserID: "g1", OrganizationID: "org1", Role: entity.RoleGestor})
	require.NoError(t, err)
	assert.Equal(t, "g1", user.ID)
	assert.Equal(t, "org1", org.ID)

	_, _, err = uc.ResolveSession(ctx, tenant.Context{UserID: "sumiu", Role: entity.RoleGestor})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = uc.ResolveSession(ctx, tenant.Context{UserID: "g1", OrganizationID: "org1", Role: entity.RoleSuperAdmin})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe(t *testing.T) {
	uc, _, _ := newUseCase(apptest.Fixture())
	resp, err := uc.Me(context.Background(), tenant.Context{UserID: "v1", OrganizationID: "org1", Role: entity.RoleVendedor, ActiveCompanyID: "emp1"})
	require.NoError(t, err)
	assert.Empty(t, resp.Token)
	assert.Equal(t, "emp1", resp.ActiveCompany.ID)
	assert.Equal(t, "org1", resp.Organization.ID)
}

func TestPasswordRecovery(t *testing.T) {
	ctx := context.Background()
	s := apptest.Fixture()
	uc, _, notifier := newUseCase(s)

	require.NoError(t, uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "ninguem@x.com"}))
	assert.Empty(t, notifier.Resets)

	require.NoError(t, uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "vendedor@org1.com"}))
	require.Len(t, notifier.Resets, 1)
	sent := notifier.Resets[0]
	assert.Equal(t, "vendedor@org1.com", sent.To)
	require.True(t, strings.HasPrefix(sent.Link, "https://app.repcom.com.br/redefinir-senha?token="))
	token := strings.TrimPrefix(sent.Link, "https://app.repcom.com.br/redefinir-senha?token=")

	err := uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: "invalido", NewPassword: "nova123"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "token", verr.Field)

	require.NoError(t, uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "nova123"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "vendedor@org1.com", Password: "nova123"}, "")
	assert.NoError(t, err)

	err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "outra123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "token é consumido no uso")
}

func TestResetPassword_TokenExpirado(t *testing.T) {
	ctx := context.Background()
	s := apptest.Fixture()
	uc, _, _ := newUseCase(s)
	require.NoError(t, s.Repos().PasswordResets.Create(ctx, &entity.PasswordReset{
		Token: "velho", UserID: "v1", ExpiresAt: time.Now().Add(-time.Minute),
	}))
	err := uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: "velho", NewPassword: "nova123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUseCase(apptest.Fixture())
	tc := tenant.Context{UserID: "g1", OrganizationID: "org1", Role: entity.RoleGestor}

	err := uc.ChangePassword(ctx, tc, dto.ChangePasswordRequest{CurrentPassword: "errada", NewPassword: "nova123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ChangePassword(ctx, tc, dto.ChangePasswordRequest{CurrentPassword: "senha123", NewPassword: "nova123"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "gestor@org1.com", Password: "nova123"}, "")
	assert.NoError(t, err)
}
