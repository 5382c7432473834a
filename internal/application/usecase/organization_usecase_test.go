package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/apptest"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

var (
	admin   = tenant.Context{UserID: "adm", Role: entity.RoleSuperAdmin}
	manager = tenant.Context{UserID: "g1", OrganizationID: "org1", Role: entity.RoleGestor}
	seller  = tenant.Context{UserID: "v1", OrganizationID: "org1", Role: entity.RoleVendedor, ActiveCompanyID: "emp1"}
	other   = tenant.Context{UserID: "g2", OrganizationID: "org2", Role: entity.RoleGestor}
)

func newOrgRequest() dto.CreateOrganizationRequest {
	return dto.CreateOrganizationRequest{
		Name:  " Representações Norte ",
		TaxID: "33.000.167/0001-01",
		Manager: dto.ManagerRequest{
			FullName: "Gestor Norte",
			Email:    "Gestor@Norte.com",
			Password: "segredo1",
		},
	}
}

func TestCreateOrganization_CriaGestorNaMesmaTransacao(t *testing.T) {
	s := apptest.Fixture()
	uc := NewOrganizationUseCase(s.Repos(), s.Tx(), apptest.Hasher{})
	ctx := context.Background()

	resp, err := uc.Create(ctx, admin, newOrgRequest())
	require.NoError(t, err)
	assert.Equal(t, "Representações Norte", resp.Name)
	assert.Equal(t, "33000167000101", resp.TaxID)
	assert.Equal(t, entity.SubscriptionActive, resp.SubscriptionStatus)
	assert.Equal(t, "basico", resp.Plan)
	assert.Equal(t, 10, resp.UserLimit)
	assert.Equal(t, 5, resp.CompanyLimit)

	u, err := s.Repos().Users.FindByEmail(ctx, "gestor@norte.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, resp.ID, u.OrganizationID)
	assert.Equal(t, entity.RoleGestor, u.Role)
	assert.Equal(t, "hash:segredo1", u.PasswordHash)

	logs := s.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "organizacao", logs[0].EntityType)
	require.NotNil(t, logs[0].OrganizationID)
	assert.Equal(t, resp.ID, *logs[0].OrganizationID)
}

func TestCreateOrganization_Duplicados(t *testing.T) {
	s := apptest.Fixture()
	uc := NewOrganizationUseCase(s.Repos(), s.Tx(), apptest.Hasher{})
	ctx := context.Background()

	req := newOrgRequest()
	req.Manager.Email = "GESTOR@org1.com"
	_, err := uc.Create(ctx, admin, req)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	req = newOrgRequest()
	req.TaxID = "11222333000181"
	_, err = uc.Create(ctx, admin, req)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Empty(t, s.AuditLogs())
}

func TestCreateOrganization_Validacoes(t *testing.T) {
	s := apptest.Fixture()
	uc := NewOrganizationUseCase(s.Repos(), s.Tx(), apptest.Hasher{})

	req := newOrgRequest()
	req.TaxID = "123"
	_, err := uc.Create(context.Background(), admin, req)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "tax_id", ve.Field)

	_, err = uc.Create(context.Background(), manager, newOrgRequest())
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestListOrganizations_OrdenadoPorNome(t *testing.T) {
	s := apptest.Fixture()
	uc := NewOrganizationUseCase(s.Repos(), s.Tx(), apptest.Hasher{})

	resp, err := uc.List(context.Background(), admin, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Org Dois", resp.Items[0].Name)
	assert.Equal(t, "Org Um", resp.Items[1].Name)
	assert.Equal(t, 100, resp.Page.Limit)

	resp, err = uc.List(context.Background(), admin, dto.PageRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Org Um", resp.Items[0].Name)
}

func TestUpdateOrganization(t *testing.T) {
	s := apptest.Fixture()
	uc := NewOrganizationUseCase(s.Repos(), s.Tx(), apptest.Hasher{})
	ctx := context.Background()

	status, limit := entity.SubscriptionSuspended, 20
	resp, err := uc.Update(ctx, admin, "org1", dto.UpdateOrganizationRequest{SubscriptionStatus: &status, UserLimit: &limit})
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionSuspended, resp.SubscriptionStatus)
	assert.Equal(t, 20, resp.UserLimit)
	require.Len(t, s.AuditLogs(), 1)

	taken := "11.444.777/0001-61"
	_, err = uc.Update(ctx, admin, "org1", dto.UpdateOrganizationRequest{TaxID: &taken})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	bad := "pausado"
	_, err = uc.Update(ctx, admin, "org1", dto.UpdateOrganizationRequest{SubscriptionStatus: &bad})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Get(ctx, admin, "nao-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
