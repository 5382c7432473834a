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
)

func newSellerEnv() (*apptest.Store, *SellerUseCase) {
	s := apptest.Fixture()
	s.PutCompany(entity.Company{ID: "emp3", OrganizationID: "org1", Name: "Bonés Oeste", TaxID: "55111222000133", IsActive: true})
	return s, NewSellerUseCase(s.Repos(), s.Tx(), apptest.Hasher{})
}

func TestCreateSeller(t *testing.T) {
	s, uc := newSellerEnv()
	ctx := context.Background()

	resp, err := uc.Create(ctx, manager, dto.CreateSellerRequest{FullName: "Nova Vendedora", Email: " Nova@Org1.com ", Password: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "nova@org1.com", resp.Email)
	assert.Equal(t, entity.RoleVendedor, resp.Role)
	assert.Equal(t, "org1", resp.OrganizationID)
	assert.Empty(t, resp.Companies)

	u, err := s.Repos().Users.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash:abc123", u.PasswordHash)

	// e-mail é único no sistema, inclusive entre organizações
	_, err = uc.Create(ctx, manager, dto.CreateSellerRequest{FullName: "X", Email: "VENDEDOR@org2.com", Password: "abc123"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = uc.Create(ctx, seller, dto.CreateSellerRequest{FullName: "X", Email: "x@x.com", Password: "abc123"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestListSellers_ComEmpresasVinculadas(t *testing.T) {
	_, uc := newSellerEnv()

	list, err := uc.List(context.Background(), manager)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "v1", list[0].ID)
	require.Len(t, list[0].Companies, 1)
	assert.Equal(t, "emp1", list[0].Companies[0].ID)
}

func TestUpdateSeller_RedefineSenha(t *testing.T) {
	s, uc := newSellerEnv()
	ctx := context.Background()

	phone, pwd := "41999990000", "nova-senha"
	resp, err := uc.Update(ctx, manager, "v1", dto.UpdateSellerRequest{Phone: &phone, Password: &pwd})
	require.NoError(t, err)
	assert.Equal(t, phone, resp.Phone)

	u, _ := s.Repos().Users.GetByID(ctx, "v1")
	assert.Equal(t, "hash:nova-senha", u.PasswordHash)

	taken := "gestor@org1.com"
	_, err = uc.Update(ctx, manager, "v1", dto.UpdateSellerRequest{Email: &taken})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestSeller_OutraOrganizacaoOuPerfil(t *testing.T) {
	_, uc := newSellerEnv()
	ctx := context.Background()

	_, err := uc.Get(ctx, manager, "v2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = uc.Get(ctx, manager, "g1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = uc.Get(ctx, other, "v1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteSeller_Desativa(t *testing.T) {
	s, uc := newSellerEnv()
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, manager, "v1"))
	u, _ := s.Repos().Users.GetByID(ctx, "v1")
	require.NotNil(t, u)
	assert.False(t, u.IsActive)

	// segunda exclusão não gera novo registro de auditoria
	require.NoError(t, uc.Delete(ctx, manager, "v1"))
	assert.Len(t, s.AuditLogs(), 1)
}

func TestLinkAndUnlinkCompany(t *testing.T) {
	s, uc := newSellerEnv()
	ctx := context.Background()

	resp, err := uc.LinkCompany(ctx, manager, "v1", dto.LinkCompanyRequest{CompanyID: "emp3"})
	require.NoError(t, err)
	assert.Len(t, resp.Companies, 2)

	_, err = uc.LinkCompany(ctx, manager, "v1", dto.LinkCompanyRequest{CompanyID: "emp3"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = uc.LinkCompany(ctx, manager, "v1", dto.LinkCompanyRequest{CompanyID: "emp2"})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "empresa de outra organização")

	require.NoError(t, uc.UnlinkCompany(ctx, manager, "v1", "emp3"))
	linked, err := s.Repos().Users.IsLinked(ctx, "v1", "emp3")
	require.NoError(t, err)
	assert.False(t, linked)

	err = uc.UnlinkCompany(ctx, manager, "v1", "emp3")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
