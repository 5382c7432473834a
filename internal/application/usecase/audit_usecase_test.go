package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/apptest"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
)

// ── Auditoria ──

func TestAuditList_EscopoPorPerfil(t *testing.T) {
	s := apptest.Fixture()
	companies := NewCompanyUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	name := "Renomeada"
	_, err := companies.Update(ctx, manager, "emp1", dto.UpdateCompanyRequest{Name: &name})
	require.NoError(t, err)
	_, err = companies.Update(ctx, other, "emp2", dto.UpdateCompanyRequest{Name: &name})
	require.NoError(t, err)

	uc := NewAuditUseCase(s.Repos().Audit)

	// o gestor não escapa da própria organização
	list, err := uc.List(ctx, manager, dto.AuditListRequest{OrganizationID: "org2"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "emp1", list[0].EntityID)
	require.Len(t, list[0].Changes, 1)
	assert.Equal(t, "nome", list[0].Changes[0].Field)

	list, err = uc.List(ctx, admin, dto.AuditListRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = uc.List(ctx, admin, dto.AuditListRequest{OrganizationID: "org2", EntityType: "empresa"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "emp2", list[0].EntityID)

	_, err = uc.List(ctx, admin, dto.AuditListRequest{From: "2026-05-02", To: "2026-05-01"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.List(ctx, seller, dto.AuditListRequest{})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// ── Consultas externas ──

func TestLookup(t *testing.T) {
	lookup := &apptest.Lookup{
		Companies: map[string]*ports.CompanyRecord{"12345678000195": {TaxID: "12345678000195", LegalName: "Malhas Sul"}},
		Addresses: map[string]*ports.AddressRecord{"80010000": {PostalCode: "80010000", City: "Curitiba", State: "PR"}},
	}
	uc := NewLookupUseCase(lookup)
	ctx := context.Background()

	rec, err := uc.Company(ctx, "12.345.678/0001-95")
	require.NoError(t, err)
	assert.Equal(t, "Malhas Sul", rec.LegalName)

	addr, err := uc.Address(ctx, "80010-000")
	require.NoError(t, err)
	assert.Equal(t, "Curitiba", addr.City)

	var ve *domain.ValidationError
	_, err = uc.Company(ctx, "123")
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "cnpj", ve.Field)

	_, err = uc.Address(ctx, "8001")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Address(ctx, "01001000")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	lookup.Err = domain.ErrTimeout
	_, err = uc.Company(ctx, "12345678000195")
	assert.True(t, errors.Is(err, domain.ErrTimeout))
}
