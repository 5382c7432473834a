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
)

func TestCreateCompany(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCompanyUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	resp, err := uc.Create(ctx, manager, dto.CreateCompanyRequest{
		Name: "Calçados Leste", TaxID: "07.526.557/0001-00", DefaultCommissionPercent: apptest.Dec("7.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "07526557000100", resp.TaxID)
	assert.Equal(t, "org1", resp.OrganizationID)
	assert.True(t, resp.IsActive)
	assert.True(t, resp.DefaultCommissionPercent.Equal(apptest.Dec("7.5")))

	// mesmo CNPJ de emp1 na mesma organização
	_, err = uc.Create(ctx, manager, dto.CreateCompanyRequest{Name: "Cópia", TaxID: "12345678000195"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	// CNPJ de emp2 é permitido em outra organização
	_, err = uc.Create(ctx, manager, dto.CreateCompanyRequest{Name: "Outra", TaxID: "98765432000198"})
	assert.NoError(t, err)

	_, err = uc.Create(ctx, manager, dto.CreateCompanyRequest{Name: "X", TaxID: "07526557000199", DefaultCommissionPercent: apptest.Dec("120")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, seller, dto.CreateCompanyRequest{Name: "X", TaxID: "07526557000199"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestUpdateCompany(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCompanyUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	name, pct := "Malhas Sul S.A.", apptest.Dec("6")
	resp, err := uc.Update(ctx, manager, "emp1", dto.UpdateCompanyRequest{Name: &name, DefaultCommissionPercent: &pct})
	require.NoError(t, err)
	assert.Equal(t, "Malhas Sul S.A.", resp.Name)
	assert.True(t, resp.DefaultCommissionPercent.Equal(pct))

	logs := s.AuditLogs()
	require.Len(t, logs, 1)
	assert.Len(t, logs[0].Changes, 2)

	_, err = uc.Update(ctx, other, "emp1", dto.UpdateCompanyRequest{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteCompany_ExclusaoLogica(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCompanyUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, manager, "emp1"))

	list, err := uc.List(ctx, manager)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.Get(ctx, manager, "emp1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	logs := s.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "delete", logs[0].Action)
}
