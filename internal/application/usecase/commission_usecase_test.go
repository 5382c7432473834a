package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/apptest"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/commission"
)

func strPtr(s string) *string { return &s }

func day(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func TestCommissionRule_CRUD(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCommissionRuleUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	rule, err := uc.Create(ctx, manager, dto.CommissionRuleRequest{
		CompanyID: strPtr("emp1"), SellerID: strPtr("v1"), Percent: apptest.Dec("8"), Priority: 1,
	})
	require.NoError(t, err)
	assert.True(t, rule.IsActive)

	list, err := uc.List(ctx, manager)
	require.NoError(t, err)
	require.Len(t, list, 1)

	upd, err := uc.Update(ctx, manager, rule.ID, dto.CommissionRuleRequest{CompanyID: strPtr(""), Percent: apptest.Dec("4"), Priority: 2})
	require.NoError(t, err)
	assert.Nil(t, upd.CompanyID)
	assert.Nil(t, upd.SellerID)
	assert.True(t, upd.Percent.Equal(apptest.Dec("4")))

	_, err = uc.Get(ctx, other, rule.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, uc.Delete(ctx, manager, rule.ID))
	assert.True(t, errors.Is(uc.Delete(ctx, manager, rule.ID), domain.ErrNotFound))
	assert.Len(t, s.AuditLogs(), 3)
}

func TestCommissionRule_Validacoes(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCommissionRuleUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CommissionRuleRequest
		want error
	}{
		{"percentual acima de 100", dto.CommissionRuleRequest{Percent: apptest.Dec("100.01")}, domain.ErrInvalidInput},
		{"percentual negativo", dto.CommissionRuleRequest{Percent: apptest.Dec("-1")}, domain.ErrInvalidInput},
		{"vigência invertida", dto.CommissionRuleRequest{Percent: apptest.Dec("5"), ValidFrom: day("2026-05-01"), ValidTo: day("2026-04-01")}, domain.ErrInvalidInput},
		{"empresa de outra organização", dto.CommissionRuleRequest{Percent: apptest.Dec("5"), CompanyID: strPtr("emp2")}, domain.ErrNotFound},
		{"vendedor de outra organização", dto.CommissionRuleRequest{Percent: apptest.Dec("5"), SellerID: strPtr("v2")}, domain.ErrNotFound},
		{"gestor não é vendedor", dto.CommissionRuleRequest{Percent: apptest.Dec("5"), SellerID: strPtr("g1")}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, manager, tc.in)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestCommissionRule_Preview(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCommissionRuleUseCase(s.Repos(), s.Tx())
	uc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	// sem regra: padrão da empresa
	p, err := uc.Preview(ctx, manager, dto.CommissionPreviewRequest{CompanyID: "emp1", SellerID: "v1"})
	require.NoError(t, err)
	assert.True(t, p.Percent.Equal(apptest.Dec("5")))
	assert.Equal(t, commission.SourceCompanyDefault, p.Source)

	rule, err := uc.Create(ctx, manager, dto.CommissionRuleRequest{
		SellerID: strPtr("v1"), Percent: apptest.Dec("9"), ValidFrom: day("2026-03-01"), ValidTo: day("2026-03-31"),
	})
	require.NoError(t, err)

	p, err = uc.Preview(ctx, manager, dto.CommissionPreviewRequest{CompanyID: "emp1", SellerID: "v1"})
	require.NoError(t, err)
	assert.True(t, p.Percent.Equal(apptest.Dec("9")))
	require.NotNil(t, p.RuleID)
	assert.Equal(t, rule.ID, *p.RuleID)

	// fora da vigência
	p, err = uc.Preview(ctx, manager, dto.CommissionPreviewRequest{CompanyID: "emp1", SellerID: "v1", Date: "2026-04-01"})
	require.NoError(t, err)
	assert.Equal(t, commission.SourceCompanyDefault, p.Source)

	_, err = uc.Preview(ctx, manager, dto.CommissionPreviewRequest{CompanyID: "emp2", SellerID: "v1"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.Preview(ctx, manager, dto.CommissionPreviewRequest{CompanyID: "emp1", SellerID: "v1", Date: "01/04/2026"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
