package commission_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/commission"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

func ptr(s string) *string { return &s }

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func rule(id string, pct string, priority int, companyID, sellerID *string) *entity.CommissionRule {
	return &entity.CommissionRule{
		ID:             id,
		OrganizationID: "org-1",
		CompanyID:      companyID,
		SellerID:       sellerID,
		Percent:        decimal.RequireFromString(pct),
		Priority:       priority,
		IsActive:       true,
	}
}

var orderCriteria = commission.Criteria{
	CompanyID: "emp-1",
	SellerID:  "vend-1",
	OrderDate: time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC),
}

func TestMatches_EscopoEVigencia(t *testing.T) {
	tests := []struct {
		name string
		rule *entity.CommissionRule
		want bool
	}{
		{"regra da organização", rule("r1", "5", 0, nil, nil), true},
		{"empresa igual", rule("r1", "5", 0, ptr("emp-1"), nil), true},
		{"empresa diferente", rule("r1", "5", 0, ptr("emp-2"), nil), false},
		{"vendedor diferente", rule("r1", "5", 0, nil, ptr("vend-2")), false},
		{"inativa", func() *entity.CommissionRule { r := rule("r1", "5", 0, nil, nil); r.IsActive = false; return r }(), false},
		{"vigência contendo a data", func() *entity.CommissionRule {
			r := rule("r1", "5", 0, nil, nil)
			r.ValidFrom, r.ValidTo = day("2025-03-01"), day("2025-03-31")
			return r
		}(), true},
		{"vigência termina no próprio dia", func() *entity.CommissionRule {
			r := rule("r1", "5", 0, nil, nil)
			r.ValidTo = day("2025-03-15")
			return r
		}(), true},
		{"vigência futura", func() *entity.CommissionRule {
			r := rule("r1", "5", 0, nil, nil)
			r.ValidFrom = day("2025-03-16")
			return r
		}(), false},
		{"vigência expirada", func() *entity.CommissionRule {
			r := rule("r1", "5", 0, nil, nil)
			r.ValidTo = day("2025-03-14")
			return r
		}(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commission.Matches(tt.rule, orderCriteria))
		})
	}
}

func TestSelect_PrioridadeVence(t *testing.T) {
	rules := []*entity.CommissionRule{
		rule("a", "3", 1, ptr("emp-1"), ptr("vend-1")),
		rule("b", "7", 10, nil, nil),
	}
	got := commission.Select(rules, orderCriteria)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)
}

func TestSelect_EmpateResolvidoPorEspecificidade(t *testing.T) {
	rules := []*entity.CommissionRule{
		rule("org", "4", 5, nil, nil),
		rule("emp", "5", 5, ptr("emp-1"), nil),
		rule("vend", "6", 5, nil, ptr("vend-1")),
		rule("vend-emp", "8", 5, ptr("emp-1"), ptr("vend-1")),
	}
	got := commission.Select(rules, orderCriteria)
	require.NotNil(t, got)
	assert.Equal(t, "vend-emp", got.ID)

	got = commission.Select(rules[:3], orderCriteria)
	assert.Equal(t, "vend", got.ID)

	got = commission.Select(rules[:2], orderCriteria)
	assert.Equal(t, "emp", got.ID)
}

func TestSelect_DeterministicoIndependenteDaOrdem(t *testing.T) {
	base := []*entity.CommissionRule{
		rule("r-03", "4", 5, ptr("emp-1"), nil),
		rule("r-01", "5", 5, ptr("emp-1"), nil),
		rule("r-02", "6", 5, ptr("emp-1"), nil),
		rule("r-04", "9", 2, ptr("emp-1"), ptr("vend-1")),
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		shuffled := append([]*entity.CommissionRule(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := commission.Select(shuffled, orderCriteria)
		require.NotNil(t, got)
		require.Equal(t, "r-01", got.ID, "iteração %d", i)
	}
}

func TestResolve_FallbackPadraoDaEmpresa(t *testing.T) {
	res := commission.Resolve(nil, orderCriteria, decimal.NewFromInt(10))
	assert.Equal(t, commission.SourceCompanyDefault, res.Source)
	assert.Nil(t, res.RuleID)
	assert.True(t, res.Percent.Equal(decimal.NewFromInt(10)))

	amount := commission.Amount(decimal.RequireFromString("499.00"), res.Percent)
	assert.Equal(t, "49.90", amount.StringFixed(2))
}

func TestAmount_Arredondamento(t *testing.T) {
	assert.Equal(t, "8.27", commission.Amount(decimal.RequireFromString("233.55"), decimal.RequireFromString("3.54")).StringFixed(2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolver com fontes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeRules struct{ rules []*entity.CommissionRule }

func (f fakeRules) ListCandidates(_ context.Context, organizationID, _, _ string) ([]*entity.CommissionRule, error) {
	var out []*entity.CommissionRule
	for _, r := range f.rules {
		if r.OrganizationID == organizationID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCompanies map[string]*entity.Company

func (f fakeCompanies) GetByID(_ context.Context, organizationID, id string) (*entity.Company, error) {
	c, ok := f[id]
	if !ok || c.OrganizationID != organizationID {
		return nil, nil
	}
	return c, nil
}

func TestResolver_UsaRegraOuPadrao(t *testing.T) {
	companies := fakeCompanies{"emp-1": {ID: "emp-1", OrganizationID: "org-1", DefaultCommissionPercent: decimal.NewFromInt(10)}}
	r := commission.NewResolver(fakeRules{rules: []*entity.CommissionRule{rule("r1", "12.5", 1, ptr("emp-1"), nil)}}, companies)

	res, err := r.Resolve(context.Background(), "org-1", "emp-1", "vend-1", orderCriteria.OrderDate)
	require.NoError(t, err)
	assert.Equal(t, commission.SourceRule, res.Source)
	assert.Equal(t, "12.5", res.Percent.String())

	r = commission.NewResolver(fakeRules{}, companies)
	res, err = r.Resolve(context.Background(), "org-1", "emp-1", "vend-1", orderCriteria.OrderDate)
	require.NoError(t, err)
	assert.Equal(t, "10", res.Percent.String())
}

func TestResolver_EmpresaDeOutroTenant(t *testing.T) {
	companies := fakeCompanies{"emp-1": {ID: "emp-1", OrganizationID: "org-1"}}
	r := commission.NewResolver(fakeRules{}, companies)
	_, err := r.Resolve(context.Background(), "org-2", "emp-1", "vend-1", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
