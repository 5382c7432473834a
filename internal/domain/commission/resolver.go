// Package commission resolve o percentual de comissão aplicável a um pedido.
//
// Entre as regras candidatas vence a de maior prioridade; em empate, a de escopo mais
// específico (vendedor+empresa > vendedor > empresa > organização); persistindo o empate,
// o menor ID. Sem regra aplicável vale o percentual padrão da empresa.
package commission

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// Origem do percentual resolvido.
const (
	SourceRule           = "regra"
	SourceCompanyDefault = "padrao_empresa"
)

// Criteria dados do pedido usados na resolução.
type Criteria struct {
	CompanyID string
	SellerID  string
	OrderDate time.Time
}

// Resolution percentual resolvido e sua origem.
type Resolution struct {
	Percent decimal.Decimal
	RuleID  *string
	Source  string
}

// Matches indica se a regra se aplica ao critério (escopo, vigência e flag ativa).
func Matches(r *entity.CommissionRule, c Criteria) bool {
	if r == nil || !r.IsActive {
		return false
	}
	if r.CompanyID != nil && *r.CompanyID != c.CompanyID {
		return false
	}
	if r.SellerID != nil && *r.SellerID != c.SellerID {
		return false
	}
	day := dateOf(c.OrderDate)
	if r.ValidFrom != nil && day.Before(dateOf(*r.ValidFrom)) {
		return false
	}
	if r.ValidTo != nil && day.After(dateOf(*r.ValidTo)) {
		return false
	}
	return true
}

// Select escolhe deterministicamente a regra vencedora entre as aplicáveis; nil se nenhuma.
func Select(rules []*entity.CommissionRule, c Criteria) *entity.CommissionRule {
	matching := make([]*entity.CommissionRule, 0, len(rules))
	for _, r := range rules {
		if Matches(r, c) {
			matching = append(matching, r)
		}
	}
	if len(matching) == 0 {
		return nil
	}
	sort.SliceStable(matching, func(i, j int) bool {
		a, b := matching[i], matching[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if sa, sb := a.Specificity(), b.Specificity(); sa != sb {
			return sa > sb
		}
		return a.ID < b.ID
	})
	return matching[0]
}

// Resolve aplica Select e cai no percentual padrão da empresa quando nenhuma regra casa.
func Resolve(rules []*entity.CommissionRule, c Criteria, companyDefault decimal.Decimal) Resolution {
	if r := Select(rules, c); r != nil {
		id := r.ID
		return Resolution{Percent: r.Percent, RuleID: &id, Source: SourceRule}
	}
	return Resolution{Percent: companyDefault, Source: SourceCompanyDefault}
}

// Amount = orderTotal * pct / 100, arredondado em centavos.
func Amount(orderTotal, pct decimal.Decimal) decimal.Decimal {
	return orderTotal.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
}

// RuleSource lista regras candidatas de uma organização.
type RuleSource interface {
	ListCandidates(ctx context.Context, organizationID, companyID, sellerID string) ([]*entity.CommissionRule, error)
}

// CompanySource busca a empresa (para o percentual padrão).
type CompanySource interface {
	GetByID(ctx context.Context, organizationID, id string) (*entity.Company, error)
}

// Resolver resolve comissão consultando regras e a empresa do pedido.
type Resolver struct {
	rules     RuleSource
	companies CompanySource
}

// NewResolver constrói o resolvedor.
func NewResolver(rules RuleSource, companies CompanySource) *Resolver {
	return &Resolver{rules: rules, companies: companies}
}

// Resolve devolve o percentual aplicável para (organização, empresa, vendedor, data).
func (r *Resolver) Resolve(ctx context.Context, organizationID, companyID, sellerID string, orderDate time.Time) (Resolution, error) {
	company, err := r.companies.GetByID(ctx, organizationID, companyID)
	if err != nil {
		return Resolution{}, fmt.Errorf("get company: %w", err)
	}
	if company == nil {
		return Resolution{}, domain.NotFound("empresa")
	}
	rules, err := r.rules.ListCandidates(ctx, organizationID, companyID, sellerID)
	if err != nil {
		return Resolution{}, fmt.Errorf("list commission rules: %w", err)
	}
	return Resolve(rules, Criteria{CompanyID: companyID, SellerID: sellerID, OrderDate: orderDate}, company.DefaultCommissionPercent), nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
