package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionRuleRequest criação/alteração de regra de comissão.
type CommissionRuleRequest struct {
	CompanyID *string         `json:"company_id"`
	SellerID  *string         `json:"seller_id"`
	Percent   decimal.Decimal `json:"percent"`
	Priority  int             `json:"priority"`
	ValidFrom *time.Time      `json:"valid_from"`
	ValidTo   *time.Time      `json:"valid_to"`
	IsActive  *bool           `json:"is_active"`
}

// CommissionRuleResponse saída de regra de comissão.
type CommissionRuleResponse struct {
	ID        string          `json:"id"`
	CompanyID *string         `json:"company_id,omitempty"`
	SellerID  *string         `json:"seller_id,omitempty"`
	Percent   decimal.Decimal `json:"percent"`
	Priority  int             `json:"priority"`
	ValidFrom *time.Time      `json:"valid_from,omitempty"`
	ValidTo   *time.Time      `json:"valid_to,omitempty"`
	IsActive  bool            `json:"is_active"`
}

// CommissionPreviewRequest parâmetros da simulação de comissão.
type CommissionPreviewRequest struct {
	CompanyID string `query:"company_id" validate:"required"`
	SellerID  string `query:"seller_id" validate:"required"`
	Date      string `query:"date"` // AAAA-MM-DD; vazio = hoje
}

// CommissionPreviewResponse percentual resolvido e sua origem.
type CommissionPreviewResponse struct {
	Percent decimal.Decimal `json:"percent"`
	RuleID  *string         `json:"rule_id,omitempty"`
	Source  string          `json:"source"`
}
