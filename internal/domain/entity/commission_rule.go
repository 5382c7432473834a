package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionRule regra de comissão da organização, opcionalmente restrita a uma empresa e/ou vendedor.
type CommissionRule struct {
	ID             string
	OrganizationID string
	CompanyID      *string
	SellerID       *string
	Percent        decimal.Decimal // 0–100
	Priority       int
	ValidFrom      *time.Time
	ValidTo        *time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Specificity grau de especificidade do escopo: vendedor+empresa=3, vendedor=2, empresa=1, organização=0.
func (r *CommissionRule) Specificity() int {
	s := 0
	if r.SellerID != nil {
		s += 2
	}
	if r.CompanyID != nil {
		s++
	}
	return s
}
