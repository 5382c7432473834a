package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product produto de uma Company. Code é único por empresa.
type Product struct {
	ID          string
	CompanyID   string
	CategoryID  *string
	Code        string
	Description string
	BasePrice   decimal.Decimal
	Unit        string // UN, CX, PC...
	IsActive    bool
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant grade (tamanho/cor) de um produto com ajuste de preço relativo ao catálogo.
type Variant struct {
	ID              string
	ProductID       string
	Size            string
	Color           string
	SKU             *string // único no sistema quando informado
	PriceAdjustment decimal.Decimal
	Stock           int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ActiveVariants filtra as variações ativas já carregadas.
func (p *Product) ActiveVariants() []Variant {
	out := make([]Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.IsActive {
			out = append(out, v)
		}
	}
	return out
}

// PriceHistory registro de alteração de preço (produto ou item de catálogo).
type PriceHistory struct {
	ID            string
	ProductID     string
	CatalogID     *string // preenchido quando a alteração foi no item de catálogo
	PreviousPrice decimal.Decimal
	NewPrice      decimal.Decimal
	Reason        string
	ChangedBy     string
	ChangedAt     time.Time
}
