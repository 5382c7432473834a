package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company empresa representada (fabricante/marca) pertencente a uma Organization.
type Company struct {
	ID                       string
	OrganizationID           string
	Name                     string
	TaxID                    string // CNPJ, único por organização
	StateRegistration        string
	ContactEmail             string
	ContactPhone             string
	Website                  string
	DefaultCommissionPercent decimal.Decimal // 0–100
	IsActive                 bool
	DeletedAt                *time.Time // soft delete
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// Available indica se a empresa pode receber pedidos.
func (c *Company) Available() bool {
	return c != nil && c.IsActive && c.DeletedAt == nil
}
