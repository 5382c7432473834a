package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCompanyRequest entrada para cadastrar uma empresa representada.
type CreateCompanyRequest struct {
	Name                     string          `json:"name" validate:"required,min=2,max=200"`
	TaxID                    string          `json:"tax_id" validate:"required"`
	StateRegistration        string          `json:"state_registration"`
	ContactEmail             string          `json:"contact_email" validate:"omitempty,email"`
	ContactPhone             string          `json:"contact_phone"`
	Website                  string          `json:"website"`
	DefaultCommissionPercent decimal.Decimal `json:"default_commission_percent"`
}

// UpdateCompanyRequest alteração parcial de empresa.
type UpdateCompanyRequest struct {
	Name                     *string          `json:"name" validate:"omitempty,min=2,max=200"`
	TaxID                    *string          `json:"tax_id"`
	StateRegistration        *string          `json:"state_registration"`
	ContactEmail             *string          `json:"contact_email" validate:"omitempty,email"`
	ContactPhone             *string          `json:"contact_phone"`
	Website                  *string          `json:"website"`
	DefaultCommissionPercent *decimal.Decimal `json:"default_commission_percent"`
	IsActive                 *bool            `json:"is_active"`
}

// CompanyResponse saída de uma empresa.
type CompanyResponse struct {
	ID                       string          `json:"id"`
	OrganizationID           string          `json:"organization_id"`
	Name                     string          `json:"name"`
	TaxID                    string          `json:"tax_id"`
	StateRegistration        string          `json:"state_registration,omitempty"`
	ContactEmail             string          `json:"contact_email,omitempty"`
	ContactPhone             string          `json:"contact_phone,omitempty"`
	Website                  string          `json:"website,omitempty"`
	DefaultCommissionPercent decimal.Decimal `json:"default_commission_percent"`
	IsActive                 bool            `json:"is_active"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}
