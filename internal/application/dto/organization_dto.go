package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManagerRequest primeiro gestor criado junto com a organização.
type ManagerRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

// CreateOrganizationRequest entrada para criar uma organização (super admin).
type CreateOrganizationRequest struct {
	Name         string         `json:"name" validate:"required,min=2,max=150"`
	TaxID        string         `json:"tax_id" validate:"required"`
	ContactEmail string         `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string         `json:"contact_phone"`
	Plan         string         `json:"plan"`
	UserLimit    int            `json:"user_limit" validate:"omitempty,min=1"`
	CompanyLimit int            `json:"company_limit" validate:"omitempty,min=1"`
	Manager      ManagerRequest `json:"manager" validate:"required"`
}

// UpdateOrganizationRequest alteração parcial de plano, status, limites e CNPJ.
type UpdateOrganizationRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=2,max=150"`
	TaxID              *string `json:"tax_id"`
	ContactEmail       *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone       *string `json:"contact_phone"`
	SubscriptionStatus *string `json:"subscription_status" validate:"omitempty,oneof=ativo suspenso cancelado"`
	Plan               *string `json:"plan"`
	UserLimit          *int    `json:"user_limit" validate:"omitempty,min=1"`
	CompanyLimit       *int    `json:"company_limit" validate:"omitempty,min=1"`
}

// OrganizationResponse saída de uma organização.
type OrganizationResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	TaxID              string    `json:"tax_id"`
	ContactEmail       string    `json:"contact_email,omitempty"`
	ContactPhone       string    `json:"contact_phone,omitempty"`
	SubscriptionStatus string    `json:"subscription_status"`
	Plan               string    `json:"plan"`
	UserLimit          int       `json:"user_limit"`
	CompanyLimit       int       `json:"company_limit"`
	CreatedAt          time.Time `json:"created_at"`
}

// OrganizationListResponse lista paginada de organizações.
type OrganizationListResponse struct {
	Items []OrganizationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// AdminKPIResponse indicadores globais do SaaS.
type AdminKPIResponse struct {
	ActiveOrganizations    int             `json:"active_organizations"`
	SuspendedOrganizations int             `json:"suspended_organizations"`
	ActiveManagers         int             `json:"active_managers"`
	ActiveSellers          int             `json:"active_sellers"`
	OrderCount             int             `json:"order_count"`
	OrderValue             decimal.Decimal `json:"order_value"`
}
