package dto

import "time"

// AddressRequest endereço de cliente.
type AddressRequest struct {
	Type       string `json:"type" validate:"required,oneof=entrega cobranca comercial"`
	Street     string `json:"street" validate:"required"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required,len=2"`
	PostalCode string `json:"postal_code"`
	IsPrimary  bool   `json:"is_primary"`
}

// ContactRequest contato de cliente.
type ContactRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=150"`
	Role      string `json:"role"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	IsPrimary bool   `json:"is_primary"`
}

// CreateCustomerRequest entrada para cadastrar um cliente (com endereços e contatos opcionais).
type CreateCustomerRequest struct {
	TaxID     string           `json:"tax_id" validate:"required"`
	LegalName string           `json:"legal_name" validate:"required,min=2,max=200"`
	TradeName string           `json:"trade_name"`
	Email     string           `json:"email" validate:"omitempty,email"`
	Phone     string           `json:"phone"`
	Notes     string           `json:"notes"`
	Addresses []AddressRequest `json:"addresses" validate:"dive"`
	Contacts  []ContactRequest `json:"contacts" validate:"dive"`
}

// UpdateCustomerRequest alteração parcial de cliente.
type UpdateCustomerRequest struct {
	TaxID     *string `json:"tax_id"`
	LegalName *string `json:"legal_name" validate:"omitempty,min=2,max=200"`
	TradeName *string `json:"trade_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Notes     *string `json:"notes"`
	IsActive  *bool   `json:"is_active"`
}

// CustomerListRequest filtros de listagem de clientes.
type CustomerListRequest struct {
	PageRequest
	Search string `query:"search"`
}

// AddressResponse saída de endereço.
type AddressResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Street     string `json:"street"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code,omitempty"`
	IsPrimary  bool   `json:"is_primary"`
}

// ContactResponse saída de contato.
type ContactResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// CustomerResponse saída de cliente com endereços e contatos.
type CustomerResponse struct {
	ID        string            `json:"id"`
	TaxID     string            `json:"tax_id"`
	LegalName string            `json:"legal_name"`
	TradeName string            `json:"trade_name,omitempty"`
	Email     string            `json:"email,omitempty"`
	Phone     string            `json:"phone,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	IsActive  bool              `json:"is_active"`
	Addresses []AddressResponse `json:"addresses"`
	Contacts  []ContactResponse `json:"contacts"`
	CreatedAt time.Time         `json:"created_at"`
}
