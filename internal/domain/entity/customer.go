package entity

import "time"

// Tipos de endereço.
const (
	AddressDelivery   = "entrega"
	AddressBilling    = "cobranca"
	AddressCommercial = "comercial"
)

// Customer cliente da organização (compartilhado entre as empresas representadas).
type Customer struct {
	ID             string
	OrganizationID string
	TaxID          string // CNPJ, único por organização
	LegalName      string
	TradeName      string
	Email          string
	Phone          string
	Notes          string
	IsActive       bool
	Addresses      []Address
	Contacts       []Contact
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Address endereço tipado de um cliente; no máximo um principal por cliente.
type Address struct {
	ID         string
	CustomerID string
	Type       string // entrega, cobranca, comercial
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string // UF
	PostalCode string // CEP (somente dígitos)
	IsPrimary  bool
	CreatedAt  time.Time
}

// Contact contato de um cliente.
type Contact struct {
	ID         string
	CustomerID string
	Name       string
	Role       string
	Email      string
	Phone      string
	IsPrimary  bool
	CreatedAt  time.Time
}

// ValidAddressType indica se t é um tipo de endereço conhecido.
func ValidAddressType(t string) bool {
	switch t {
	case AddressDelivery, AddressBilling, AddressCommercial:
		return true
	}
	return false
}
