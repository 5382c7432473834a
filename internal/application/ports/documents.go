package ports

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDocument dados do pedido já resolvidos para e-mail e PDF.
type OrderDocument struct {
	OrderID         string
	Number          string
	IssuedAt        time.Time
	Status          string
	CompanyName     string
	CustomerName    string
	CustomerTaxID   string
	SellerName      string
	SellerEmail     string
	PaymentMethod   string
	DeliveryAddress string
	Items           []OrderDocumentItem
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	Total           decimal.Decimal
	Notes           string
}

// DisplayNumber número do pedido ou, na falta dele, os 8 primeiros caracteres do ID.
func (d OrderDocument) DisplayNumber() string {
	if d.Number != "" {
		return d.Number
	}
	if len(d.OrderID) > 8 {
		return d.OrderID[:8]
	}
	return d.OrderID
}

// OrderDocumentItem linha do pedido para exibição.
type OrderDocumentItem struct {
	Code            string
	Description     string
	Variant         string // "M / Azul"; vazio quando o produto não tem grade
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	LineTotal       decimal.Decimal
}

// CompanyRecord dados cadastrais de um CNPJ.
type CompanyRecord struct {
	TaxID        string `json:"cnpj"`
	LegalName    string `json:"razao_social"`
	TradeName    string `json:"nome_fantasia"`
	Status       string `json:"situacao"`
	OpenedAt     string `json:"data_abertura"`
	Street       string `json:"logradouro"`
	Number       string `json:"numero"`
	Complement   string `json:"complemento"`
	District     string `json:"bairro"`
	City         string `json:"municipio"`
	State        string `json:"uf"`
	PostalCode   string `json:"cep"`
	Phone        string `json:"telefone"`
	Email        string `json:"email"`
	MainActivity string `json:"atividade_principal"`
}

// AddressRecord endereço de um CEP.
type AddressRecord struct {
	PostalCode string `json:"cep"`
	Street     string `json:"logradouro"`
	District   string `json:"bairro"`
	City       string `json:"cidade"`
	State      string `json:"uf"`
}
