package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do pedido.
const (
	OrderPending   = "pendente"
	OrderConfirmed = "confirmado"
	OrderPicking   = "em_separacao"
	OrderShipped   = "enviado"
	OrderDelivered = "entregue"
	OrderCancelled = "cancelado"
)

// Order pedido de um vendedor para uma empresa representada.
type Order struct {
	ID                string
	OrganizationID    string
	CompanyID         string
	SellerID          string
	CustomerID        string
	CatalogID         string
	DeliveryAddressID *string
	BillingAddressID  *string
	PaymentMethodID   *string
	Number            string
	DiscountPercent   decimal.Decimal // 0–100, aplicado sobre a soma das linhas
	Subtotal          decimal.Decimal
	Total             decimal.Decimal
	Status            string
	Notes             string
	Version           int
	Items             []OrderItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderItem linha do pedido. UnitPrice é o preço capturado na criação (snapshot imutável).
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	VariantID       *string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	LineTotal       decimal.Decimal
}

// OrderStatusHistory linha do histórico de status (append-only).
type OrderStatusHistory struct {
	ID         string
	OrderID    string
	FromStatus *string // nil na criação
	ToStatus   string
	Note       string
	ChangedBy  string
	ChangedAt  time.Time
}

// OrderCommission snapshot da comissão do vendedor resolvida na criação do pedido.
type OrderCommission struct {
	ID        string
	OrderID   string
	SellerID  string
	RuleID    *string // nil quando veio do percentual padrão da empresa
	Percent   decimal.Decimal
	Amount    decimal.Decimal
	CreatedAt time.Time
}
