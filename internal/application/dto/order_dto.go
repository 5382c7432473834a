package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest item de pedido. O preço unitário é sempre resolvido no servidor.
type OrderItemRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	VariantID       *string         `json:"variant_id"`
	Quantity        int             `json:"quantity" validate:"required,min=1"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CreateOrderRequest entrada para criar um pedido na empresa ativa do vendedor.
type CreateOrderRequest struct {
	CatalogID         string             `json:"catalog_id" validate:"required"`
	CustomerID        string             `json:"customer_id" validate:"required"`
	DeliveryAddressID *string            `json:"delivery_address_id"`
	BillingAddressID  *string            `json:"billing_address_id"`
	PaymentMethodID   *string            `json:"payment_method_id"`
	DiscountPercent   decimal.Decimal    `json:"discount_percent"`
	Notes             string             `json:"notes"`
	Items             []OrderItemRequest `json:"items" validate:"dive"`
}

// UpdateOrderRequest alteração de pedido pendente (desconto e observações).
type UpdateOrderRequest struct {
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	Notes           *string          `json:"notes"`
	Version         int              `json:"version" validate:"min=1"`
}

// CancelOrderRequest cancelamento pelo vendedor.
type CancelOrderRequest struct {
	Reason  string `json:"reason" validate:"required,min=3"`
	Version int    `json:"version" validate:"min=1"`
}

// UpdateOrderStatusRequest transição de status pelo gestor.
type UpdateOrderStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Note    string `json:"note"`
	Version int    `json:"version" validate:"min=1"`
}

// OrderListRequest filtros de listagem de pedidos.
type OrderListRequest struct {
	PageRequest
	SellerID   string `query:"seller_id"`
	CompanyID  string `query:"company_id"`
	CustomerID string `query:"customer_id"`
	Status     string `query:"status"`
	From       string `query:"from"` // AAAA-MM-DD
	To         string `query:"to"`
}

// OrderItemResponse linha do pedido.
type OrderItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	VariantID       *string         `json:"variant_id,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// OrderCommissionResponse snapshot da comissão do pedido.
type OrderCommissionResponse struct {
	SellerID string          `json:"seller_id"`
	RuleID   *string         `json:"rule_id,omitempty"`
	Percent  decimal.Decimal `json:"percent"`
	Amount   decimal.Decimal `json:"amount"`
}

// OrderResponse saída de pedido.
type OrderResponse struct {
	ID                string                   `json:"id"`
	Number            string                   `json:"number"`
	CompanyID         string                   `json:"company_id"`
	SellerID          string                   `json:"seller_id"`
	CustomerID        string                   `json:"customer_id"`
	CatalogID         string                   `json:"catalog_id"`
	DeliveryAddressID *string                  `json:"delivery_address_id,omitempty"`
	BillingAddressID  *string                  `json:"billing_address_id,omitempty"`
	PaymentMethodID   *string                  `json:"payment_method_id,omitempty"`
	DiscountPercent   decimal.Decimal          `json:"discount_percent"`
	Subtotal          decimal.Decimal          `json:"subtotal"`
	Total             decimal.Decimal          `json:"total"`
	Status            string                   `json:"status"`
	Notes             string                   `json:"notes,omitempty"`
	Version           int                      `json:"version"`
	Items             []OrderItemResponse      `json:"items"`
	Commission        *OrderCommissionResponse `json:"commission,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderStatusHistoryResponse linha do histórico de status.
type OrderStatusHistoryResponse struct {
	FromStatus *string   `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	Note       string    `json:"note,omitempty"`
	ChangedBy  string    `json:"changed_by"`
	ChangedAt  time.Time `json:"changed_at"`
}
