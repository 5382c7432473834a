package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRequest criação/alteração de categoria.
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryResponse saída de categoria.
type CategoryResponse struct {
	ID          string  `json:"id"`
	ParentID    *string `json:"parent_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// VariantRequest criação/alteração de variação (grade).
type VariantRequest struct {
	Size            string          `json:"size"`
	Color           string          `json:"color"`
	SKU             *string         `json:"sku"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	Stock           int             `json:"stock" validate:"min=0"`
	IsActive        *bool           `json:"is_active"`
}

// CreateProductRequest entrada para cadastrar um produto.
type CreateProductRequest struct {
	CompanyID   string           `json:"company_id" validate:"required"`
	CategoryID  *string          `json:"category_id"`
	Code        string           `json:"code" validate:"required,min=1,max=60"`
	Description string           `json:"description" validate:"required,min=1,max=255"`
	BasePrice   decimal.Decimal  `json:"base_price"`
	Unit        string           `json:"unit"`
	Variants    []VariantRequest `json:"variants" validate:"dive"`
}

// UpdateProductRequest alteração parcial de produto. Mudança de BasePrice gera histórico.
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id"`
	Code        *string          `json:"code" validate:"omitempty,min=1,max=60"`
	Description *string          `json:"description" validate:"omitempty,min=1,max=255"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	Unit        *string          `json:"unit"`
	IsActive    *bool            `json:"is_active"`
	Reason      string           `json:"reason"`
}

// ProductListRequest filtros de listagem de produtos.
type ProductListRequest struct {
	PageRequest
	CompanyID  string `query:"company_id"`
	CategoryID string `query:"category_id"`
	Search     string `query:"search"`
}

// VariantResponse saída de variação.
type VariantResponse struct {
	ID              string          `json:"id"`
	Size            string          `json:"size,omitempty"`
	Color           string          `json:"color,omitempty"`
	SKU             *string         `json:"sku,omitempty"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	Stock           int             `json:"stock"`
	IsActive        bool            `json:"is_active"`
}

// ProductResponse saída de produto com variações.
type ProductResponse struct {
	ID          string            `json:"id"`
	CompanyID   string            `json:"company_id"`
	CategoryID  *string           `json:"category_id,omitempty"`
	Code        string            `json:"code"`
	Description string            `json:"description"`
	BasePrice   decimal.Decimal   `json:"base_price"`
	Unit        string            `json:"unit,omitempty"`
	IsActive    bool              `json:"is_active"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// PriceHistoryResponse alteração de preço registrada.
type PriceHistoryResponse struct {
	ID            string          `json:"id"`
	CatalogID     *string         `json:"catalog_id,omitempty"`
	PreviousPrice decimal.Decimal `json:"previous_price"`
	NewPrice      decimal.Decimal `json:"new_price"`
	Reason        string          `json:"reason,omitempty"`
	ChangedBy     string          `json:"changed_by"`
	ChangedAt     time.Time       `json:"changed_at"`
}
