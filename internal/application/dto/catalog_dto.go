package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCatalogRequest entrada para criar um catálogo de preços.
type CreateCatalogRequest struct {
	CompanyID   string     `json:"company_id" validate:"required"`
	Name        string     `json:"name" validate:"required,min=2,max=150"`
	Description string     `json:"description"`
	ValidFrom   *time.Time `json:"valid_from"`
	ValidTo     *time.Time `json:"valid_to"`
	IsActive    bool       `json:"is_active"`
}

// UpdateCatalogRequest alteração parcial de catálogo.
type UpdateCatalogRequest struct {
	Name         *string    `json:"name" validate:"omitempty,min=2,max=150"`
	Description  *string    `json:"description"`
	ValidFrom    *time.Time `json:"valid_from"`
	ValidTo      *time.Time `json:"valid_to"`
	ClearValidTo bool       `json:"clear_valid_to"`
	IsActive     *bool      `json:"is_active"`
}

// CatalogResponse saída de catálogo.
type CatalogResponse struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ValidFrom   *time.Time `json:"valid_from,omitempty"`
	ValidTo     *time.Time `json:"valid_to,omitempty"`
	IsActive    bool       `json:"is_active"`
}

// AddCatalogItemRequest inclusão de produto no catálogo.
type AddCatalogItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Price     decimal.Decimal `json:"price"`
}

// UpdateCatalogItemRequest alteração de preço/flag com versão otimista.
type UpdateCatalogItemRequest struct {
	Price    *decimal.Decimal `json:"price"`
	IsActive *bool            `json:"is_active"`
	Version  int              `json:"version" validate:"min=1"`
	Reason   string           `json:"reason"`
}

// CatalogItemResponse item de catálogo com o produto.
type CatalogItemResponse struct {
	ID        string          `json:"id"`
	CatalogID string          `json:"catalog_id"`
	Price     decimal.Decimal `json:"price"`
	IsActive  bool            `json:"is_active"`
	Version   int             `json:"version"`
	Product   ProductResponse `json:"product"`
}

// SellerCatalogVariant variação com o preço efetivo já calculado.
type SellerCatalogVariant struct {
	ID             string          `json:"id"`
	Size           string          `json:"size,omitempty"`
	Color          string          `json:"color,omitempty"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	Stock          int             `json:"stock"`
}

// SellerCatalogItem item do catálogo ativo visto pelo vendedor.
type SellerCatalogItem struct {
	ProductID   string                 `json:"product_id"`
	Code        string                 `json:"code"`
	Description string                 `json:"description"`
	CategoryID  *string                `json:"category_id,omitempty"`
	Unit        string                 `json:"unit,omitempty"`
	Price       decimal.Decimal        `json:"price"`
	Variants    []SellerCatalogVariant `json:"variants"`
}

// SellerCatalogResponse catálogo ativo da empresa selecionada.
type SellerCatalogResponse struct {
	CatalogID string              `json:"catalog_id"`
	Name      string              `json:"name"`
	Items     []SellerCatalogItem `json:"items"`
}

// ImportMapping colunas da planilha (letra "A" ou índice "0") para cada campo.
type ImportMapping struct {
	Code        string `json:"codigo" validate:"required"`
	Description string `json:"descricao" validate:"required"`
	Sizes       string `json:"tamanhos"`
	Colors      string `json:"cores"`
	Price       string `json:"preco" validate:"required"`
}

// ImportPreviewResponse primeiras linhas da planilha.
type ImportPreviewResponse struct {
	Rows [][]string `json:"rows"`
}

// ImportRowError erro de uma linha da planilha (linha numerada como no Excel).
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResponse resultado da importação.
type ImportResponse struct {
	ProcessedCount int              `json:"processed_count"`
	Errors         []ImportRowError `json:"errors"`
	ArchivedAt     string           `json:"archived_at,omitempty"`
}
