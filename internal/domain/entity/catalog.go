package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Catalog lista de preços nomeada e com vigência de uma Company.
type Catalog struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	ValidFrom   *time.Time
	ValidTo     *time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CatalogItem preço base de um produto dentro de um catálogo. Um por (catálogo, produto).
type CatalogItem struct {
	ID        string
	CatalogID string
	ProductID string
	Price     decimal.Decimal
	IsActive  bool
	Version   int // controle otimista de concorrência
	CreatedAt time.Time
	UpdatedAt time.Time
}
