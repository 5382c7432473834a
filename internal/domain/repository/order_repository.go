package repository

import (
	"context"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// OrderFilter filtros de listagem de pedidos. Campos vazios não filtram.
type OrderFilter struct {
	OrganizationID string
	SellerID       string
	CompanyID      string
	CustomerID     string
	Status         string
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

// OrderRepository define a porta de persistência para Order, itens, histórico e comissão.
type OrderRepository interface {
	// Create persiste o pedido e seus itens.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, int, error)
	// UpdatePricing regrava desconto, totais e observações com checagem de versão (ErrConflict).
	UpdatePricing(ctx context.Context, order *entity.Order, expectedVersion int) error
	// UpdateStatus troca o status com checagem de versão (ErrConflict).
	UpdateStatus(ctx context.Context, orderID, status string, expectedVersion int, at time.Time) error
	NextNumber(ctx context.Context, companyID string) (string, error)

	AddStatusHistory(ctx context.Context, h *entity.OrderStatusHistory) error
	ListStatusHistory(ctx context.Context, orderID string) ([]*entity.OrderStatusHistory, error)

	// SaveCommission faz upsert do snapshot por (pedido, vendedor).
	SaveCommission(ctx context.Context, c *entity.OrderCommission) error
	GetCommission(ctx context.Context, orderID string) (*entity.OrderCommission, error)
}
