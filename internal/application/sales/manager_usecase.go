package sales

import (
	"context"

	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/period"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/orderflow"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// List pedidos da organização com filtros de vendedor, empresa, cliente, status e período.
func (uc *OrderUseCase) List(ctx context.Context, tc tenant.Context, in dto.OrderListRequest) (*dto.OrderListResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	if in.Status != "" && !orderflow.Valid(in.Status) {
		return nil, domain.NewValidationError("status", "status de pedido desconhecido")
	}
	from, to, err := period.Bounds(in.From, in.To)
	if err != nil {
		return nil, err
	}
	in.DefaultPage(defaultPage, maxPage)
	return uc.list(ctx, repository.OrderFilter{
		OrganizationID: tc.OrganizationID,
		SellerID:       in.SellerID,
		CompanyID:      in.CompanyID,
		CustomerID:     in.CustomerID,
		Status:         in.Status,
		From:           from,
		To:             to,
		Limit:          in.Limit,
		Offset:         in.Offset,
	}, in.PageRequest)
}

// Get pedido da organização com itens e comissão.
func (uc *OrderUseCase) Get(ctx context.Context, tc tenant.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orgOrder(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, order)
}

// UpdateStatus move o pedido pela máquina de estados.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, tc tenant.Context, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	order, err := uc.orgOrder(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if err := uc.transition(ctx, tc, order, in.Status, in.Note, in.Version); err != nil {
		return nil, err
	}
	return uc.response(ctx, order)
}

// History histórico de status do pedido, em ordem cronológica.
func (uc *OrderUseCase) History(ctx context.Context, tc tenant.Context, id string) ([]dto.OrderStatusHistoryResponse, error) {
	order, err := uc.orgOrder(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repos.Orders.ListStatusHistory(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderStatusHistoryResponse, len(rows))
	for i, h := range rows {
		out[i] = toHistoryResponse(h)
	}
	return out, nil
}

func (uc *OrderUseCase) orgOrder(ctx context.Context, tc tenant.Context, id string) (*entity.Order, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	order, err := uc.repos.Orders.GetByID(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("pedido")
	}
	return order, nil
}

func toHistoryResponse(h *entity.OrderStatusHistory) dto.OrderStatusHistoryResponse {
	return dto.OrderStatusHistoryResponse{
		FromStatus: h.FromStatus,
		ToStatus:   h.ToStatus,
		Note:       h.Note,
		ChangedBy:  h.ChangedBy,
		ChangedAt:  h.ChangedAt,
	}
}
