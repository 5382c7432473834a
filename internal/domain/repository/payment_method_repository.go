package repository

import (
	"context"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// PaymentMethodRepository define a porta de persistência para PaymentMethod.
// "Visível" = global (sem organização) ou da própria organização.
type PaymentMethodRepository interface {
	Create(ctx context.Context, pm *entity.PaymentMethod) error
	GetVisible(ctx context.Context, organizationID, id string) (*entity.PaymentMethod, error)
	FindByName(ctx context.Context, organizationID, name string) (*entity.PaymentMethod, error)
	ListVisible(ctx context.Context, organizationID string, onlyActive bool) ([]*entity.PaymentMethod, error)
	Update(ctx context.Context, pm *entity.PaymentMethod) error
}
