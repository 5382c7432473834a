package repository

import (
	"context"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// CategoryRepository define a porta de persistência para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Category, error)
	FindByName(ctx context.Context, organizationID, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, organizationID string, onlyActive bool) ([]*entity.Category, error)
	Delete(ctx context.Context, organizationID, id string) error
}
