package repository

import (
	"context"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// OrganizationRepository define a porta de persistência para Organization (DIP).
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) error
	List(ctx context.Context, limit, offset int) ([]*entity.Organization, error)
}
