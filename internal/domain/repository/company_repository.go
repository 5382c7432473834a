package repository

import (
	"context"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// CompanyRepository define a porta de persistência para Company (DIP).
// Toda leitura recebe o organizationID do usuário: empresa de outro tenant é tratada como inexistente.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Company, error)
	GetByTaxID(ctx context.Context, organizationID, taxID string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Company, error)
	SoftDelete(ctx context.Context, organizationID, id string, at time.Time) error
	// ListLinkedToUser devolve as empresas ativas vinculadas ao vendedor.
	ListLinkedToUser(ctx context.Context, userID string) ([]*entity.Company, error)
}
