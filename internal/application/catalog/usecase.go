// Package catalog cadastro de categorias, produtos, variações e catálogos de preço,
// a visão de catálogo do vendedor e a importação de planilhas.
package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// CatalogUseCase casos de uso de catálogo do gestor e do vendedor.
type CatalogUseCase struct {
	repos ports.Repos
	tx    ports.TxRunner
}

// NewCatalogUseCase constrói o caso de uso.
func NewCatalogUseCase(repos ports.Repos, tx ports.TxRunner) *CatalogUseCase {
	return &CatalogUseCase{repos: repos, tx: tx}
}

// company empresa disponível da organização do gestor.
func (uc *CatalogUseCase) company(ctx context.Context, tc tenant.Context, id string) (*entity.Company, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	c, err := uc.repos.Companies.GetByID(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("empresa")
	}
	return c, nil
}

func validatePrice(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.NewValidationError(field, "valor não pode ser negativo")
	}
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
