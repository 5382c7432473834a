package repository

import (
	"context"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// CommissionRuleRepository define a porta de persistência para CommissionRule.
type CommissionRuleRepository interface {
	Create(ctx context.Context, rule *entity.CommissionRule) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.CommissionRule, error)
	Update(ctx context.Context, rule *entity.CommissionRule) error
	Delete(ctx context.Context, organizationID, id string) error
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.CommissionRule, error)
	// ListCandidates devolve as regras ativas cujo escopo (empresa/vendedor) casa com o pedido.
	// A vigência é avaliada pelo resolvedor de comissão.
	ListCandidates(ctx context.Context, organizationID, companyID, sellerID string) ([]*entity.CommissionRule, error)
}
