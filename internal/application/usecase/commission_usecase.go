package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/weslleycarlos/representacao-comercial/internal/application/audit"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/period"
	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/commission"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/pricing"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// CommissionRuleUseCase regras de comissão da organização e simulação do percentual.
type CommissionRuleUseCase struct {
	repos    ports.Repos
	tx       ports.TxRunner
	resolver *commission.Resolver
	now      func() time.Time
}

// NewCommissionRuleUseCase constrói o caso de uso.
func NewCommissionRuleUseCase(repos ports.Repos, tx ports.TxRunner) *CommissionRuleUseCase {
	return &CommissionRuleUseCase{
		repos:    repos,
		tx:       tx,
		resolver: commission.NewResolver(repos.CommissionRules, repos.Companies),
		now:      time.Now,
	}
}

func (uc *CommissionRuleUseCase) List(ctx context.Context, tc tenant.Context) ([]dto.CommissionRuleResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	list, err := uc.repos.CommissionRules.ListByOrganization(ctx, tc.OrganizationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommissionRuleResponse, len(list))
	for i, r := range list {
		out[i] = toRuleResponse(r)
	}
	return out, nil
}

func (uc *CommissionRuleUseCase) Get(ctx context.Context, tc tenant.Context, id string) (*dto.CommissionRuleResponse, error) {
	r, err := uc.rule(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	resp := toRuleResponse(r)
	return &resp, nil
}

// Create valida escopo (empresa e vendedor da organização), percentual e vigência.
func (uc *CommissionRuleUseCase) Create(ctx context.Context, tc tenant.Context, in dto.CommissionRuleRequest) (*dto.CommissionRuleResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, tc, in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rule := &entity.CommissionRule{
		ID:             uuid.New().String(),
		OrganizationID: tc.OrganizationID,
		CompanyID:      blankToNil(in.CompanyID),
		SellerID:       blankToNil(in.SellerID),
		Percent:        in.Percent,
		Priority:       in.Priority,
		ValidFrom:      in.ValidFrom,
		ValidTo:        in.ValidTo,
		IsActive:       boolOr(in.IsActive, true),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.CommissionRules.Create(ctx, rule); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("percentual", rule.Percent)
		d.Set("prioridade", rule.Priority)
		d.Set("empresa", deref(rule.CompanyID))
		d.Set("vendedor", deref(rule.SellerID))
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "regra_comissao", rule.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toRuleResponse(rule)
	return &resp, nil
}

// Update substitui escopo, percentual, prioridade e vigência da regra.
func (uc *CommissionRuleUseCase) Update(ctx context.Context, tc tenant.Context, id string, in dto.CommissionRuleRequest) (*dto.CommissionRuleResponse, error) {
	rule, err := uc.rule(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, tc, in); err != nil {
		return nil, err
	}
	var d audit.Diff
	d.Add("percentual", rule.Percent, in.Percent)
	d.Add("prioridade", rule.Priority, in.Priority)
	d.Add("empresa", deref(rule.CompanyID), deref(in.CompanyID))
	d.Add("vendedor", deref(rule.SellerID), deref(in.SellerID))
	rule.CompanyID = blankToNil(in.CompanyID)
	rule.SellerID = blankToNil(in.SellerID)
	rule.Percent = in.Percent
	rule.Priority = in.Priority
	rule.ValidFrom = in.ValidFrom
	rule.ValidTo = in.ValidTo
	if in.IsActive != nil {
		d.Add("ativo", rule.IsActive, *in.IsActive)
		rule.IsActive = *in.IsActive
	}
	rule.UpdatedAt = time.Now().UTC()

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.CommissionRules.Update(ctx, rule); err != nil {
			return err
		}
		if d.Empty() {
			return nil
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "regra_comissao", rule.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toRuleResponse(rule)
	return &resp, nil
}

func (uc *CommissionRuleUseCase) Delete(ctx context.Context, tc tenant.Context, id string) error {
	if err := tc.Manager(); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.CommissionRules.Delete(ctx, tc.OrganizationID, id); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditDelete, "regra_comissao", id, nil)
	})
}

// Preview resolve o percentual que um pedido teria para empresa, vendedor e data.
func (uc *CommissionRuleUseCase) Preview(ctx context.Context, tc tenant.Context, in dto.CommissionPreviewRequest) (*dto.CommissionPreviewResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	date := uc.now().UTC()
	if d, err := period.ParseDay("date", in.Date); err != nil {
		return nil, err
	} else if d != nil {
		date = *d
	}
	res, err := uc.resolver.Resolve(ctx, tc.OrganizationID, in.CompanyID, in.SellerID, date)
	if err != nil {
		return nil, err
	}
	return &dto.CommissionPreviewResponse{Percent: res.Percent, RuleID: res.RuleID, Source: res.Source}, nil
}

func (uc *CommissionRuleUseCase) validate(ctx context.Context, tc tenant.Context, in dto.CommissionRuleRequest) error {
	if err := pricing.ValidatePercent("percent", in.Percent); err != nil {
		return err
	}
	if in.ValidFrom != nil && in.ValidTo != nil && in.ValidTo.Before(*in.ValidFrom) {
		return domain.NewValidationError("valid_to", "fim da vigência anterior ao início")
	}
	if id := deref(in.CompanyID); id != "" {
		c, err := uc.repos.Companies.GetByID(ctx, tc.OrganizationID, id)
		if err != nil {
			return err
		}
		if c == nil || c.DeletedAt != nil {
			return domain.NotFound("empresa")
		}
	}
	if id := deref(in.SellerID); id != "" {
		u, err := uc.repos.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil || u.Role != entity.RoleVendedor || u.OrganizationID != tc.OrganizationID {
			return domain.NotFound("vendedor")
		}
	}
	return nil
}

func (uc *CommissionRuleUseCase) rule(ctx context.Context, tc tenant.Context, id string) (*entity.CommissionRule, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	r, err := uc.repos.CommissionRules.GetByID(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NotFound("regra de comissão")
	}
	return r, nil
}

func blankToNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}

func toRuleResponse(r *entity.CommissionRule) dto.CommissionRuleResponse {
	return dto.CommissionRuleResponse{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		SellerID:  r.SellerID,
		Percent:   r.Percent,
		Priority:  r.Priority,
		ValidFrom: r.ValidFrom,
		ValidTo:   r.ValidTo,
		IsActive:  r.IsActive,
	}
}
