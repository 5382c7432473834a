package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weslleycarlos/representacao-comercial/internal/application/audit"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// PaymentMethodUseCase formas de pagamento globais e da organização.
type PaymentMethodUseCase struct {
	repos ports.Repos
	tx    ports.TxRunner
}

// NewPaymentMethodUseCase constrói o caso de uso.
func NewPaymentMethodUseCase(repos ports.Repos, tx ports.TxRunner) *PaymentMethodUseCase {
	return &PaymentMethodUseCase{repos: repos, tx: tx}
}

// List formas visíveis. O vendedor recebe apenas as ativas.
func (uc *PaymentMethodUseCase) List(ctx context.Context, tc tenant.Context) ([]dto.PaymentMethodResponse, error) {
	onlyActive := false
	if tc.Role == entity.RoleVendedor {
		if _, err := tc.Seller(); err != nil {
			return nil, err
		}
		onlyActive = true
	} else if err := tc.Manager(); err != nil {
		return nil, err
	}
	list, err := uc.repos.PaymentMethods.ListVisible(ctx, tc.OrganizationID, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentMethodResponse, len(list))
	for i, p := range list {
		out[i] = toPaymentResponse(p)
	}
	return out, nil
}

// Create forma de pagamento da organização. Nome repetido na organização: ErrDuplicate.
func (uc *PaymentMethodUseCase) Create(ctx context.Context, tc tenant.Context, in dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := uc.checkName(ctx, tc, name, ""); err != nil {
		return nil, err
	}
	if err := checkInstallments(in); err != nil {
		return nil, err
	}
	org := tc.OrganizationID
	pm := &entity.PaymentMethod{
		ID:                 uuid.New().String(),
		OrganizationID:     &org,
		Name:               name,
		AllowsInstallments: in.AllowsInstallments,
		MaxInstallments:    in.MaxInstallments,
		IsActive:           boolOr(in.IsActive, true),
		CreatedAt:          time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.PaymentMethods.Create(ctx, pm); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("nome", pm.Name)
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "forma_pagamento", pm.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toPaymentResponse(pm)
	return &resp, nil
}

// Update altera uma forma da organização; as globais são somente leitura (ErrForbidden).
func (uc *PaymentMethodUseCase) Update(ctx context.Context, tc tenant.Context, id string, in dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	pm, err := uc.owned(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if !strings.EqualFold(name, pm.Name) {
		if err := uc.checkName(ctx, tc, name, pm.ID); err != nil {
			return nil, err
		}
	}
	if err := checkInstallments(in); err != nil {
		return nil, err
	}
	var d audit.Diff
	d.Add("nome", pm.Name, name)
	d.Add("parcelas", pm.MaxInstallments, in.MaxInstallments)
	pm.Name = name
	pm.AllowsInstallments = in.AllowsInstallments
	pm.MaxInstallments = in.MaxInstallments
	if in.IsActive != nil {
		d.Add("ativo", pm.IsActive, *in.IsActive)
		pm.IsActive = *in.IsActive
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.PaymentMethods.Update(ctx, pm); err != nil {
			return err
		}
		if d.Empty() {
			return nil
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "forma_pagamento", pm.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toPaymentResponse(pm)
	return &resp, nil
}

// Delete exclusão lógica (inativa).
func (uc *PaymentMethodUseCase) Delete(ctx context.Context, tc tenant.Context, id string) error {
	pm, err := uc.owned(ctx, tc, id)
	if err != nil {
		return err
	}
	if !pm.IsActive {
		return nil
	}
	pm.IsActive = false
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.PaymentMethods.Update(ctx, pm); err != nil {
			return err
		}
		var d audit.Diff
		d.Add("ativo", true, false)
		return audit.Record(ctx, r.Audit, tc, entity.AuditDelete, "forma_pagamento", pm.ID, d)
	})
}

func (uc *PaymentMethodUseCase) owned(ctx context.Context, tc tenant.Context, id string) (*entity.PaymentMethod, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	pm, err := uc.repos.PaymentMethods.GetVisible(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if pm == nil {
		return nil, domain.NotFound("forma de pagamento")
	}
	if pm.IsGlobal() {
		return nil, fmt.Errorf("forma de pagamento global não pode ser alterada: %w", domain.ErrForbidden)
	}
	return pm, nil
}

func (uc *PaymentMethodUseCase) checkName(ctx context.Context, tc tenant.Context, name, selfID string) error {
	other, err := uc.repos.PaymentMethods.FindByName(ctx, tc.OrganizationID, name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return fmt.Errorf("forma de pagamento %q já existe: %w", name, domain.ErrDuplicate)
	}
	return nil
}

func checkInstallments(in dto.PaymentMethodRequest) error {
	if !in.AllowsInstallments && in.MaxInstallments > 1 {
		return domain.NewValidationError("max_installments", "parcelamento não permitido para esta forma")
	}
	return nil
}

func toPaymentResponse(p *entity.PaymentMethod) dto.PaymentMethodResponse {
	return dto.PaymentMethodResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Global:             p.IsGlobal(),
		AllowsInstallments: p.AllowsInstallments,
		MaxInstallments:    p.MaxInstallments,
		IsActive:           p.IsActive,
	}
}
