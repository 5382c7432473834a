package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/apptest"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

func newPaymentEnv() (*apptest.Store, *PaymentMethodUseCase) {
	s := apptest.Fixture()
	org1, org2 := "org1", "org2"
	s.PutPaymentMethod(entity.PaymentMethod{ID: "pix", Name: "PIX", IsActive: true})
	s.PutPaymentMethod(entity.PaymentMethod{ID: "bol", OrganizationID: &org1, Name: "Boleto 30/60", AllowsInstallments: true, MaxInstallments: 2, IsActive: true})
	s.PutPaymentMethod(entity.PaymentMethod{ID: "chq", OrganizationID: &org1, Name: "Cheque", IsActive: false})
	s.PutPaymentMethod(entity.PaymentMethod{ID: "out", OrganizationID: &org2, Name: "Permuta", IsActive: true})
	return s, NewPaymentMethodUseCase(s.Repos(), s.Tx())
}

func TestListPaymentMethods(t *testing.T) {
	_, uc := newPaymentEnv()
	ctx := context.Background()

	list, err := uc.List(ctx, manager)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = uc.List(ctx, seller)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, p := range list {
		assert.True(t, p.IsActive)
	}
}

func TestCreatePaymentMethod(t *testing.T) {
	_, uc := newPaymentEnv()
	ctx := context.Background()

	resp, err := uc.Create(ctx, manager, dto.PaymentMethodRequest{Name: "Cartão", AllowsInstallments: true, MaxInstallments: 6})
	require.NoError(t, err)
	assert.False(t, resp.Global)
	assert.True(t, resp.IsActive)

	_, err = uc.Create(ctx, manager, dto.PaymentMethodRequest{Name: "boleto 30/60"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	// nome de outra organização é livre
	_, err = uc.Create(ctx, manager, dto.PaymentMethodRequest{Name: "Permuta"})
	assert.NoError(t, err)

	_, err = uc.Create(ctx, manager, dto.PaymentMethodRequest{Name: "Dinheiro", MaxInstallments: 3})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdateDeletePaymentMethod_GlobalEhSomenteLeitura(t *testing.T) {
	s, uc := newPaymentEnv()
	ctx := context.Background()

	_, err := uc.Update(ctx, manager, "pix", dto.PaymentMethodRequest{Name: "PIX 2"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.True(t, errors.Is(uc.Delete(ctx, manager, "pix"), domain.ErrForbidden))

	_, err = uc.Update(ctx, manager, "out", dto.PaymentMethodRequest{Name: "X"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	resp, err := uc.Update(ctx, manager, "bol", dto.PaymentMethodRequest{Name: "Boleto 30/60/90", AllowsInstallments: true, MaxInstallments: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.MaxInstallments)

	require.NoError(t, uc.Delete(ctx, manager, "bol"))
	pm, err := s.Repos().PaymentMethods.GetVisible(ctx, "org1", "bol")
	require.NoError(t, err)
	assert.False(t, pm.IsActive)
}
