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
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

func TestCreateCustomer_ComEnderecosEContatos(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCustomerUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	resp, err := uc.Create(ctx, manager, dto.CreateCustomerRequest{
		TaxID:     "06.990.590/0001-23",
		LegalName: "Boutique Praia Ltda",
		Email:     "Compras@Praia.com",
		Addresses: []dto.AddressRequest{
			{Type: entity.AddressDelivery, Street: "Av. Atlântica", City: "Florianópolis", State: "sc", PostalCode: "88010-000", IsPrimary: true},
			{Type: entity.AddressBilling, Street: "Rua B", City: "Florianópolis", State: "SC"},
		},
		Contacts: []dto.ContactRequest{{Name: "Ana", Role: "Compradora"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "06990590000123", resp.TaxID)
	assert.Equal(t, "compras@praia.com", resp.Email)
	require.Len(t, resp.Addresses, 2)
	assert.Equal(t, "SC", resp.Addresses[0].State)
	assert.Equal(t, "88010000", resp.Addresses[0].PostalCode)

	got, err := uc.Get(ctx, manager, resp.ID)
	require.NoError(t, err)
	assert.Len(t, got.Addresses, 2)
	assert.Len(t, got.Contacts, 1)

	// mesmo documento de cli1
	_, err = uc.Create(ctx, manager, dto.CreateCustomerRequest{TaxID: "45997418000153", LegalName: "Cópia"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCreateCustomer_Validacoes(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCustomerUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	cases := []struct {
		name  string
		in    dto.CreateCustomerRequest
		field string
	}{
		{"documento curto", dto.CreateCustomerRequest{TaxID: "123", LegalName: "X"}, "tax_id"},
		{"tipo de endereço", dto.CreateCustomerRequest{TaxID: "12345678901", LegalName: "X",
			Addresses: []dto.AddressRequest{{Type: "casa", Street: "R", City: "C", State: "PR"}}}, "type"},
		{"CEP", dto.CreateCustomerRequest{TaxID: "12345678901", LegalName: "X",
			Addresses: []dto.AddressRequest{{Type: entity.AddressDelivery, Street: "R", City: "C", State: "PR", PostalCode: "123"}}}, "postal_code"},
		{"dois principais", dto.CreateCustomerRequest{TaxID: "12345678901", LegalName: "X",
			Addresses: []dto.AddressRequest{
				{Type: entity.AddressDelivery, Street: "R", City: "C", State: "PR", IsPrimary: true},
				{Type: entity.AddressBilling, Street: "R", City: "C", State: "PR", IsPrimary: true},
			}}, "addresses[1].is_primary"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, manager, tc.in)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestAddAddress_PrincipalUnico(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCustomerUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	addr, err := uc.AddAddress(ctx, seller, "cli1", dto.AddressRequest{
		Type: entity.AddressCommercial, Street: "Rua Nova", City: "Curitiba", State: "PR", IsPrimary: true,
	})
	require.NoError(t, err)
	assert.True(t, addr.IsPrimary)

	got, err := uc.Get(ctx, manager, "cli1")
	require.NoError(t, err)
	primary := 0
	for _, a := range got.Addresses {
		if a.IsPrimary {
			primary++
			assert.Equal(t, addr.ID, a.ID)
		}
	}
	assert.Equal(t, 1, primary)
}

func TestUpdateAndDeleteAddress(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCustomerUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	resp, err := uc.UpdateAddress(ctx, seller, "cli1", "end1", dto.AddressRequest{
		Type: entity.AddressDelivery, Street: "Rua A", Number: "20", City: "Curitiba", State: "PR", IsPrimary: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "end1", resp.ID)
	assert.Equal(t, "20", resp.Number)

	_, err = uc.UpdateAddress(ctx, seller, "cli2", "end1", dto.AddressRequest{Type: entity.AddressDelivery, Street: "R", City: "C", State: "PR"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, uc.DeleteAddress(ctx, seller, "cli1", "end1"))
	got, err := uc.Get(ctx, manager, "cli1")
	require.NoError(t, err)
	assert.Empty(t, got.Addresses)
}

func TestCustomer_Contatos(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCustomerUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	ct, err := uc.AddContact(ctx, manager, "cli1", dto.ContactRequest{Name: "Bruno", Email: "BRUNO@loja.com"})
	require.NoError(t, err)
	assert.Equal(t, "bruno@loja.com", ct.Email)

	upd, err := uc.UpdateContact(ctx, manager, "cli1", ct.ID, dto.ContactRequest{Name: "Bruno Lima"})
	require.NoError(t, err)
	assert.Equal(t, ct.ID, upd.ID)

	_, err = uc.AddContact(ctx, seller, "cli1", dto.ContactRequest{Name: "X"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	require.NoError(t, uc.DeleteContact(ctx, manager, "cli1", ct.ID))
	err = uc.DeleteContact(ctx, manager, "cli1", ct.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCustomer_VendedorEIsolamento(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCustomerUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	inactive := false
	_, err := uc.Update(ctx, manager, "cli1", dto.UpdateCustomerRequest{IsActive: &inactive})
	require.NoError(t, err)

	list, err := uc.List(ctx, seller, dto.CustomerListRequest{})
	require.NoError(t, err)
	assert.Empty(t, list, "vendedor não vê clientes inativos")

	list, err = uc.List(ctx, manager, dto.CustomerListRequest{Search: "centro"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = uc.Get(ctx, other, "cli1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	noCompany := tenant.Context{UserID: "v1", OrganizationID: "org1", Role: entity.RoleVendedor}
	_, err = uc.List(ctx, noCompany, dto.CustomerListRequest{})
	assert.True(t, errors.Is(err, domain.ErrNoActiveCompany))

	name := "X"
	_, err = uc.Update(ctx, seller, "cli1", dto.UpdateCustomerRequest{LegalName: &name})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestDeleteCustomer_Desativa(t *testing.T) {
	s := apptest.Fixture()
	uc := NewCustomerUseCase(s.Repos(), s.Tx())
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, manager, "cli1"))
	got, err := uc.Get(ctx, manager, "cli1")
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
