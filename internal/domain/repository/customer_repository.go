package repository

import (
	"context"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// CustomerFilter filtros de listagem de clientes.
type CustomerFilter struct {
	Search     string // razão social, fantasia ou CNPJ
	OnlyActive bool
	Limit      int
	Offset     int
}

// CustomerRepository define a porta de persistência para Customer, Address e Contact.
// GetByID devolve o cliente com endereços e contatos já carregados.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Customer, error)
	GetByTaxID(ctx context.Context, organizationID, taxID string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, organizationID string, f CustomerFilter) ([]*entity.Customer, error)

	AddAddress(ctx context.Context, addr *entity.Address) error
	GetAddress(ctx context.Context, organizationID, id string) (*entity.Address, error)
	UpdateAddress(ctx context.Context, addr *entity.Address) error
	DeleteAddress(ctx context.Context, id string) error
	ListAddresses(ctx context.Context, customerID string) ([]entity.Address, error)
	// ClearPrimary desmarca o endereço principal do cliente, exceto exceptID.
	ClearPrimary(ctx context.Context, customerID, exceptID string) error

	AddContact(ctx context.Context, contact *entity.Contact) error
	GetContact(ctx context.Context, organizationID, id string) (*entity.Contact, error)
	UpdateContact(ctx context.Context, contact *entity.Contact) error
	DeleteContact(ctx context.Context, id string) error
}
