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
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
	"github.com/weslleycarlos/representacao-comercial/pkg/brdoc"
)

// CustomerUseCase clientes da organização. O gestor tem CRUD completo; o vendedor
// (com empresa ativa) lista, faz cadastro rápido e mantém endereços.
type CustomerUseCase struct {
	repos ports.Repos
	tx    ports.TxRunner
}

// NewCustomerUseCase constrói o caso de uso.
func NewCustomerUseCase(repos ports.Repos, tx ports.TxRunner) *CustomerUseCase {
	return &CustomerUseCase{repos: repos, tx: tx}
}

// List clientes da organização; o vendedor vê apenas os ativos.
func (uc *CustomerUseCase) List(ctx context.Context, tc tenant.Context, in dto.CustomerListRequest) ([]dto.CustomerResponse, error) {
	seller, err := uc.access(tc)
	if err != nil {
		return nil, err
	}
	in.DefaultPage(defaultPage, maxPage)
	list, err := uc.repos.Customers.List(ctx, tc.OrganizationID, repository.CustomerFilter{
		Search:     strings.TrimSpace(in.Search),
		OnlyActive: seller,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, len(list))
	for i, c := range list {
		out[i] = toCustomerResponse(c)
	}
	return out, nil
}

// Get cliente com endereços e contatos.
func (uc *CustomerUseCase) Get(ctx context.Context, tc tenant.Context, id string) (*dto.CustomerResponse, error) {
	if _, err := uc.access(tc); err != nil {
		return nil, err
	}
	c, err := uc.customer(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Create cadastra o cliente com endereços e contatos. CNPJ/CPF é único por organização.
// Serve também ao cadastro rápido do vendedor.
func (uc *CustomerUseCase) Create(ctx context.Context, tc tenant.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if _, err := uc.access(tc); err != nil {
		return nil, err
	}
	taxID, ok := brdoc.TaxID(in.TaxID)
	if !ok {
		return nil, domain.NewValidationError("tax_id", "CNPJ/CPF inválido")
	}
	existing, err := uc.repos.Customers.GetByTaxID(ctx, tc.OrganizationID, taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("cliente com documento %s já cadastrado: %w", taxID, domain.ErrDuplicate)
	}

	now := time.Now().UTC()
	c := &entity.Customer{
		ID:             uuid.New().String(),
		OrganizationID: tc.OrganizationID,
		TaxID:          taxID,
		LegalName:      strings.TrimSpace(in.LegalName),
		TradeName:      strings.TrimSpace(in.TradeName),
		Email:          normalizeEmail(in.Email),
		Phone:          in.Phone,
		Notes:          in.Notes,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	primary := false
	for i, a := range in.Addresses {
		addr, err := newAddress(c.ID, a, now)
		if err != nil {
			return nil, err
		}
		if addr.IsPrimary && primary {
			return nil, domain.NewValidationError(fmt.Sprintf("addresses[%d].is_primary", i), "apenas um endereço pode ser principal")
		}
		primary = primary || addr.IsPrimary
		c.Addresses = append(c.Addresses, *addr)
	}
	for _, ct := range in.Contacts {
		c.Contacts = append(c.Contacts, *newContact(c.ID, ct, now))
	}

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.Create(ctx, c); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("razao_social", c.LegalName)
		d.Set("documento", c.TaxID)
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "cliente", c.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Update alteração parcial (gestor).
func (uc *CustomerUseCase) Update(ctx context.Context, tc tenant.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	c, err := uc.customer(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	var d audit.Diff
	if in.TaxID != nil {
		taxID, ok := brdoc.TaxID(*in.TaxID)
		if !ok {
			return nil, domain.NewValidationError("tax_id", "CNPJ/CPF inválido")
		}
		if taxID != c.TaxID {
			other, err := uc.repos.Customers.GetByTaxID(ctx, tc.OrganizationID, taxID)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, fmt.Errorf("cliente com documento %s já cadastrado: %w", taxID, domain.ErrDuplicate)
			}
		}
		d.Add("documento", c.TaxID, taxID)
		c.TaxID = taxID
	}
	if in.LegalName != nil {
		d.Add("razao_social", c.LegalName, strings.TrimSpace(*in.LegalName))
		c.LegalName = strings.TrimSpace(*in.LegalName)
	}
	if in.TradeName != nil {
		d.Add("nome_fantasia", c.TradeName, strings.TrimSpace(*in.TradeName))
		c.TradeName = strings.TrimSpace(*in.TradeName)
	}
	if in.Email != nil {
		d.Add("email", c.Email, normalizeEmail(*in.Email))
		c.Email = normalizeEmail(*in.Email)
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	if in.IsActive != nil {
		d.Add("ativo", c.IsActive, *in.IsActive)
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now().UTC()

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.Update(ctx, c); err != nil {
			return err
		}
		if d.Empty() {
			return nil
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "cliente", c.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Delete desativa o cliente; pedidos antigos continuam referenciando-o.
func (uc *CustomerUseCase) Delete(ctx context.Context, tc tenant.Context, id string) error {
	if err := tc.Manager(); err != nil {
		return err
	}
	c, err := uc.customer(ctx, tc, id)
	if err != nil {
		return err
	}
	if !c.IsActive {
		return nil
	}
	c.IsActive = false
	c.UpdatedAt = time.Now().UTC()
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.Update(ctx, c); err != nil {
			return err
		}
		var d audit.Diff
		d.Add("ativo", true, false)
		return audit.Record(ctx, r.Audit, tc, entity.AuditDelete, "cliente", c.ID, d)
	})
}

// ── Endereços ─────────────────────────────────────────────────────────────────

// AddAddress adiciona endereço. Se vier como principal, o anterior deixa de ser.
func (uc *CustomerUseCase) AddAddress(ctx context.Context, tc tenant.Context, customerID string, in dto.AddressRequest) (*dto.AddressResponse, error) {
	if _, err := uc.access(tc); err != nil {
		return nil, err
	}
	c, err := uc.customer(ctx, tc, customerID)
	if err != nil {
		return nil, err
	}
	addr, err := newAddress(c.ID, in, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.AddAddress(ctx, addr); err != nil {
			return err
		}
		if addr.IsPrimary {
			if err := r.Customers.ClearPrimary(ctx, c.ID, addr.ID); err != nil {
				return err
			}
		}
		var d audit.Diff
		d.Set("endereco", addr.ID)
		d.Set("tipo", addr.Type)
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "cliente", c.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toAddressResponse(*addr)
	return &resp, nil
}

// UpdateAddress substitui os dados do endereço.
func (uc *CustomerUseCase) UpdateAddress(ctx context.Context, tc tenant.Context, customerID, addressID string, in dto.AddressRequest) (*dto.AddressResponse, error) {
	if _, err := uc.access(tc); err != nil {
		return nil, err
	}
	cur, err := uc.address(ctx, tc, customerID, addressID)
	if err != nil {
		return nil, err
	}
	addr, err := newAddress(customerID, in, cur.CreatedAt)
	if err != nil {
		return nil, err
	}
	addr.ID = cur.ID
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.UpdateAddress(ctx, addr); err != nil {
			return err
		}
		if addr.IsPrimary {
			if err := r.Customers.ClearPrimary(ctx, customerID, addr.ID); err != nil {
				return err
			}
		}
		var d audit.Diff
		d.Set("endereco", addr.ID)
		d.Add("logradouro", cur.Street, addr.Street)
		d.Add("cidade", cur.City, addr.City)
		d.Add("principal", cur.IsPrimary, addr.IsPrimary)
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "cliente", customerID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toAddressResponse(*addr)
	return &resp, nil
}

// DeleteAddress remove o endereço.
func (uc *CustomerUseCase) DeleteAddress(ctx context.Context, tc tenant.Context, customerID, addressID string) error {
	if _, err := uc.access(tc); err != nil {
		return err
	}
	if _, err := uc.address(ctx, tc, customerID, addressID); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.DeleteAddress(ctx, addressID); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("endereco_removido", addressID)
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "cliente", customerID, d)
	})
}

// ── Contatos (gestor) ─────────────────────────────────────────────────────────

func (uc *CustomerUseCase) AddContact(ctx context.Context, tc tenant.Context, customerID string, in dto.ContactRequest) (*dto.ContactResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	c, err := uc.customer(ctx, tc, customerID)
	if err != nil {
		return nil, err
	}
	ct := newContact(c.ID, in, time.Now().UTC())
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.AddContact(ctx, ct); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("contato", ct.Name)
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "cliente", c.ID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toContactResponse(*ct)
	return &resp, nil
}

func (uc *CustomerUseCase) UpdateContact(ctx context.Context, tc tenant.Context, customerID, contactID string, in dto.ContactRequest) (*dto.ContactResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	cur, err := uc.contact(ctx, tc, customerID, contactID)
	if err != nil {
		return nil, err
	}
	ct := newContact(customerID, in, cur.CreatedAt)
	ct.ID = cur.ID
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.UpdateContact(ctx, ct); err != nil {
			return err
		}
		var d audit.Diff
		d.Add("contato", cur.Name, ct.Name)
		d.Add("contato_email", cur.Email, ct.Email)
		if d.Empty() {
			return nil
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "cliente", customerID, d)
	})
	if err != nil {
		return nil, err
	}
	resp := toContactResponse(*ct)
	return &resp, nil
}

func (uc *CustomerUseCase) DeleteContact(ctx context.Context, tc tenant.Context, customerID, contactID string) error {
	if err := tc.Manager(); err != nil {
		return err
	}
	cur, err := uc.contact(ctx, tc, customerID, contactID)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.DeleteContact(ctx, cur.ID); err != nil {
			return err
		}
		var d audit.Diff
		d.Set("contato_removido", cur.Name)
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "cliente", customerID, d)
	})
}

// access gestor (ou super admin com organização) ou vendedor com empresa ativa.
// Devolve true quando o acesso é de vendedor.
func (uc *CustomerUseCase) access(tc tenant.Context) (bool, error) {
	if tc.Role == entity.RoleVendedor {
		_, err := tc.Seller()
		return true, err
	}
	return false, tc.Manager()
}

func (uc *CustomerUseCase) customer(ctx context.Context, tc tenant.Context, id string) (*entity.Customer, error) {
	c, err := uc.repos.Customers.GetByID(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente")
	}
	return c, nil
}

func (uc *CustomerUseCase) address(ctx context.Context, tc tenant.Context, customerID, id string) (*entity.Address, error) {
	a, err := uc.repos.Customers.GetAddress(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if a == nil || a.CustomerID != customerID {
		return nil, domain.NotFound("endereço")
	}
	return a, nil
}

func (uc *CustomerUseCase) contact(ctx context.Context, tc tenant.Context, customerID, id string) (*entity.Contact, error) {
	ct, err := uc.repos.Customers.GetContact(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if ct == nil || ct.CustomerID != customerID {
		return nil, domain.NotFound("contato")
	}
	return ct, nil
}

func newAddress(customerID string, in dto.AddressRequest, createdAt time.Time) (*entity.Address, error) {
	if !entity.ValidAddressType(in.Type) {
		return nil, domain.NewValidationError("type", "tipo de endereço deve ser entrega, cobranca ou comercial")
	}
	cep := ""
	if strings.TrimSpace(in.PostalCode) != "" {
		var ok bool
		if cep, ok = brdoc.CEP(in.PostalCode); !ok {
			return nil, domain.NewValidationError("postal_code", "CEP deve ter 8 dígitos")
		}
	}
	return &entity.Address{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Type:       in.Type,
		Street:     strings.TrimSpace(in.Street),
		Number:     in.Number,
		Complement: in.Complement,
		District:   in.District,
		City:       strings.TrimSpace(in.City),
		State:      strings.ToUpper(strings.TrimSpace(in.State)),
		PostalCode: cep,
		IsPrimary:  in.IsPrimary,
		CreatedAt:  createdAt,
	}, nil
}

func newContact(customerID string, in dto.ContactRequest, createdAt time.Time) *entity.Contact {
	return &entity.Contact{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Name:       strings.TrimSpace(in.Name),
		Role:       in.Role,
		Email:      normalizeEmail(in.Email),
		Phone:      in.Phone,
		IsPrimary:  in.IsPrimary,
		CreatedAt:  createdAt,
	}
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	resp := dto.CustomerResponse{
		ID:        c.ID,
		TaxID:     c.TaxID,
		LegalName: c.LegalName,
		TradeName: c.TradeName,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		IsActive:  c.IsActive,
		Addresses: make([]dto.AddressResponse, len(c.Addresses)),
		Contacts:  make([]dto.ContactResponse, len(c.Contacts)),
		CreatedAt: c.CreatedAt,
	}
	for i, a := range c.Addresses {
		resp.Addresses[i] = toAddressResponse(a)
	}
	for i, ct := range c.Contacts {
		resp.Contacts[i] = toContactResponse(ct)
	}
	return resp
}

func toAddressResponse(a entity.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:         a.ID,
		Type:       a.Type,
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		IsPrimary:  a.IsPrimary,
	}
}

func toContactResponse(c entity.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Role:      c.Role,
		Email:     c.Email,
		Phone:     c.Phone,
		IsPrimary: c.IsPrimary,
	}
}
