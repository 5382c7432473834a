package postgres

import (
	"context"
	"fmt"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementação de CustomerRepository (pool ou tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, organization_id, tax_id, legal_name, trade_name, email, phone, notes, is_active,
	created_at, updated_at`

const addressColumns = `a.id, a.customer_id, a.type, a.street, a.number, a.complement, a.district, a.city,
	a.state, a.postal_code, a.is_primary, a.created_at`

const contactColumns = `ct.id, ct.customer_id, ct.name, ct.role, ct.email, ct.phone, ct.is_primary, ct.created_at`

func scanCustomer(row interface{ Scan(...any) error }) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.OrganizationID, &c.TaxID, &c.LegalName, &c.TradeName, &c.Email, &c.Phone, &c.Notes,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanAddress(row interface{ Scan(...any) error }) (*entity.Address, error) {
	var a entity.Address
	err := row.Scan(&a.ID, &a.CustomerID, &a.Type, &a.Street, &a.Number, &a.Complement, &a.District, &a.City,
		&a.State, &a.PostalCode, &a.IsPrimary, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanContact(row interface{ Scan(...any) error }) (*entity.Contact, error) {
	var c entity.Contact
	if err := row.Scan(&c.ID, &c.CustomerID, &c.Name, &c.Role, &c.Email, &c.Phone, &c.IsPrimary, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste o cliente. CNPJ repetido na organização: ErrDuplicate.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.OrganizationID, c.TaxID, c.LegalName, c.TradeName, c.Email, c.Phone, c.Notes, c.IsActive,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtém o cliente da organização com endereços e contatos.
func (r *CustomerRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND organization_id = $2`, id, organizationID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if c.Addresses, err = r.ListAddresses(ctx, c.ID); err != nil {
		return nil, err
	}
	if c.Contacts, err = r.listContacts(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByTaxID obtém o cliente pelo CNPJ dentro da organização (sem endereços).
func (r *CustomerRepo) GetByTaxID(ctx context.Context, organizationID, taxID string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE organization_id = $1 AND tax_id = $2`, organizationID, taxID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by tax_id: %w", err)
	}
	return c, nil
}

// Update atualiza o cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET tax_id = $3, legal_name = $4, trade_name = $5, email = $6, phone = $7, notes = $8,
			is_active = $9, updated_at = $10
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.OrganizationID, c.TaxID, c.LegalName, c.TradeName, c.Email, c.Phone, c.Notes, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// List lista clientes da organização com busca por razão social, fantasia ou CNPJ.
// Endereços são carregados para permitir a escolha de entrega/cobrança no pedido.
func (r *CustomerRepo) List(ctx context.Context, organizationID string, f repository.CustomerFilter) ([]*entity.Customer, error) {
	args := []any{organizationID}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE organization_id = $1`
	if f.OnlyActive {
		query += ` AND is_active`
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		query += fmt.Sprintf(` AND (legal_name ILIKE $%d OR trade_name ILIKE $%d OR tax_id ILIKE $%d)`, len(args), len(args), len(args))
	}
	query += ` ORDER BY legal_name`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	for _, c := range list {
		if c.Addresses, err = r.ListAddresses(ctx, c.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// AddAddress persiste um endereço.
func (r *CustomerRepo) AddAddress(ctx context.Context, a *entity.Address) error {
	query := `
		INSERT INTO customer_addresses (id, customer_id, type, street, number, complement, district, city,
			state, postal_code, is_primary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CustomerID, a.Type, a.Street, a.Number, a.Complement, a.District, a.City,
		a.State, a.PostalCode, a.IsPrimary, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

// GetAddress obtém o endereço se o cliente pertencer à organização.
func (r *CustomerRepo) GetAddress(ctx context.Context, organizationID, id string) (*entity.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM customer_addresses a
		JOIN customers c ON c.id = a.customer_id
		WHERE a.id = $1 AND c.organization_id = $2`
	a, err := scanAddress(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

// UpdateAddress atualiza o endereço.
func (r *CustomerRepo) UpdateAddress(ctx context.Context, a *entity.Address) error {
	query := `
		UPDATE customer_addresses SET type = $2, street = $3, number = $4, complement = $5, district = $6,
			city = $7, state = $8, postal_code = $9, is_primary = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Type, a.Street, a.Number, a.Complement, a.District, a.City, a.State, a.PostalCode, a.IsPrimary,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

// DeleteAddress remove o endereço.
func (r *CustomerRepo) DeleteAddress(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM customer_addresses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

// ListAddresses endereços do cliente, o principal primeiro.
func (r *CustomerRepo) ListAddresses(ctx context.Context, customerID string) ([]entity.Address, error) {
	rows, err := r.q.Query(ctx, `SELECT `+addressColumns+` FROM customer_addresses a
		WHERE a.customer_id = $1 ORDER BY a.is_primary DESC, a.created_at`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()
	list := []entity.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

// ClearPrimary desmarca o principal do cliente, exceto exceptID.
func (r *CustomerRepo) ClearPrimary(ctx context.Context, customerID, exceptID string) error {
	_, err := r.q.Exec(ctx, `UPDATE customer_addresses SET is_primary = FALSE
		WHERE customer_id = $1 AND is_primary AND id::text <> $2`, customerID, exceptID)
	if err != nil {
		return fmt.Errorf("clear primary address: %w", err)
	}
	return nil
}

// AddContact persiste um contato.
func (r *CustomerRepo) AddContact(ctx context.Context, c *entity.Contact) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customer_contacts (id, customer_id, name, role, email, phone, is_primary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.CustomerID, c.Name, c.Role, c.Email, c.Phone, c.IsPrimary, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetContact obtém o contato se o cliente pertencer à organização.
func (r *CustomerRepo) GetContact(ctx context.Context, organizationID, id string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM customer_contacts ct
		JOIN customers c ON c.id = ct.customer_id
		WHERE ct.id = $1 AND c.organization_id = $2`
	c, err := scanContact(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// UpdateContact atualiza o contato.
func (r *CustomerRepo) UpdateContact(ctx context.Context, c *entity.Contact) error {
	_, err := r.q.Exec(ctx, `
		UPDATE customer_contacts SET name = $2, role = $3, email = $4, phone = $5, is_primary = $6
		WHERE id = $1`, c.ID, c.Name, c.Role, c.Email, c.Phone, c.IsPrimary)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// DeleteContact remove o contato.
func (r *CustomerRepo) DeleteContact(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM customer_contacts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

func (r *CustomerRepo) listContacts(ctx context.Context, customerID string) ([]entity.Contact, error) {
	rows, err := r.q.Query(ctx, `SELECT `+contactColumns+` FROM customer_contacts ct
		WHERE ct.customer_id = $1 ORDER BY ct.is_primary DESC, ct.name`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	list := []entity.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}
