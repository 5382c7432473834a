package apptest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// Seed helpers para montar cenários. Gravam direto no Store, sem auditoria.

func (s *Store) PutOrganization(o entity.Organization) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.SubscriptionStatus == "" {
		o.SubscriptionStatus = entity.SubscriptionActive
	}
	s.orgs[o.ID] = o
}

func (s *Store) PutCompany(c entity.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.ID] = c
}

func (s *Store) PutUser(u entity.User, companyIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	for _, id := range companyIDs {
		if s.links[u.ID] == nil {
			s.links[u.ID] = map[string]time.Time{}
		}
		s.links[u.ID][id] = time.Now()
	}
}

func (s *Store) PutCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range c.Addresses {
		a.CustomerID = c.ID
		s.addresses[a.ID] = a
	}
	for _, ct := range c.Contacts {
		ct.CustomerID = c.ID
		s.contacts[ct.ID] = ct
	}
	c.Addresses, c.Contacts = nil, nil
	s.customers[c.ID] = c
}

func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range p.Variants {
		v.ProductID = p.ID
		s.variants[v.ID] = v
	}
	p.Variants = nil
	s.products[p.ID] = p
}

func (s *Store) PutCatalog(c entity.Catalog, items ...entity.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogs[c.ID] = c
	for _, it := range items {
		it.CatalogID = c.ID
		s.items[it.ID] = it
	}
}

func (s *Store) PutPaymentMethod(p entity.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID] = p
}

func (s *Store) PutRule(r entity.CommissionRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[r.ID] = r
}

func (s *Store) PutOrder(o entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

func (s *Store) PutCommission(c entity.OrderCommission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commissions[c.OrderID] = c
}

// Order devolve o pedido gravado (zero se ausente).
func (s *Store) Order(id string) entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

// Commission devolve a comissão gravada do pedido.
func (s *Store) Commission(orderID string) (entity.OrderCommission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.commissions[orderID]
	return c, ok
}

// Dec atalho para decimal a partir de texto.
func Dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// Fixture cenário padrão: organização org1 com empresa emp1 (comissão padrão 5%),
// gestor g1, vendedor v1 vinculado a emp1, cliente cli1 com endereço de entrega end1
// e organização org2 com empresa emp2 e cliente cli2 para testes de isolamento.
func Fixture() *Store {
	s := NewStore()
	now := time.Now().UTC()
	s.PutOrganization(entity.Organization{ID: "org1", Name: "Org Um", TaxID: "11222333000181", CreatedAt: now})
	s.PutOrganization(entity.Organization{ID: "org2", Name: "Org Dois", TaxID: "11444777000161", CreatedAt: now})
	s.PutCompany(entity.Company{ID: "emp1", OrganizationID: "org1", Name: "Malhas Sul", TaxID: "12345678000195",
		DefaultCommissionPercent: Dec("5"), IsActive: true, CreatedAt: now})
	s.PutCompany(entity.Company{ID: "emp2", OrganizationID: "org2", Name: "Outra", TaxID: "98765432000198",
		DefaultCommissionPercent: Dec("3"), IsActive: true, CreatedAt: now})
	s.PutUser(entity.User{ID: "adm", Email: "admin@repcom.com.br", PasswordHash: "hash:admin123", FullName: "Admin",
		Role: entity.RoleSuperAdmin, IsActive: true})
	s.PutUser(entity.User{ID: "g1", OrganizationID: "org1", Email: "gestor@org1.com", PasswordHash: "hash:senha123",
		FullName: "Gestora Um", Role: entity.RoleGestor, IsActive: true})
	s.PutUser(entity.User{ID: "v1", OrganizationID: "org1", Email: "vendedor@org1.com", PasswordHash: "hash:senha123",
		FullName: "Vendedor Um", Role: entity.RoleVendedor, IsActive: true}, "emp1")
	s.PutUser(entity.User{ID: "v2", OrganizationID: "org2", Email: "vendedor@org2.com", PasswordHash: "hash:senha123",
		FullName: "Vendedor Dois", Role: entity.RoleVendedor, IsActive: true}, "emp2")
	s.PutCustomer(entity.Customer{ID: "cli1", OrganizationID: "org1", TaxID: "45997418000153", LegalName: "Loja Centro Ltda",
		Email: "compras@lojacentro.com", IsActive: true, CreatedAt: now,
		Addresses: []entity.Address{{ID: "end1", Type: entity.AddressDelivery, Street: "Rua A", Number: "10",
			City: "Curitiba", State: "PR", PostalCode: "80010000", IsPrimary: true, CreatedAt: now}}})
	s.PutCustomer(entity.Customer{ID: "cli2", OrganizationID: "org2", TaxID: "45997418000153", LegalName: "Cliente Org2",
		IsActive: true, CreatedAt: now})
	return s
}
