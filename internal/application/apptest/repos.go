package apptest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
)

var (
	_ repository.OrganizationRepository   = orgRepo{}
	_ repository.CompanyRepository        = companyRepo{}
	_ repository.UserRepository           = userRepo{}
	_ repository.PasswordResetRepository  = resetRepo{}
	_ repository.CustomerRepository       = customerRepo{}
	_ repository.CategoryRepository       = categoryRepo{}
	_ repository.ProductRepository        = productRepo{}
	_ repository.CatalogRepository        = catalogRepo{}
	_ repository.PaymentMethodRepository  = paymentRepo{}
	_ repository.CommissionRuleRepository = ruleRepo{}
	_ repository.OrderRepository          = orderRepo{}
	_ repository.AuditLogRepository       = auditRepo{}
)

// ── Organizações ──────────────────────────────────────────────────────────────

type orgRepo struct{ s *Store }

func (r orgRepo) Create(_ context.Context, o *entity.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.orgs {
		if x.TaxID == o.TaxID {
			return domain.ErrDuplicate
		}
	}
	r.s.orgs[o.ID] = *o
	return nil
}

func (r orgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orgs[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r orgRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orgs {
		if o.TaxID == taxID {
			return &o, nil
		}
	}
	return nil, nil
}

func (r orgRepo) Update(_ context.Context, o *entity.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.orgs {
		if x.ID != o.ID && x.TaxID == o.TaxID {
			return domain.ErrDuplicate
		}
	}
	if _, ok := r.s.orgs[o.ID]; !ok {
		return domain.NotFound("organização")
	}
	r.s.orgs[o.ID] = *o
	return nil
}

func (r orgRepo) List(_ context.Context, limit, offset int) ([]*entity.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Organization
	for _, o := range r.s.orgs {
		o := o
		list = append(list, &o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── Empresas ──────────────────────────────────────────────────────────────────

type companyRepo struct{ s *Store }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.companies {
		if x.OrganizationID == c.OrganizationID && x.TaxID == c.TaxID && x.DeletedAt == nil {
			return domain.ErrDuplicate
		}
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r companyRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.companies[id]; ok && c.OrganizationID == organizationID && c.DeletedAt == nil {
		return &c, nil
	}
	return nil, nil
}

func (r companyRepo) GetByTaxID(_ context.Context, organizationID, taxID string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.OrganizationID == organizationID && c.TaxID == taxID && c.DeletedAt == nil {
			return &c, nil
		}
	}
	return nil, nil
}

func (r companyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.companies {
		if x.ID != c.ID && x.OrganizationID == c.OrganizationID && x.TaxID == c.TaxID && x.DeletedAt == nil {
			return domain.ErrDuplicate
		}
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r companyRepo) ListByOrganization(_ context.Context, organizationID string) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Company
	for _, c := range r.s.companies {
		if c.OrganizationID == organizationID && c.DeletedAt == nil {
			c := c
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r companyRepo) SoftDelete(_ context.Context, organizationID, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok || c.OrganizationID != organizationID || c.DeletedAt != nil {
		return domain.NotFound("empresa")
	}
	c.DeletedAt, c.IsActive, c.UpdatedAt = &at, false, at
	r.s.companies[id] = c
	return nil
}

func (r companyRepo) ListLinkedToUser(_ context.Context, userID string) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Company
	for id := range r.s.links[userID] {
		if c, ok := r.s.companies[id]; ok && c.Available() {
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// ── Usuários ──────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if strings.EqualFold(x.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.ID != u.ID && strings.EqualFold(x.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	cur, ok := r.s.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	cur.Email, cur.FullName, cur.Phone, cur.IsActive, cur.UpdatedAt = u.Email, u.FullName, u.Phone, u.IsActive, u.UpdatedAt
	r.s.users[u.ID] = cur
	return nil
}

func (r userRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.users[id]
	u.PasswordHash = hash
	r.s.users[id] = u
	return nil
}

func (r userRepo) UpdateLastAccess(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.users[id]
	u.LastAccessAt = &at
	r.s.users[id] = u
	return nil
}

func (r userRepo) ListByOrganization(_ context.Context, organizationID, role string) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.User
	for _, u := range r.s.users {
		if u.OrganizationID == organizationID && (role == "" || u.Role == role) {
			u := u
			list = append(list, &u)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FullName < list[j].FullName })
	return list, nil
}

func (r userRepo) LinkCompany(_ context.Context, l *entity.UserCompany) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.links[l.UserID] == nil {
		r.s.links[l.UserID] = map[string]time.Time{}
	}
	if _, ok := r.s.links[l.UserID][l.CompanyID]; ok {
		return domain.ErrDuplicate
	}
	r.s.links[l.UserID][l.CompanyID] = l.LinkedAt
	return nil
}

func (r userRepo) UnlinkCompany(_ context.Context, userID, companyID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.links[userID][companyID]; !ok {
		return false, nil
	}
	delete(r.s.links[userID], companyID)
	return true, nil
}

func (r userRepo) IsLinked(_ context.Context, userID, companyID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.links[userID][companyID]
	return ok, nil
}

func (r userRepo) ListLinkedCompanyIDs(_ context.Context, userID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for id := range r.s.links[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type resetRepo struct{ s *Store }

func (r resetRepo) Create(_ context.Context, p *entity.PasswordReset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.resets[p.Token] = *p
	return nil
}

func (r resetRepo) Get(_ context.Context, token string) (*entity.PasswordReset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.resets[token]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r resetRepo) Delete(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.resets, token)
	return nil
}

func (r resetRepo) DeleteByUser(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, p := range r.s.resets {
		if p.UserID == userID {
			delete(r.s.resets, k)
		}
	}
	return nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type customerRepo struct{ s *Store }

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.customers {
		if x.OrganizationID == c.OrganizationID && x.TaxID == c.TaxID {
			return domain.ErrDuplicate
		}
	}
	stored := *c
	stored.Addresses, stored.Contacts = nil, nil
	r.s.customers[c.ID] = stored
	for _, a := range c.Addresses {
		a.CustomerID = c.ID
		r.s.addresses[a.ID] = a
	}
	for _, ct := range c.Contacts {
		ct.CustomerID = c.ID
		r.s.contacts[ct.ID] = ct
	}
	return nil
}

// load monta o cliente com endereços e contatos; chamar com o lock.
func (r customerRepo) load(c entity.Customer) *entity.Customer {
	c.Addresses = r.addressesOf(c.ID)
	c.Contacts = []entity.Contact{}
	for _, ct := range r.s.contacts {
		if ct.CustomerID == c.ID {
			c.Contacts = append(c.Contacts, ct)
		}
	}
	sort.Slice(c.Contacts, func(i, j int) bool { return c.Contacts[i].Name < c.Contacts[j].Name })
	return &c
}

func (r customerRepo) addressesOf(customerID string) []entity.Address {
	list := []entity.Address{}
	for _, a := range r.s.addresses {
		if a.CustomerID == customerID {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].IsPrimary != list[j].IsPrimary {
			return list[i].IsPrimary
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

func (r customerRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.customers[id]; ok && c.OrganizationID == organizationID {
		return r.load(c), nil
	}
	return nil, nil
}

func (r customerRepo) GetByTaxID(_ context.Context, organizationID, taxID string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.OrganizationID == organizationID && c.TaxID == taxID {
			return r.load(c), nil
		}
	}
	return nil, nil
}

func (r customerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.customers {
		if x.ID != c.ID && x.OrganizationID == c.OrganizationID && x.TaxID == c.TaxID {
			return domain.ErrDuplicate
		}
	}
	stored := *c
	stored.Addresses, stored.Contacts = nil, nil
	r.s.customers[c.ID] = stored
	return nil
}

func (r customerRepo) List(_ context.Context, organizationID string, f repository.CustomerFilter) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(f.Search)
	var list []*entity.Customer
	for _, c := range r.s.customers {
		if c.OrganizationID != organizationID || (f.OnlyActive && !c.IsActive) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.LegalName+" "+c.TradeName+" "+c.TaxID), search) {
			continue
		}
		c := c
		c.Addresses = r.addressesOf(c.ID)
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LegalName < list[j].LegalName })
	return page(list, f.Limit, f.Offset), nil
}

func (r customerRepo) AddAddress(_ context.Context, a *entity.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.addresses[a.ID] = *a
	return nil
}

func (r customerRepo) GetAddress(_ context.Context, organizationID, id string) (*entity.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.addresses[id]
	if !ok || r.s.customers[a.CustomerID].OrganizationID != organizationID {
		return nil, nil
	}
	return &a, nil
}

func (r customerRepo) UpdateAddress(_ context.Context, a *entity.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.addresses[a.ID] = *a
	return nil
}

func (r customerRepo) DeleteAddress(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.addresses, id)
	return nil
}

func (r customerRepo) ListAddresses(_ context.Context, customerID string) ([]entity.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.addressesOf(customerID), nil
}

func (r customerRepo) ClearPrimary(_ context.Context, customerID, exceptID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, a := range r.s.addresses {
		if a.CustomerID == customerID && id != exceptID && a.IsPrimary {
			a.IsPrimary = false
			r.s.addresses[id] = a
		}
	}
	return nil
}

func (r customerRepo) AddContact(_ context.Context, c *entity.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.contacts[c.ID] = *c
	return nil
}

func (r customerRepo) GetContact(_ context.Context, organizationID, id string) (*entity.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contacts[id]
	if !ok || r.s.customers[c.CustomerID].OrganizationID != organizationID {
		return nil, nil
	}
	return &c, nil
}

func (r customerRepo) UpdateContact(_ context.Context, c *entity.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.contacts[c.ID] = *c
	return nil
}

func (r customerRepo) DeleteContact(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.contacts, id)
	return nil
}

// ── Categorias ────────────────────────────────────────────────────────────────

type categoryRepo struct{ s *Store }

func (r categoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.categories {
		if x.OrganizationID == c.OrganizationID && strings.EqualFold(x.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.categories[id]; ok && c.OrganizationID == organizationID {
		return &c, nil
	}
	return nil, nil
}

func (r categoryRepo) FindByName(_ context.Context, organizationID, name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.OrganizationID == organizationID && strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r categoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.categories {
		if x.ID != c.ID && x.OrganizationID == c.OrganizationID && strings.EqualFold(x.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) List(_ context.Context, organizationID string, onlyActive bool) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Category
	for _, c := range r.s.categories {
		if c.OrganizationID == organizationID && (!onlyActive || c.IsActive) {
			c := c
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r categoryRepo) Delete(_ context.Context, organizationID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok || c.OrganizationID != organizationID {
		return domain.NotFound("categoria")
	}
	delete(r.s.categories, id)
	return nil
}

// ── Produtos ──────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.products {
		if x.CompanyID == p.CompanyID && x.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	stored := *p
	stored.Variants = nil
	r.s.products[p.ID] = stored
	for _, v := range p.Variants {
		v.ProductID = p.ID
		if err := r.putVariant(v); err != nil {
			return err
		}
	}
	return nil
}

// putVariant grava a variação checando SKU e grade únicos; chamar com o lock.
func (r productRepo) putVariant(v entity.Variant) error {
	for _, x := range r.s.variants {
		if x.ID == v.ID {
			continue
		}
		if v.SKU != nil && x.SKU != nil && *x.SKU == *v.SKU {
			return domain.ErrDuplicate
		}
		if x.ProductID == v.ProductID && x.Size == v.Size && x.Color == v.Color {
			return domain.ErrDuplicate
		}
	}
	r.s.variants[v.ID] = v
	return nil
}

func (r productRepo) variantsOf(productID string) []entity.Variant {
	list := []entity.Variant{}
	for _, v := range r.s.variants {
		if v.ProductID == productID {
			list = append(list, v)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Size+list[i].Color < list[j].Size+list[j].Color })
	return list
}

func (r productRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	if c := r.s.companies[p.CompanyID]; c.OrganizationID != organizationID || c.DeletedAt != nil {
		return nil, nil
	}
	p.Variants = r.variantsOf(p.ID)
	return &p, nil
}

func (r productRepo) GetByCompanyAndCode(_ context.Context, companyID, code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.Code == code {
			p.Variants = r.variantsOf(p.ID)
			return &p, nil
		}
	}
	return nil, nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.products {
		if x.ID != p.ID && x.CompanyID == p.CompanyID && x.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	stored := *p
	stored.Variants = nil
	r.s.products[p.ID] = stored
	return nil
}

func (r productRepo) List(_ context.Context, organizationID string, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(f.Search)
	var list []*entity.Product
	for _, p := range r.s.products {
		c := r.s.companies[p.CompanyID]
		if c.OrganizationID != organizationID || c.DeletedAt != nil {
			continue
		}
		if (f.CompanyID != "" && p.CompanyID != f.CompanyID) || (f.CategoryID != "" && !ptrEq(p.CategoryID, f.CategoryID)) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Code+" "+p.Description), search) {
			continue
		}
		p := p
		p.Variants = r.variantsOf(p.ID)
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Description < list[j].Description })
	return page(list, f.Limit, f.Offset), nil
}

func (r productRepo) CreateVariant(_ context.Context, v *entity.Variant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.putVariant(*v)
}

func (r productRepo) GetVariant(_ context.Context, id string) (*entity.Variant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.variants[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r productRepo) FindVariant(_ context.Context, productID, size, color string) (*entity.Variant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.variants {
		if v.ProductID == productID && v.Size == size && v.Color == color {
			return &v, nil
		}
	}
	return nil, nil
}

func (r productRepo) UpdateVariant(_ context.Context, v *entity.Variant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.putVariant(*v)
}

func (r productRepo) DeleteVariant(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		for _, it := range o.Items {
			if ptrEq(it.VariantID, id) {
				v := r.s.variants[id]
				v.IsActive = false
				r.s.variants[id] = v
				return nil
			}
		}
	}
	delete(r.s.variants, id)
	return nil
}

func (r productRepo) CountActiveVariants(_ context.Context, productID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, v := range r.s.variants {
		if v.ProductID == productID && v.IsActive {
			n++
		}
	}
	return n, nil
}

func (r productRepo) IsProductActive(_ context.Context, productID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	return ok && p.IsActive, nil
}

func (r productRepo) AddPriceHistory(_ context.Context, h *entity.PriceHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.prices = append(r.s.prices, *h)
	return nil
}

func (r productRepo) ListPriceHistory(_ context.Context, productID string) ([]*entity.PriceHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PriceHistory
	for i := len(r.s.prices) - 1; i >= 0; i-- {
		if h := r.s.prices[i]; h.ProductID == productID {
			list = append(list, &h)
		}
	}
	return list, nil
}

// ── Catálogos ─────────────────────────────────────────────────────────────────

type catalogRepo struct{ s *Store }

func (r catalogRepo) Create(_ context.Context, c *entity.Catalog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.catalogs[c.ID] = *c
	return nil
}

func (r catalogRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Catalog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k, ok := r.s.catalogs[id]
	if !ok {
		return nil, nil
	}
	if c := r.s.companies[k.CompanyID]; c.OrganizationID != organizationID || c.DeletedAt != nil {
		return nil, nil
	}
	return &k, nil
}

func (r catalogRepo) Update(_ context.Context, c *entity.Catalog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.catalogs[c.ID] = *c
	return nil
}

func (r catalogRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.CatalogID == id {
			return fmt.Errorf("catálogo com pedidos: %w", domain.ErrConflict)
		}
	}
	delete(r.s.catalogs, id)
	for k, it := range r.s.items {
		if it.CatalogID == id {
			delete(r.s.items, k)
		}
	}
	return nil
}

func (r catalogRepo) ListByCompany(_ context.Context, organizationID, companyID string) ([]*entity.Catalog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.companies[companyID].OrganizationID != organizationID {
		return nil, nil
	}
	var list []*entity.Catalog
	for _, k := range r.s.catalogs {
		if k.CompanyID == companyID {
			k := k
			list = append(list, &k)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r catalogRepo) GetActiveByCompany(_ context.Context, companyID string) (*entity.Catalog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, k := range r.s.catalogs {
		if k.CompanyID == companyID && k.IsActive {
			return &k, nil
		}
	}
	return nil, nil
}

func (r catalogRepo) DeactivateOthers(_ context.Context, companyID, keepID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, k := range r.s.catalogs {
		if k.CompanyID == companyID && id != keepID && k.IsActive {
			k.IsActive = false
			r.s.catalogs[id] = k
		}
	}
	return nil
}

func (r catalogRepo) AddItem(_ context.Context, i *entity.CatalogItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.items {
		if x.CatalogID == i.CatalogID && x.ProductID == i.ProductID {
			return domain.ErrDuplicate
		}
	}
	r.s.items[i.ID] = *i
	return nil
}

func (r catalogRepo) GetItem(_ context.Context, catalogID, productID string) (*entity.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.CatalogID == catalogID && it.ProductID == productID {
			return &it, nil
		}
	}
	return nil, nil
}

func (r catalogRepo) GetItemByID(_ context.Context, id string) (*entity.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.items[id]; ok {
		return &it, nil
	}
	return nil, nil
}

func (r catalogRepo) UpdateItem(_ context.Context, i *entity.CatalogItem, expectedVersion int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[i.ID]
	if !ok || cur.Version != expectedVersion {
		return domain.ErrConflict
	}
	i.Version = cur.Version + 1
	r.s.items[i.ID] = *i
	return nil
}

func (r catalogRepo) RemoveItem(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, id)
	return nil
}

func (r catalogRepo) ListItems(_ context.Context, catalogID string, f repository.CatalogItemFilter) ([]*repository.CatalogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	products := productRepo{r.s}
	var list []*repository.CatalogEntry
	for _, it := range r.s.items {
		if it.CatalogID != catalogID {
			continue
		}
		p := r.s.products[it.ProductID]
		if f.OnlyActive && (!it.IsActive || !p.IsActive) {
			continue
		}
		if f.CategoryID != "" && !ptrEq(p.CategoryID, f.CategoryID) {
			continue
		}
		p.Variants = products.variantsOf(p.ID)
		list = append(list, &repository.CatalogEntry{Item: it, Product: p})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Product.Description < list[j].Product.Description })
	return list, nil
}

// ── Formas de pagamento ───────────────────────────────────────────────────────

type paymentRepo struct{ s *Store }

func (r paymentRepo) Create(_ context.Context, p *entity.PaymentMethod) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payments[p.ID] = *p
	return nil
}

func (r paymentRepo) GetVisible(_ context.Context, organizationID, id string) (*entity.PaymentMethod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok || (p.OrganizationID != nil && *p.OrganizationID != organizationID) {
		return nil, nil
	}
	return &p, nil
}

func (r paymentRepo) FindByName(_ context.Context, organizationID, name string) (*entity.PaymentMethod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if ptrEq(p.OrganizationID, organizationID) && strings.EqualFold(p.Name, name) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r paymentRepo) ListVisible(_ context.Context, organizationID string, onlyActive bool) ([]*entity.PaymentMethod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PaymentMethod
	for _, p := range r.s.payments {
		if (p.OrganizationID == nil || *p.OrganizationID == organizationID) && (!onlyActive || p.IsActive) {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r paymentRepo) Update(_ context.Context, p *entity.PaymentMethod) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.OrganizationID == nil {
		return domain.ErrForbidden
	}
	r.s.payments[p.ID] = *p
	return nil
}

// ── Regras de comissão ────────────────────────────────────────────────────────

type ruleRepo struct{ s *Store }

func (r ruleRepo) Create(_ context.Context, c *entity.CommissionRule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rules[c.ID] = *c
	return nil
}

func (r ruleRepo) GetByID(_ context.Context, organizationID, id string) (*entity.CommissionRule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.rules[id]; ok && c.OrganizationID == organizationID {
		return &c, nil
	}
	return nil, nil
}

func (r ruleRepo) Update(_ context.Context, c *entity.CommissionRule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rules[c.ID] = *c
	return nil
}

func (r ruleRepo) Delete(_ context.Context, organizationID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.rules[id]
	if !ok || c.OrganizationID != organizationID {
		return domain.NotFound("regra de comissão")
	}
	delete(r.s.rules, id)
	return nil
}

func (r ruleRepo) ListByOrganization(_ context.Context, organizationID string) ([]*entity.CommissionRule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.CommissionRule
	for _, c := range r.s.rules {
		if c.OrganizationID == organizationID {
			c := c
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Priority > list[j].Priority })
	return list, nil
}

func (r ruleRepo) ListCandidates(_ context.Context, organizationID, companyID, sellerID string) ([]*entity.CommissionRule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.CommissionRule
	for _, c := range r.s.rules {
		if c.OrganizationID != organizationID || !c.IsActive {
			continue
		}
		if (c.CompanyID != nil && *c.CompanyID != companyID) || (c.SellerID != nil && *c.SellerID != sellerID) {
			continue
		}
		c := c
		list = append(list, &c)
	}
	return list, nil
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[o.CustomerID]; !ok {
		return domain.ErrInvalidReference
	}
	stored := *o
	stored.Items = append([]entity.OrderItem(nil), o.Items...)
	for i := range stored.Items {
		stored.Items[i].OrderID = o.ID
	}
	r.s.orders[o.ID] = stored
	return nil
}

func (r orderRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.OrganizationID != organizationID {
		return nil, nil
	}
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	return &o, nil
}

func (r orderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Order
	for _, o := range r.s.orders {
		switch {
		case f.OrganizationID != "" && o.OrganizationID != f.OrganizationID,
			f.SellerID != "" && o.SellerID != f.SellerID,
			f.CompanyID != "" && o.CompanyID != f.CompanyID,
			f.CustomerID != "" && o.CustomerID != f.CustomerID,
			f.Status != "" && o.Status != f.Status,
			f.From != nil && o.CreatedAt.Before(*f.From),
			f.To != nil && !o.CreatedAt.Before(*f.To):
			continue
		}
		o := o
		o.Items = nil
		list = append(list, &o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, f.Limit, f.Offset), len(list), nil
}

func (r orderRepo) UpdatePricing(_ context.Context, o *entity.Order, expectedVersion int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[o.ID]
	if !ok || cur.Version != expectedVersion || cur.Status != entity.OrderPending {
		return domain.ErrConflict
	}
	cur.DiscountPercent, cur.Subtotal, cur.Total, cur.Notes = o.DiscountPercent, o.Subtotal, o.Total, o.Notes
	cur.Version++
	cur.UpdatedAt = o.UpdatedAt
	r.s.orders[o.ID] = cur
	o.Version = cur.Version
	return nil
}

func (r orderRepo) UpdateStatus(_ context.Context, orderID, status string, expectedVersion int, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[orderID]
	if !ok || cur.Version != expectedVersion {
		return domain.ErrConflict
	}
	cur.Status, cur.UpdatedAt = status, at
	cur.Version++
	r.s.orders[orderID] = cur
	return nil
}

func (r orderRepo) NextNumber(_ context.Context, companyID string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.counters[companyID]++
	return fmt.Sprintf("%06d", r.s.counters[companyID]), nil
}

func (r orderRepo) AddStatusHistory(_ context.Context, h *entity.OrderStatusHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.history = append(r.s.history, *h)
	return nil
}

func (r orderRepo) ListStatusHistory(_ context.Context, orderID string) ([]*entity.OrderStatusHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.OrderStatusHistory
	for _, h := range r.s.history {
		if h.OrderID == orderID {
			h := h
			list = append(list, &h)
		}
	}
	return list, nil
}

func (r orderRepo) SaveCommission(_ context.Context, c *entity.OrderCommission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cur, ok := r.s.commissions[c.OrderID]; ok && cur.SellerID == c.SellerID {
		cur.Amount = c.Amount
		r.s.commissions[c.OrderID] = cur
		return nil
	}
	r.s.commissions[c.OrderID] = *c
	return nil
}

func (r orderRepo) GetCommission(_ context.Context, orderID string) (*entity.OrderCommission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.commissions[orderID]; ok {
		return &c, nil
	}
	return nil, nil
}

// ── Auditoria ─────────────────────────────────────────────────────────────────

type auditRepo struct{ s *Store }

func (r auditRepo) Create(_ context.Context, l *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, *l)
	return nil
}

func (r auditRepo) List(_ context.Context, f repository.AuditFilter) ([]*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.AuditLog
	for i := len(r.s.audit) - 1; i >= 0; i-- {
		l := r.s.audit[i]
		switch {
		case f.OrganizationID != "" && !ptrEq(l.OrganizationID, f.OrganizationID),
			f.UserID != "" && !ptrEq(l.UserID, f.UserID),
			f.EntityType != "" && l.EntityType != f.EntityType,
			f.From != nil && l.CreatedAt.Before(*f.From),
			f.To != nil && !l.CreatedAt.Before(*f.To):
			continue
		}
		list = append(list, &l)
	}
	return page(list, f.Limit, f.Offset), nil
}
