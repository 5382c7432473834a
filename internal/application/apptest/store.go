// Package apptest oferece repositórios em memória e dublês das portas da aplicação
// para testes de casos de uso, sem banco de dados nem serviços externos.
package apptest

import (
	"context"
	"sync"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// Store estado em memória compartilhado por todos os repositórios fake.
type Store struct {
	mu sync.Mutex

	orgs        map[string]entity.Organization
	companies   map[string]entity.Company
	users       map[string]entity.User
	links       map[string]map[string]time.Time // usuário → empresa → vinculado em
	resets      map[string]entity.PasswordReset
	customers   map[string]entity.Customer
	addresses   map[string]entity.Address
	contacts    map[string]entity.Contact
	categories  map[string]entity.Category
	products    map[string]entity.Product
	variants    map[string]entity.Variant
	prices      []entity.PriceHistory
	catalogs    map[string]entity.Catalog
	items       map[string]entity.CatalogItem
	payments    map[string]entity.PaymentMethod
	rules       map[string]entity.CommissionRule
	orders      map[string]entity.Order
	counters    map[string]int64
	history     []entity.OrderStatusHistory
	commissions map[string]entity.OrderCommission
	audit       []entity.AuditLog
}

// NewStore cria um Store vazio.
func NewStore() *Store {
	return &Store{
		orgs:        map[string]entity.Organization{},
		companies:   map[string]entity.Company{},
		users:       map[string]entity.User{},
		links:       map[string]map[string]time.Time{},
		resets:      map[string]entity.PasswordReset{},
		customers:   map[string]entity.Customer{},
		addresses:   map[string]entity.Address{},
		contacts:    map[string]entity.Contact{},
		categories:  map[string]entity.Category{},
		products:    map[string]entity.Product{},
		variants:    map[string]entity.Variant{},
		catalogs:    map[string]entity.Catalog{},
		items:       map[string]entity.CatalogItem{},
		payments:    map[string]entity.PaymentMethod{},
		rules:       map[string]entity.CommissionRule{},
		orders:      map[string]entity.Order{},
		counters:    map[string]int64{},
		commissions: map[string]entity.OrderCommission{},
	}
}

// Repos devolve o conjunto de repositórios ligado ao Store.
func (s *Store) Repos() ports.Repos {
	return ports.Repos{
		Organizations:   orgRepo{s},
		Companies:       companyRepo{s},
		Users:           userRepo{s},
		PasswordResets:  resetRepo{s},
		Customers:       customerRepo{s},
		Categories:      categoryRepo{s},
		Products:        productRepo{s},
		Catalogs:        catalogRepo{s},
		PaymentMethods:  paymentRepo{s},
		CommissionRules: ruleRepo{s},
		Orders:          orderRepo{s},
		Audit:           auditRepo{s},
		Reports:         reportRepo{s},
	}
}

// Tx TxRunner que executa fn direto sobre o Store. Erros de fn não desfazem escritas anteriores.
func (s *Store) Tx() ports.TxRunner { return txRunner{s} }

type txRunner struct{ s *Store }

func (t txRunner) Run(_ context.Context, fn func(r ports.Repos) error) error {
	return fn(t.s.Repos())
}

// AuditLogs devolve uma cópia dos registros de auditoria gravados.
func (s *Store) AuditLogs() []entity.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.AuditLog(nil), s.audit...)
}

// StatusHistory devolve o histórico gravado para o pedido.
func (s *Store) StatusHistory(orderID string) []entity.OrderStatusHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.OrderStatusHistory
	for _, h := range s.history {
		if h.OrderID == orderID {
			out = append(out, h)
		}
	}
	return out
}

// PriceHistory devolve o histórico de preços do produto.
func (s *Store) PriceHistory(productID string) []entity.PriceHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.PriceHistory
	for _, h := range s.prices {
		if h.ProductID == productID {
			out = append(out, h)
		}
	}
	return out
}

func strp(s string) *string { return &s }

func ptrEq(p *string, v string) bool { return p != nil && *p == v }
