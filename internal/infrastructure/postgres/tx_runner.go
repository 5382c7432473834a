package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia a transação, executa fn com os repositórios ligados à tx e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos liga todos os repositórios ao mesmo Querier (pool ou tx).
func NewRepos(q Querier) ports.Repos {
	return ports.Repos{
		Organizations:   NewOrganizationRepository(q),
		Companies:       NewCompanyRepository(q),
		Users:           NewUserRepository(q),
		PasswordResets:  NewPasswordResetRepository(q),
		Customers:       NewCustomerRepository(q),
		Categories:      NewCategoryRepository(q),
		Products:        NewProductRepository(q),
		Catalogs:        NewCatalogRepository(q),
		PaymentMethods:  NewPaymentMethodRepository(q),
		CommissionRules: NewCommissionRuleRepository(q),
		Orders:          NewOrderRepository(q),
		Audit:           NewAuditLogRepository(q),
		Reports:         NewReportRepository(q),
	}
}
