// Package ports define os contratos de saída da camada de aplicação.
// Os adaptadores concretos (Postgres, SMTP, BrasilAPI, S3, excelize, maroto)
// vivem em internal/infrastructure e são injetados em cmd/api.
package ports

import (
	"context"
	"io"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// PasswordHasher gera e confere hashes de senha.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare devolve erro se a senha não corresponder ao hash.
	Compare(hash, password string) error
}

// TokenCodec emite e valida o token de sessão que carrega o contexto de tenant.
type TokenCodec interface {
	Issue(tc tenant.Context) (token string, expiresAt time.Time, err error)
	Parse(token string) (tenant.Context, error)
}

// Repos agrupa os repositórios ligados a uma mesma conexão ou transação.
type Repos struct {
	Organizations   repository.OrganizationRepository
	Companies       repository.CompanyRepository
	Users           repository.UserRepository
	PasswordResets  repository.PasswordResetRepository
	Customers       repository.CustomerRepository
	Categories      repository.CategoryRepository
	Products        repository.ProductRepository
	Catalogs        repository.CatalogRepository
	PaymentMethods  repository.PaymentMethodRepository
	CommissionRules repository.CommissionRuleRepository
	Orders          repository.OrderRepository
	Audit           repository.AuditLogRepository
	Reports         repository.ReportRepository
}

// TxRunner executa fn dentro de uma transação. Se fn retornar erro, tudo é revertido.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Notifier envia e-mails transacionais em segundo plano.
// Um erro aqui significa apenas que o envio não foi enfileirado.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, to []string, doc OrderDocument) error
	SendPasswordReset(ctx context.Context, to, name, link string) error
}

// RegistryLookup consultas cadastrais externas (CNPJ e CEP).
// Falhas: domain.ErrNotFound, domain.ErrTimeout, domain.ErrUnavailable.
type RegistryLookup interface {
	LookupTaxID(ctx context.Context, cnpj string) (*CompanyRecord, error)
	LookupPostalCode(ctx context.Context, cep string) (*AddressRecord, error)
}

// DocumentStore arquiva documentos (planilhas importadas, PDFs de pedido).
type DocumentStore interface {
	// Put grava o conteúdo em key e devolve a localização (URL ou URI).
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// OrderPDFGenerator renderiza o espelho do pedido em PDF.
type OrderPDFGenerator interface {
	Render(doc OrderDocument) ([]byte, error)
}

// Spreadsheet leitura de planilhas de importação e geração do modelo.
type Spreadsheet interface {
	// Rows devolve as linhas da primeira aba como texto.
	Rows(r io.Reader) ([][]string, error)
	Template() ([]byte, error)
}
