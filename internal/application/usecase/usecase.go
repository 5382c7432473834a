// Package usecase cadastros administrativos: organizações, empresas, vendedores,
// clientes, formas de pagamento, regras de comissão, auditoria e consultas externas.
package usecase

import (
	"strings"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/pkg/brdoc"
)

const (
	defaultPage = 50
	maxPage     = 500
)

// cnpj normaliza para dígitos e exige 14.
func cnpj(field, s string) (string, error) {
	d, ok := brdoc.CNPJ(s)
	if !ok {
		return "", domain.NewValidationError(field, "CNPJ deve ter 14 dígitos")
	}
	return d, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
