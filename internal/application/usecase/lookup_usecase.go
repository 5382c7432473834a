package usecase

import (
	"context"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/pkg/brdoc"
)

// LookupUseCase consultas cadastrais de CNPJ e CEP para preencher formulários.
type LookupUseCase struct {
	registry ports.RegistryLookup
}

func NewLookupUseCase(registry ports.RegistryLookup) *LookupUseCase {
	return &LookupUseCase{registry: registry}
}

// Company dados de um CNPJ. Documento malformado não chega ao serviço externo.
func (uc *LookupUseCase) Company(ctx context.Context, raw string) (*ports.CompanyRecord, error) {
	cnpj, ok := brdoc.CNPJ(raw)
	if !ok {
		return nil, domain.NewValidationError("cnpj", "CNPJ deve ter 14 dígitos")
	}
	return uc.registry.LookupTaxID(ctx, cnpj)
}

// Address endereço de um CEP.
func (uc *LookupUseCase) Address(ctx context.Context, raw string) (*ports.AddressRecord, error) {
	cep, ok := brdoc.CEP(raw)
	if !ok {
		return nil, domain.NewValidationError("cep", "CEP deve ter 8 dígitos")
	}
	return uc.registry.LookupPostalCode(ctx, cep)
}
