package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// LineRequest linha solicitada pelo vendedor.
type LineRequest struct {
	ProductID       string
	VariantID       *string
	Quantity        int
	DiscountPercent decimal.Decimal
}

// PricedLine linha precificada; UnitPrice é o snapshot a gravar no item do pedido.
// LineTotal não é arredondado: o subtotal soma os valores exatos.
type PricedLine struct {
	ProductID       string
	VariantID       *string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	LineTotal       decimal.Decimal
}

// Quote resultado da precificação de um pedido. Subtotal e Total saem em centavos,
// com Total calculado sobre a soma exata das linhas.
type Quote struct {
	Lines           []PricedLine
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	Total           decimal.Decimal
}

// Engine precifica pedidos inteiros sobre um catálogo (tudo ou nada).
type Engine struct {
	resolver *Resolver
	variants VariantSource
}

// NewEngine constrói o motor de precificação.
func NewEngine(items ItemSource, variants VariantSource) *Engine {
	return &Engine{resolver: NewResolver(items, variants), variants: variants}
}

// Resolver expõe o resolvedor de preço usado pelo motor.
func (e *Engine) Resolver() *Resolver { return e.resolver }

// PriceOrder precifica items no catálogo catalogID e aplica orderDiscountPct sobre o subtotal.
// Qualquer referência não encontrada aborta a operação inteira; produto desativado conta como ausente.
func (e *Engine) PriceOrder(ctx context.Context, catalogID string, items []LineRequest, orderDiscountPct decimal.Decimal) (*Quote, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("itens", "o pedido deve conter ao menos um item")
	}
	if err := ValidatePercent("pc_desconto", orderDiscountPct); err != nil {
		return nil, err
	}
	lines := make([]PricedLine, 0, len(items))
	for i, it := range items {
		if it.Quantity <= 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("itens[%d].quantidade", i), "quantidade deve ser maior que zero")
		}
		if err := ValidatePercent(fmt.Sprintf("itens[%d].pc_desconto", i), it.DiscountPercent); err != nil {
			return nil, err
		}
		ok, err := e.variants.IsProductActive(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product status: %w", err)
		}
		if !ok {
			return nil, domain.NotFound("produto no catálogo")
		}
		active, err := e.variants.CountActiveVariants(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("count variants: %w", err)
		}
		variantID := it.VariantID
		if active > 0 && variantID == nil {
			return nil, domain.NewValidationError(fmt.Sprintf("itens[%d].id_variacao", i), "grade obrigatória: o produto possui variações ativas")
		}
		if active == 0 {
			variantID = nil
		}
		unit, err := e.resolver.ResolvePrice(ctx, catalogID, it.ProductID, variantID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, PricedLine{
			ProductID:       it.ProductID,
			VariantID:       variantID,
			Quantity:        it.Quantity,
			UnitPrice:       unit,
			DiscountPercent: it.DiscountPercent,
			LineTotal:       LineTotal(unit, it.Quantity, it.DiscountPercent),
		})
	}
	return Reprice(lines, orderDiscountPct), nil
}

// Reprice recalcula subtotal e total a partir de linhas já precificadas (snapshots).
func Reprice(lines []PricedLine, orderDiscountPct decimal.Decimal) *Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal)
	}
	return &Quote{
		Lines:           lines,
		Subtotal:        subtotal.Round(2),
		DiscountPercent: orderDiscountPct,
		Total:           ApplyDiscount(subtotal, orderDiscountPct).Round(2),
	}
}

// LineTotal = unitPrice * quantity * (1 - discountPct/100), sem arredondar.
func LineTotal(unitPrice decimal.Decimal, quantity int, discountPct decimal.Decimal) decimal.Decimal {
	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return ApplyDiscount(gross, discountPct)
}

// ApplyDiscount = amount * (1 - pct/100), sem arredondar.
func ApplyDiscount(amount, pct decimal.Decimal) decimal.Decimal {
	factor := hundred.Sub(pct)
	return amount.Mul(factor).Div(hundred)
}

// ValidatePercent exige 0 ≤ pct ≤ 100.
func ValidatePercent(field string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return domain.NewValidationError(field, "percentual deve estar entre 0 e 100")
	}
	return nil
}
