// Package money formata valores monetários e percentuais no padrão brasileiro.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL formata v como "R$ 1.234,56".
func BRL(v decimal.Decimal) string {
	return "R$ " + Number(v)
}

// Number formata v com duas casas e separadores brasileiros ("1.234,56").
func Number(v decimal.Decimal) string {
	return printer.Sprintf("%.2f", v.Round(2).InexactFloat64())
}

// Percent formata um percentual 0–100 ("12,5%").
func Percent(v decimal.Decimal) string {
	if v.Equal(v.Truncate(0)) {
		return printer.Sprintf("%d%%", v.IntPart())
	}
	return printer.Sprintf("%.2f%%", v.InexactFloat64())
}
