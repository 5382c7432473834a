// Package brdoc normaliza documentos brasileiros (CNPJ, CPF, CEP) para somente dígitos.
package brdoc

import (
	"strings"
	"unicode"
)

// Digits remove tudo que não for dígito ASCII.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CNPJ normaliza s e indica se tem 14 dígitos.
func CNPJ(s string) (string, bool) {
	d := Digits(s)
	return d, len(d) == 14
}

// TaxID aceita CNPJ (14) ou CPF (11).
func TaxID(s string) (string, bool) {
	d := Digits(s)
	return d, len(d) == 14 || len(d) == 11
}

// CEP normaliza s e indica se tem 8 dígitos.
func CEP(s string) (string, bool) {
	d := Digits(s)
	return d, len(d) == 8
}
