package brdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCNPJ(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.345.678/0001-90", "12345678000190", true},
		{"12345678000190", "12345678000190", true},
		{"1234567800019", "1234567800019", false},
		{"", "", false},
		{"١٢٣", "", false}, // dígitos não ASCII são descartados
	}
	for _, tt := range tests {
		got, ok := CNPJ(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestCEP(t *testing.T) {
	d, ok := CEP("01310-100")
	assert.True(t, ok)
	assert.Equal(t, "01310100", d)

	_, ok = CEP("0131010")
	assert.False(t, ok)
}

func TestTaxID_AceitaCPF(t *testing.T) {
	d, ok := TaxID("123.456.789-09")
	assert.True(t, ok)
	assert.Equal(t, "12345678909", d)
}
