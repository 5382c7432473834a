package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBRL(t *testing.T) {
	tests := map[string]string{
		"0":          "R$ 0,00",
		"49.9":       "R$ 49,90",
		"1234.56":    "R$ 1.234,56",
		"1000000.01": "R$ 1.000.000,01",
		"233.555":    "R$ 233,56",
	}
	for in, want := range tests {
		assert.Equal(t, want, BRL(decimal.RequireFromString(in)), in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "10%", Percent(decimal.NewFromInt(10)))
	assert.Equal(t, "12,50%", Percent(decimal.RequireFromString("12.5")))
}
