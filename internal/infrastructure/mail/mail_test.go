package mail

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/pkg/config"
)

func TestOrderConfirmation(t *testing.T) {
	doc := ports.OrderDocument{
		OrderID:      "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		IssuedAt:     time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
		Status:       "em_separacao",
		CompanyName:  "Malhas Sul",
		CustomerName: "Loja <Centro>",
		SellerName:   "Vendedor Um",
		Items: []ports.OrderDocumentItem{
			{Code: "CAM-001", Description: "Camiseta", Variant: "M / Azul", Quantity: 2,
				UnitPrice: decimal.RequireFromString("1234.5"), LineTotal: decimal.RequireFromString("2469")},
		},
		Subtotal: decimal.RequireFromString("2469"),
		Total:    decimal.RequireFromString("2469"),
	}
	msg, err := OrderConfirmation([]string{"compras@loja.com"}, doc)
	require.NoError(t, err)
	assert.Equal(t, "Pedido 7c9e6679 - Confirmação", msg.Subject)
	assert.Contains(t, msg.HTML, "05/03/2026")
	assert.Contains(t, msg.HTML, "EM SEPARACAO")
	assert.Contains(t, msg.HTML, "R$ 1.234,50")
	assert.Contains(t, msg.HTML, "Sem observações.")
	assert.Contains(t, msg.HTML, "Loja &lt;Centro&gt;")
	assert.NotContains(t, msg.HTML, "Desconto")
}

func TestPasswordReset(t *testing.T) {
	msg, err := PasswordReset("ana@org.com", "Ana", "http://app/redefinir-senha?token=abc")
	require.NoError(t, err)
	assert.Equal(t, "Recuperação de Senha - RepCom", msg.Subject)
	assert.Equal(t, []string{"ana@org.com"}, msg.To)
	assert.Contains(t, msg.HTML, `href="http://app/redefinir-senha?token=abc"`)
	assert.Contains(t, msg.HTML, "Olá, Ana.")
}

func TestSMTPMailer_SemHostApenasLoga(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{})
	assert.NoError(t, m.Send(context.Background(), Message{To: []string{"a@b.com"}, Subject: "x"}))
	assert.Error(t, m.Send(context.Background(), Message{Subject: "x"}))
}
