// Package orderflow define a máquina de estados do status do pedido.
package orderflow

import (
	"fmt"

	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// Lifecycle ordem do caminho feliz.
var Lifecycle = []string{
	entity.OrderPending,
	entity.OrderConfirmed,
	entity.OrderPicking,
	entity.OrderShipped,
	entity.OrderDelivered,
}

var transitions = map[string][]string{
	entity.OrderPending:   {entity.OrderConfirmed, entity.OrderCancelled},
	entity.OrderConfirmed: {entity.OrderPicking, entity.OrderCancelled},
	entity.OrderPicking:   {entity.OrderShipped, entity.OrderCancelled},
	entity.OrderShipped:   {entity.OrderDelivered, entity.OrderCancelled},
	entity.OrderDelivered: nil,
	entity.OrderCancelled: nil,
}

// Valid indica se s é um status conhecido.
func Valid(s string) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal indica se o status não aceita mais transições (entregue, cancelado).
func IsTerminal(s string) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// Next lista os status alcançáveis a partir de from.
func Next(from string) []string {
	return append([]string(nil), transitions[from]...)
}

// CanTransition indica se from → to é permitido.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition valida from → to. Status desconhecido: ErrInvalidInput; transição proibida: ErrInvalidTransition.
func Transition(from, to string) error {
	if !Valid(to) {
		return domain.NewValidationError("st_pedido", fmt.Sprintf("status desconhecido: %q", to))
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%s → %s: %w", from, to, domain.ErrInvalidTransition)
	}
	return nil
}

// Editable indica se o vendedor ainda pode alterar desconto/observações do pedido.
func Editable(status string) bool {
	return status == entity.OrderPending
}
