package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrUserNotFound      = errors.New("usuário não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("não autenticado")
	ErrForbidden         = errors.New("acesso negado")
	ErrConflict          = errors.New("conflito com o estado atual")
	ErrInvalidTransition = errors.New("transição de status inválida")
	ErrInvalidReference  = errors.New("referência inválida")
	ErrNoActiveCompany   = errors.New("nenhuma empresa ativa selecionada")
	ErrTimeout           = errors.New("tempo de resposta excedido")
	ErrUnavailable       = errors.New("serviço externo indisponível")
)

// ValidationError erro de validação de regra de negócio com campo e mensagem legível.
// errors.Is(err, ErrInvalidInput) é verdadeiro para qualquer ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError atalho para construir um ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError indica qual entidade não foi encontrada; desembrulha para ErrNotFound.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " não encontrado(a)" }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound atalho para construir um NotFoundError.
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}
