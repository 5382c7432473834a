// Package worker processa jobs assíncronos (envio de e-mails) numa fila Redis
// ou, sem Redis configurado, em goroutines locais.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
)

// MaxRetries tentativas antes de o job ir para a DLQ.
const MaxRetries = 3

// JobType identifica o tipo do job.
type JobType string

const (
	JobOrderConfirmation JobType = "email.pedido_confirmacao"
	JobPasswordReset     JobType = "email.recuperacao_senha"
)

// Job envelope genérico serializado na fila.
type Job struct {
	ID        string          `json:"id"`
	Type      JobType         `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Attempt   int             `json:"attempt"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewJob serializa payload num Job novo.
func NewJob(t JobType, payload any) (Job, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Job{}, fmt.Errorf("worker: serializar payload %s: %w", t, err)
	}
	return Job{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   body,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// OrderConfirmationPayload dados do e-mail de confirmação de pedido.
type OrderConfirmationPayload struct {
	To       []string            `json:"to"`
	Document ports.OrderDocument `json:"document"`
}

// PasswordResetPayload dados do e-mail de recuperação de senha.
type PasswordResetPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
	Link string `json:"link"`
}

// Handler executa um job. Erros marcados com Permanent não são repetidos.
type Handler interface {
	Handle(ctx context.Context, job Job) error
}

// HandlerFunc adapta uma função a Handler.
type HandlerFunc func(ctx context.Context, job Job) error

func (f HandlerFunc) Handle(ctx context.Context, job Job) error { return f(ctx, job) }

// Enqueuer aceita jobs para processamento posterior.
type Enqueuer interface {
	Enqueue(ctx context.Context, job Job) error
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marca err como não recuperável: o job vai direto para a DLQ.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent indica se err foi marcado com Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Mux despacha o job para o handler registrado para o seu tipo.
type Mux struct {
	handlers map[JobType]Handler
}

func NewMux() *Mux { return &Mux{handlers: make(map[JobType]Handler)} }

// Register associa h ao tipo t.
func (m *Mux) Register(t JobType, h Handler) { m.handlers[t] = h }

func (m *Mux) Handle(ctx context.Context, job Job) error {
	h, ok := m.handlers[job.Type]
	if !ok {
		return Permanent(fmt.Errorf("worker: tipo de job desconhecido %q", job.Type))
	}
	return h.Handle(ctx, job)
}
