package worker

import (
	"context"
	"fmt"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
)

// Notifier implementa ports.Notifier enfileirando jobs de e-mail.
type Notifier struct {
	queue Enqueuer
}

func NewNotifier(queue Enqueuer) *Notifier { return &Notifier{queue: queue} }

var _ ports.Notifier = (*Notifier)(nil)

func (n *Notifier) SendOrderConfirmation(ctx context.Context, to []string, doc ports.OrderDocument) error {
	if len(to) == 0 {
		return nil
	}
	return n.enqueue(ctx, JobOrderConfirmation, OrderConfirmationPayload{To: to, Document: doc})
}

func (n *Notifier) SendPasswordReset(ctx context.Context, to, name, link string) error {
	if to == "" {
		return fmt.Errorf("worker: destinatário vazio")
	}
	return n.enqueue(ctx, JobPasswordReset, PasswordResetPayload{To: to, Name: name, Link: link})
}

func (n *Notifier) enqueue(ctx context.Context, t JobType, payload any) error {
	job, err := NewJob(t, payload)
	if err != nil {
		return err
	}
	return n.queue.Enqueue(ctx, job)
}
