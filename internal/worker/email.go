package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/infrastructure/mail"
)

// EmailHandler renderiza e envia os e-mails transacionais.
// Com gerador de PDF configurado, a confirmação de pedido leva o PDF anexo.
type EmailHandler struct {
	sender mail.Sender
	pdf    ports.OrderPDFGenerator
}

func NewEmailHandler(sender mail.Sender, pdf ports.OrderPDFGenerator) *EmailHandler {
	return &EmailHandler{sender: sender, pdf: pdf}
}

// Register associa os tipos de e-mail a este handler.
func (h *EmailHandler) Register(m *Mux) {
	m.Register(JobOrderConfirmation, h)
	m.Register(JobPasswordReset, h)
}

func (h *EmailHandler) Handle(ctx context.Context, job Job) error {
	var (
		msg mail.Message
		err error
	)
	switch job.Type {
	case JobOrderConfirmation:
		msg, err = h.orderConfirmation(job.Payload)
	case JobPasswordReset:
		var p PasswordResetPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return Permanent(fmt.Errorf("worker: payload de recuperação: %w", err))
		}
		msg, err = mail.PasswordReset(p.To, p.Name, p.Link)
	default:
		return Permanent(fmt.Errorf("worker: e-mail sem template para %q", job.Type))
	}
	if err != nil {
		return err
	}
	return h.sender.Send(ctx, msg)
}

func (h *EmailHandler) orderConfirmation(raw json.RawMessage) (mail.Message, error) {
	var p OrderConfirmationPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return mail.Message{}, Permanent(fmt.Errorf("worker: payload de pedido: %w", err))
	}
	msg, err := mail.OrderConfirmation(p.To, p.Document)
	if err != nil {
		return mail.Message{}, Permanent(err)
	}
	if h.pdf == nil {
		return msg, nil
	}
	data, err := h.pdf.Render(p.Document)
	if err != nil {
		log.Warn().Err(err).Str("order_id", p.Document.OrderID).Msg("worker: PDF não gerado, e-mail segue sem anexo")
		return msg, nil
	}
	msg.Attachments = append(msg.Attachments, mail.Attachment{
		Name:        "pedido-" + p.Document.DisplayNumber() + ".pdf",
		ContentType: "application/pdf",
		Data:        data,
	})
	return msg, nil
}
