// Package mail envio de e-mails transacionais via SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog/log"

	"github.com/weslleycarlos/representacao-comercial/pkg/config"
)

// Attachment anexo em memória.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message e-mail já renderizado.
type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender envia uma mensagem.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer implementa Sender. Sem host configurado apenas registra no log.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	addr string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("mail: mensagem sem destinatário")
	}
	if !m.cfg.Enabled() {
		log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("mail: SMTP não configurado, envio ignorado")
		return nil
	}

	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = msg.To
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)
	for _, a := range msg.Attachments {
		if _, err := e.Attach(bytes.NewReader(a.Data), a.Name, a.ContentType); err != nil {
			return fmt.Errorf("mail: anexar %s: %w", a.Name, err)
		}
	}

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mail: enviar para %v: %w", msg.To, err)
	}
	log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("mail: e-mail enviado")
	return nil
}
