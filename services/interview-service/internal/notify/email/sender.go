// Package email sends plain-text messages through SMTP, Amazon SES or nowhere.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends email via unauthenticated SMTP (Mailpit-compatible).
type SMTPSender struct {
	addr string
	from string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host, port, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	if port == "" {
		port = "1025"
	}
	from = strings.TrimSpace(from)
	if from == "" {
		from = DefaultFrom
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
		send: smtp.SendMail,
	}
}

const DefaultFrom = "no-reply@mockinterview.local"

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.send(s.addr, nil, s.from, []string{msg.To}, buildMessage(s.from, msg))
}

func buildMessage(from string, msg Message) []byte {
	// Minimal RFC 5322 message; enough for Mailpit and most SMTP relays.
	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		msg.To,
		sanitizeHeader(msg.Subject),
		msg.Body,
	))
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

// NoopSender drops messages after logging them.
type NoopSender struct {
	Logger *slog.Logger
}

func (n NoopSender) Send(_ context.Context, msg Message) error {
	if n.Logger != nil {
		n.Logger.Info("email suppressed (noop provider)", "to", msg.To, "subject", msg.Subject)
	}
	return nil
}
