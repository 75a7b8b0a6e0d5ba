package notify

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"ojtlog/internal/config"
)

// Dispatcher delivers outbound mail. Callers treat every send as
// fire-and-forget: a delivery failure is logged and surfaced as an error
// but must never block or roll back the mutation that triggered it.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewDispatcher selects an implementation from config. Environments
// without SMTP credentials fall back to logging the message.
func NewDispatcher(cfg *config.Config) Dispatcher {
	switch cfg.Notifier {
	case "smtp":
		return SMTPDispatcher{
			host: cfg.SMTPHost,
			port: cfg.SMTPPort,
			from: cfg.MailFrom,
		}
	default:
		return LogDispatcher{}
	}
}

// LogDispatcher writes the message to the server log instead of sending
// it. The link inside the body remains usable by an operator.
type LogDispatcher struct{}

func (LogDispatcher) Send(ctx context.Context, to, subject, body string) error {
	_ = ctx
	log.Printf("notify: to=%s subject=%q body=%q", to, subject, body)
	return nil
}

// SMTPDispatcher sends mail through a plain SMTP relay.
type SMTPDispatcher struct {
	host string
	port int
	from string
}

func (s SMTPDispatcher) Send(ctx context.Context, to, subject, body string) error {
	_ = ctx
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.from, to, subject, body)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
