package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender delivers one notification message to the club inbox. The
// recipient is fixed per deployment so the service cannot be used to
// relay mail to arbitrary addresses.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	To       string
}

// SMTPSender sends notifications over SMTP with STARTTLS.
type SMTPSender struct {
	cfg Config
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send builds an HTML message and hands it to the SMTP server. The body
// is passed through as-is; formatting and escaping are the caller's
// concern. No retry on failure.
func (s *SMTPSender) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", s.cfg.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}
