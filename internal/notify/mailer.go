package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pharmacart/pharmacart-backend/pkg/config"
)

// Mailer delivers plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends through a configured SMTP relay. An unconfigured mailer
// is not an error; Service treats it as a silent no-op.
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewSMTPMailer builds a mailer from config. Returns nil when no host is
// configured so callers can detect the no-op case.
func NewSMTPMailer(cfg config.NotifyConfig) *SMTPMailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.FromEmail,
	}
}

// Send delivers a single message. The context is accepted for interface
// symmetry; net/smtp does not support cancellation mid-dial.
func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	if m == nil {
		return nil
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient is required")
	}

	from := m.from
	if from == "" {
		from = m.user
	}

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}
