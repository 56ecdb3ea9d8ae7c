package services

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"os"
)

// Mailer delivers transactional mail (activation links, password OTPs).
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay configured via
// SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD and SMTP_FROM.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPMailerFromEnv builds an SMTPMailer from environment variables.
// Returns nil when SMTP_HOST is unset so callers can fall back to LogMailer.
func NewSMTPMailerFromEnv() *SMTPMailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	user := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")

	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}

	return &SMTPMailer{
		addr: host + ":" + port,
		from: os.Getenv("SMTP_FROM"),
		auth: auth,
	}
}

// Send delivers one message
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// LogMailer logs messages instead of delivering them. Used in development
// when no SMTP relay is configured.
type LogMailer struct{}

// Send logs the message
func (m *LogMailer) Send(to, subject, body string) error {
	slog.Info("Mail (not delivered, no SMTP relay configured)",
		"to", to, "subject", subject, "body", body)
	return nil
}
