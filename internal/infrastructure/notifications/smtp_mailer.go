package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Ohuru-Tech/authkit/domain"
)

// SMTPMailer implements domain.Mailer over plain SMTP with optional auth
type SMTPMailer struct {
	host      string
	port      int
	username  string
	password  string
	from      string
	verifyURL string
}

// SMTPConfig carries SMTP connection settings
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	VerifyURL string
}

// NewSMTPMailer creates an SMTP-backed mailer
func NewSMTPMailer(cfg SMTPConfig) domain.Mailer {
	return &SMTPMailer{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		from:      cfg.From,
		verifyURL: cfg.VerifyURL,
	}
}

// SendVerificationEmail implements domain.Mailer
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := m.buildMessage(to, token)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(to, token string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: Verify your email address\r\n")
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "Follow this link to verify your email address:\r\n\r\n%s?token=%s\r\n", m.verifyURL, token)
	return []byte(b.String())
}
