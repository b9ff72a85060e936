package notifications

import (
	"context"

	"go.uber.org/zap"

	"github.com/Ohuru-Tech/authkit/domain"
)

// ConsoleMailer implements domain.Mailer by logging the verification link
// instead of sending it. Default backend for development.
type ConsoleMailer struct {
	logger    *zap.Logger
	verifyURL string
}

// NewConsoleMailer creates a console-backed mailer
func NewConsoleMailer(logger *zap.Logger, verifyURL string) domain.Mailer {
	return &ConsoleMailer{logger: logger, verifyURL: verifyURL}
}

// SendVerificationEmail implements domain.Mailer
func (m *ConsoleMailer) SendVerificationEmail(_ context.Context, to, token string) error {
	m.logger.Info("verification email",
		zap.String("to", to),
		zap.String("link", m.verifyURL+"?token="+token),
	)
	return nil
}
