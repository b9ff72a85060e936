package mocks

import (
	"context"
	"sync"

	"github.com/Ohuru-Tech/authkit/domain"
)

// MockMailer implements domain.Mailer for testing and records deliveries
type MockMailer struct {
	SendVerificationEmailFunc func(ctx context.Context, to, token string) error

	mu   sync.Mutex
	sent []SentEmail
}

// SentEmail records one delivered verification email
type SentEmail struct {
	To    string
	Token string
}

// NewMockMailer creates a new MockMailer
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// SendVerificationEmail sends a verification email
func (m *MockMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	if m.SendVerificationEmailFunc != nil {
		return m.SendVerificationEmailFunc(ctx, to, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentEmail{To: to, Token: token})
	return nil
}

// Sent returns the recorded deliveries
func (m *MockMailer) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentEmail, len(m.sent))
	copy(out, m.sent)
	return out
}

// Compile-time interface compliance verification
var _ domain.Mailer = (*MockMailer)(nil)
