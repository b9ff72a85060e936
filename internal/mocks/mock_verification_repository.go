package mocks

import (
	"context"
	"sync"

	"github.com/Ohuru-Tech/authkit/domain"
)

// MockVerificationRepository implements domain.VerificationRepository for
// testing. Without overrides it behaves as an in-memory one-shot store.
type MockVerificationRepository struct {
	StoreFunc   func(ctx context.Context, token string, userID uint) error
	ConsumeFunc func(ctx context.Context, token string) (uint, error)

	mu     sync.Mutex
	tokens map[string]uint
}

// NewMockVerificationRepository creates a new MockVerificationRepository
func NewMockVerificationRepository() *MockVerificationRepository {
	return &MockVerificationRepository{tokens: make(map[string]uint)}
}

// Store stores a verification token
func (m *MockVerificationRepository) Store(ctx context.Context, token string, userID uint) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, token, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = userID
	return nil
}

// Consume redeems a verification token exactly once
func (m *MockVerificationRepository) Consume(ctx context.Context, token string) (uint, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.tokens[token]
	if !ok {
		return 0, domain.ErrVerificationNotFound
	}
	delete(m.tokens, token)
	return userID, nil
}

// StoredTokens returns a snapshot of unconsumed tokens, for assertions
func (m *MockVerificationRepository) StoredTokens() map[string]uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]uint, len(m.tokens))
	for k, v := range m.tokens {
		out[k] = v
	}
	return out
}

// Compile-time interface compliance verification
var _ domain.VerificationRepository = (*MockVerificationRepository)(nil)
