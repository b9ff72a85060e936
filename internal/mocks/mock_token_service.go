package mocks

import (
	"fmt"
	"time"

	"github.com/Ohuru-Tech/authkit/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueAccessTokenFunc  func(user *domain.User) (string, error)
	IssueRefreshTokenFunc func(user *domain.User) (string, error)
	ValidateFunc          func(token string) (*domain.TokenClaims, error)
	AccessTTLFunc         func() time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// IssueAccessToken issues an access token
func (m *MockTokenService) IssueAccessToken(user *domain.User) (string, error) {
	if m.IssueAccessTokenFunc != nil {
		return m.IssueAccessTokenFunc(user)
	}
	// Default behavior: deterministic fake token
	return fmt.Sprintf("access_token_%d", user.ID), nil
}

// IssueRefreshToken issues a refresh token
func (m *MockTokenService) IssueRefreshToken(user *domain.User) (string, error) {
	if m.IssueRefreshTokenFunc != nil {
		return m.IssueRefreshTokenFunc(user)
	}
	// Default behavior: deterministic fake token
	return fmt.Sprintf("refresh_token_%d", user.ID), nil
}

// Validate validates a token and returns its claims
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: malformed
	return nil, domain.ErrTokenMalformed
}

// AccessTTL returns the configured access token TTL
func (m *MockTokenService) AccessTTL() time.Duration {
	if m.AccessTTLFunc != nil {
		return m.AccessTTLFunc()
	}
	// Default behavior: 30 minutes
	return 30 * time.Minute
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
