package mocks

import (
	"context"

	"github.com/Ohuru-Tech/authkit/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	SignupFunc         func(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error)
	LoginFunc          func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshFunc        func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	VerifyEmailFunc    func(ctx context.Context, token string) error
	GetUserProfileFunc func(ctx context.Context, userID uint) (*domain.User, error)
	SocialLoginFunc    func(ctx context.Context, provider string) (*domain.AuthResult, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Signup registers a new user
func (m *MockAuthService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, req)
	}
	return defaultAuthResult(req.Email), nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return defaultAuthResult(email), nil
}

// Refresh exchanges a refresh token for a new access token
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return defaultAuthResult("test@example.com"), nil
}

// VerifyEmail redeems an email verification token
func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, token)
	}
	return nil
}

// GetUserProfile returns a user profile
func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return &domain.User{ID: userID, Email: "test@example.com"}, nil
}

// SocialLogin is the social login extension point
func (m *MockAuthService) SocialLogin(ctx context.Context, provider string) (*domain.AuthResult, error) {
	if m.SocialLoginFunc != nil {
		return m.SocialLoginFunc(ctx, provider)
	}
	return nil, domain.ErrNotSupported
}

func defaultAuthResult(email string) *domain.AuthResult {
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, Email: email},
		AccessToken:  "access_token_1",
		RefreshToken: "refresh_token_1",
		TokenType:    "Bearer",
		ExpiresIn:    1800,
	}
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
