package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations. Implementations must
// enforce email uniqueness at the storage layer; the service's lookup before
// create is advisory only.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	MarkEmailVerified(ctx context.Context, userID uint) error
}

// VerificationRepository stores one-time email verification tokens with a TTL
type VerificationRepository interface {
	Store(ctx context.Context, token string, userID uint) error
	Consume(ctx context.Context, token string) (uint, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	VerifyEmail(ctx context.Context, token string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
	// SocialLogin is an extension point only; no provider protocol is
	// implemented and callers always receive ErrNotSupported.
	SocialLogin(ctx context.Context, provider string) (*AuthResult, error)
}

// PasswordService defines password hashing operations. Verify reports
// whether the plaintext matches the hash; it returns ErrCorruptCredential
// only when the stored hash itself is unparseable, never on a mismatch.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) (bool, error)
}

// TokenService defines session credential operations
type TokenService interface {
	IssueAccessToken(user *User) (string, error)
	IssueRefreshToken(user *User) (string, error)
	Validate(token string) (*TokenClaims, error)
	AccessTTL() time.Duration
}

// Mailer delivers verification email. Delivery is an external concern; the
// core only requires the hook to exist.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
}

// TokenClaims represents the structured fields encoded in a session credential
type TokenClaims struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Audience  string    `json:"aud"`
	TokenType TokenType `json:"token_type"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}
