package domain

import "time"

// User represents an account in the system. PasswordHash holds a bcrypt
// hash, never the plaintext; it is empty for accounts that cannot
// authenticate with a password (passwordless or social-only accounts).
type User struct {
	ID            uint
	Email         string
	Name          string
	PasswordHash  string `gorm:"column:password"`
	ProfilePic    string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SignupRequest carries the fields needed to create an account
type SignupRequest struct {
	Email      string
	Password   string
	Name       string
	ProfilePic string
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// TokenType distinguishes access from refresh session credentials
type TokenType string

const (
	AccessTokenType  TokenType = "access"
	RefreshTokenType TokenType = "refresh"
)

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
}
