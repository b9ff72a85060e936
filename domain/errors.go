package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidEmail       = errors.New("invalid email address")
)

// Credential hash errors
var (
	ErrCorruptCredential = errors.New("corrupt credential hash")
)

// Token errors
var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrBadSignature   = errors.New("token signature is invalid")
	ErrTokenMalformed = errors.New("malformed token")
)

// Verification errors
var (
	ErrVerificationNotFound = errors.New("verification token not found")
)

// Extension point errors
var (
	ErrNotSupported = errors.New("operation not supported")
)
