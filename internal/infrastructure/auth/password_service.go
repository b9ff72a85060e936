package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ohuru-Tech/authkit/domain"
)

// PasswordServiceImpl implements domain.PasswordService using bcrypt
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service
func NewPasswordService() domain.PasswordService {
	return &PasswordServiceImpl{
		cost: bcrypt.DefaultCost,
	}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService. A mismatch is not an error;
// only an unparseable stored hash is reported as ErrCorruptCredential.
// bcrypt's comparison runs in constant time relative to the hash.
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, domain.ErrCorruptCredential
}
