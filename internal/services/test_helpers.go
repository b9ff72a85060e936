package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Ohuru-Tech/authkit/domain"
	"github.com/Ohuru-Tech/authkit/internal/metrics"
	"github.com/Ohuru-Tech/authkit/internal/mocks"
)

// createAuthServiceForTest creates an AuthService with mock dependencies,
// substituting defaults for any nil collaborator
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	verificationRepo domain.VerificationRepository,
	mailer domain.Mailer,
	opts Options) domain.AuthService {
	t.Helper()

	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if verificationRepo == nil {
		verificationRepo = mocks.NewMockVerificationRepository()
	}
	if mailer == nil {
		mailer = mocks.NewMockMailer()
	}

	return NewAuthService(userRepo, passwordSvc, tokenSvc, verificationRepo, mailer,
		mocks.NewMockAuditLogger(), metrics.Noop(), opts)
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: "hashed_password123",
	}
}

// memoryUserRepo is a map-backed UserRepository used by flow tests that need
// real persistence semantics (uniqueness, lookups) without a database
type memoryUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return domain.ErrUserAlreadyExists
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.Email] = &stored
	return nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) MarkEmailVerified(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == userID {
			user.EmailVerified = true
			return nil
		}
	}
	return domain.ErrUserNotFound
}

var _ domain.UserRepository = (*memoryUserRepo)(nil)
