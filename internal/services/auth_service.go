package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/Ohuru-Tech/authkit/domain"
	"github.com/Ohuru-Tech/authkit/internal/metrics"
)

// Options holds the policy switches consumed by the auth service. It is
// resolved once at the composition root and passed by value; reconfiguring
// means constructing a new service.
type Options struct {
	PasswordlessLoginEnabled  bool
	EmailVerificationRequired bool
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo         domain.UserRepository
	passwordSvc      domain.PasswordService
	tokenSvc         domain.TokenService
	verificationRepo domain.VerificationRepository
	mailer           domain.Mailer
	audit            domain.AuditLogger
	metrics          metrics.AuthMetrics
	opts             Options
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	verificationRepo domain.VerificationRepository,
	mailer domain.Mailer,
	audit domain.AuditLogger,
	m metrics.AuthMetrics,
	opts Options,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		passwordSvc:      passwordSvc,
		tokenSvc:         tokenSvc,
		verificationRepo: verificationRepo,
		mailer:           mailer,
		audit:            audit,
		metrics:          m,
		opts:             opts,
	}
}

// Signup implements domain.AuthService. The existence check before Create is
// advisory; the storage layer's unique index decides duplicate races and the
// repository reports the loser as ErrUserAlreadyExists.
func (s *AuthServiceImpl) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordAuthLatency("signup", time.Since(start)) }()

	if _, err := mail.ParseAddress(req.Email); err != nil {
		s.metrics.RecordSignup("invalid_email")
		return nil, domain.ErrInvalidEmail
	}

	if req.Password == "" && !s.opts.PasswordlessLoginEnabled {
		s.metrics.RecordSignup("password_required")
		return nil, domain.ErrPasswordRequired
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		s.metrics.RecordSignup("duplicate")
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserSignupFailure, existing.ID).
			WithEmail(req.Email).WithError(domain.ErrUserAlreadyExists))
		return nil, domain.ErrUserAlreadyExists
	}

	var hash string
	if req.Password != "" {
		hash, err = s.passwordSvc.Hash(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	user := &domain.User{
		Email:         req.Email,
		Name:          req.Name,
		PasswordHash:  hash,
		ProfilePic:    req.ProfilePic,
		EmailVerified: !s.opts.EmailVerificationRequired,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			s.metrics.RecordSignup("duplicate")
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.opts.EmailVerificationRequired {
		s.requestVerification(ctx, user)
	}

	s.metrics.RecordSignup("success")
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserSignupEvent, user.ID).WithEmail(user.Email))

	return s.issueResult(user)
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordAuthLatency("login", time.Since(start)) }()

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Passwordless mode silently provisions unknown emails on login
			// instead of rejecting them.
			if s.opts.PasswordlessLoginEnabled {
				return s.Signup(ctx, domain.SignupRequest{Email: email})
			}
			s.metrics.RecordLogin("user_not_found")
			s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).
				WithEmail(email).WithError(domain.ErrUserNotFound))
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.PasswordHash == "" {
		if s.opts.PasswordlessLoginEnabled {
			s.metrics.RecordLogin("success")
			s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithEmail(user.Email))
			return s.issueResult(user)
		}
		s.metrics.RecordLogin("password_required")
		return nil, domain.ErrPasswordRequired
	}

	ok, err := s.passwordSvc.Verify(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.metrics.RecordLogin("invalid_credentials")
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithEmail(user.Email).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	s.metrics.RecordLogin("success")
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithEmail(user.Email))

	return s.issueResult(user)
}

// Refresh implements domain.AuthService. The refresh token is kept; only a
// new access token is minted.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.Validate(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != domain.RefreshTokenType {
		return nil, domain.ErrTokenMalformed
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	accessToken, err := s.tokenSvc.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	s.metrics.RecordTokenIssued(string(domain.AccessTokenType))
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokenRefreshEvent, user.ID).WithEmail(user.Email))

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

// VerifyEmail implements domain.AuthService
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.verificationRepo.Consume(ctx, token)
	if err != nil {
		return err
	}

	if err := s.userRepo.MarkEmailVerified(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.EmailVerifiedEvent, userID))
	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// SocialLogin implements domain.AuthService. Extension point only.
func (s *AuthServiceImpl) SocialLogin(_ context.Context, _ string) (*domain.AuthResult, error) {
	return nil, domain.ErrNotSupported
}

// requestVerification stores a one-time verification token and hands it to
// the mailer. Delivery is an external concern; failures are audited but do
// not fail the signup.
func (s *AuthServiceImpl) requestVerification(ctx context.Context, user *domain.User) {
	token := uuid.NewString()
	if err := s.verificationRepo.Store(ctx, token, user.ID); err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.VerificationDeliveryFailure, user.ID).
			WithEmail(user.Email).WithError(err))
		return
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, token); err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.VerificationDeliveryFailure, user.ID).
			WithEmail(user.Email).WithError(err))
		return
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.VerificationRequestedEvent, user.ID).WithEmail(user.Email))
}

func (s *AuthServiceImpl) issueResult(user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	s.metrics.RecordTokenIssued(string(domain.AccessTokenType))

	refreshToken, err := s.tokenSvc.IssueRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	s.metrics.RecordTokenIssued(string(domain.RefreshTokenType))

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}
