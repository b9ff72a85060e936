package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Ohuru-Tech/authkit/domain"
	"github.com/Ohuru-Tech/authkit/internal/mocks"
)

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

func TestAuthHandlers_Signup(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "successful signup",
			requestBody:    SignupRequest{Email: "a@x.com", Password: "p1"},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "duplicate user maps to 400",
			requestBody: SignupRequest{Email: "a@x.com", Password: "p2"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.SignupFunc = func(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
					return nil, domain.ErrUserAlreadyExists
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "User already exists",
		},
		{
			name:        "missing password maps to 400",
			requestBody: SignupRequest{Email: "a@x.com"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.SignupFunc = func(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
					return nil, domain.ErrPasswordRequired
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Password is required",
		},
		{
			name:           "malformed email rejected by binding",
			requestBody:    map[string]string{"email": "not-an-email", "password": "p"},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			h := NewAuthHandlers(authSvc)

			w := performJSON(t, h.Signup, http.MethodPost, "/auth/signup", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (body: %s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedError != "" {
				var body map[string]interface{}
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("failed to parse response: %v", err)
				}
				if body["error"] != tt.expectedError {
					t.Errorf("expected error %q, got %v", tt.expectedError, body["error"])
				}
			}
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    LoginRequest
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name:           "successful login",
			requestBody:    LoginRequest{Email: "a@x.com", Password: "p1"},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "unknown user maps to 404",
			requestBody: LoginRequest{Email: "b@x.com", Password: "x"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return nil, domain.ErrUserNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "wrong password maps to 401",
			requestBody: LoginRequest{Email: "a@x.com", Password: "wrong"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return nil, domain.ErrInvalidCredentials
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "hashless account maps to 400",
			requestBody: LoginRequest{Email: "social@x.com", Password: "p"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return nil, domain.ErrPasswordRequired
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			h := NewAuthHandlers(authSvc)

			w := performJSON(t, h.Login, http.MethodPost, "/auth/login", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (body: %s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandlers_Login_ResponseBody(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	h := NewAuthHandlers(authSvc)

	w := performJSON(t, h.Login, http.MethodPost, "/auth/login", LoginRequest{Email: "a@x.com", Password: "p1"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			TokenType    string `json:"token_type"`
			ExpiresIn    int64  `json:"expires_in"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Data.AccessToken == "" || body.Data.RefreshToken == "" {
		t.Error("expected both tokens in response")
	}
	if body.Data.TokenType != "Bearer" {
		t.Errorf("expected token type Bearer, got %s", body.Data.TokenType)
	}
}

func TestAuthHandlers_Refresh(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name:           "successful refresh",
			requestBody:    RefreshRequest{RefreshToken: "refresh_token_1"},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "expired token maps to 401",
			requestBody: RefreshRequest{RefreshToken: "expired"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RefreshFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
					return nil, domain.ErrTokenExpired
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing token rejected by binding",
			requestBody:    map[string]string{},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			h := NewAuthHandlers(authSvc)

			w := performJSON(t, h.Refresh, http.MethodPost, "/auth/refresh", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (body: %s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandlers_VerifyEmail(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name:           "successful verification",
			target:         "/auth/verify?token=tok",
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "unknown token maps to 404",
			target: "/auth/verify?token=unknown",
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.VerifyEmailFunc = func(ctx context.Context, token string) error {
					return domain.ErrVerificationNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing token maps to 400",
			target:         "/auth/verify",
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			h := NewAuthHandlers(authSvc)

			w := performJSON(t, h.VerifyEmail, http.MethodGet, tt.target, nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (body: %s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandlers_SocialLogin_NotImplemented(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authSvc := mocks.NewMockAuthService()
	h := NewAuthHandlers(authSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/social/github", nil)
	c.Params = gin.Params{{Key: "provider", Value: "github"}}

	h.SocialLogin(c)

	if w.Code != http.StatusNotImplemented {
		t.Errorf("expected 501 from the social login stub, got %d", w.Code)
	}
}
