package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ohuru-Tech/authkit/domain"
	infraauth "github.com/Ohuru-Tech/authkit/internal/infrastructure/auth"
	"github.com/Ohuru-Tech/authkit/internal/metrics"
)

func setupProtectedRouter(t *testing.T, tokenSvc domain.TokenService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mw := NewAuthMW(tokenSvc, metrics.Noop())
	r := gin.New()
	r.GET("/protected", mw.WithJWT(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		email, _ := c.Get("user_email")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": email})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokenSvc, err := infraauth.NewJWTService("mw-test-secret", "HS256", "authkit-test", "authkit",
		30*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	otherSvc, err := infraauth.NewJWTService("another-secret", "HS256", "authkit-test", "authkit",
		30*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	expiredSvc, err := infraauth.NewJWTService("mw-test-secret", "HS256", "authkit-test", "authkit",
		-time.Minute, 720*time.Hour)
	require.NoError(t, err)

	user := &domain.User{ID: 7, Email: "mw@example.com"}

	validToken, err := tokenSvc.IssueAccessToken(user)
	require.NoError(t, err)

	refreshToken, err := tokenSvc.IssueRefreshToken(user)
	require.NoError(t, err)

	foreignToken, err := otherSvc.IssueAccessToken(user)
	require.NoError(t, err)

	expiredToken, err := expiredSvc.IssueAccessToken(user)
	require.NoError(t, err)

	router := setupProtectedRouter(t, tokenSvc)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{name: "valid access token", authHeader: "Bearer " + validToken, expectedStatus: http.StatusOK},
		{name: "missing header", authHeader: "", expectedStatus: http.StatusUnauthorized},
		{name: "not a bearer token", authHeader: "Basic abc123", expectedStatus: http.StatusUnauthorized},
		{name: "malformed token", authHeader: "Bearer garbage", expectedStatus: http.StatusUnauthorized},
		{name: "wrong signing key", authHeader: "Bearer " + foreignToken, expectedStatus: http.StatusUnauthorized},
		{name: "expired token", authHeader: "Bearer " + expiredToken, expectedStatus: http.StatusUnauthorized},
		{name: "refresh token is not an access token", authHeader: "Bearer " + refreshToken, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
		})
	}
}

func TestAuthMiddleware_SetsIdentityInContext(t *testing.T) {
	tokenSvc, err := infraauth.NewJWTService("mw-test-secret", "HS256", "authkit-test", "authkit",
		30*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	token, err := tokenSvc.IssueAccessToken(&domain.User{ID: 42, Email: "ctx@example.com"})
	require.NoError(t, err)

	router := setupProtectedRouter(t, tokenSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"42"`)
	assert.Contains(t, w.Body.String(), `"email":"ctx@example.com"`)
}
