package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Ohuru-Tech/authkit/domain"
	"github.com/Ohuru-Tech/authkit/internal/metrics"
)

// AuthMW wraps the token service for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
	metrics  metrics.AuthMetrics
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, m metrics.AuthMetrics) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc, metrics: m}
}

// WithJWT returns the JWT middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.metrics)
}
