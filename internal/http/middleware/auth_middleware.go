package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ohuru-Tech/authkit/domain"
	"github.com/Ohuru-Tech/authkit/internal/metrics"
)

// AuthMiddleware creates authentication middleware. Only access tokens are
// accepted; a refresh token on the Authorization header is rejected.
func AuthMiddleware(tokenSvc domain.TokenService, m metrics.AuthMetrics) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(tokenParts[1])
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				m.RecordTokenValidation("expired")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			case errors.Is(err, domain.ErrBadSignature):
				m.RecordTokenValidation("bad_signature")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			default:
				m.RecordTokenValidation("malformed")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		if claims.TokenType != domain.AccessTokenType {
			m.RecordTokenValidation("wrong_type")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		m.RecordTokenValidation("success")

		c.Set("user_id", fmt.Sprintf("%d", claims.UserID))
		c.Set("user_email", claims.Email)

		c.Next()
	})
}
