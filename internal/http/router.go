package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Ohuru-Tech/authkit/internal/http/handlers"
	"github.com/Ohuru-Tech/authkit/internal/http/middleware"
	"github.com/Ohuru-Tech/authkit/internal/metrics"
)

func BuildRouter(ah *handlers.AuthHandlers, jwtmw *middleware.AuthMW, logger *zap.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	auth := r.Group("/auth")
	auth.POST("/signup", ah.Signup)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)
	auth.GET("/verify", ah.VerifyEmail)
	auth.POST("/social/:provider", ah.SocialLogin)

	v := r.Group("/").Use(jwtmw.WithJWT())
	v.GET("/auth/me", ah.Me)

	return r
}
