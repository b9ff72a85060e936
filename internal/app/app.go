package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ohuru-Tech/authkit/internal/config"
	httpx "github.com/Ohuru-Tech/authkit/internal/http"
	"github.com/Ohuru-Tech/authkit/internal/http/handlers"
	"github.com/Ohuru-Tech/authkit/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.Metrics)

	r := httpx.BuildRouter(authH, jwtMW, c.Logger, c.Registry)

	addr := ":" + cfg.Port
	c.Logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
