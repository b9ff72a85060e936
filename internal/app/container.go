package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ohuru-Tech/authkit/domain"
	"github.com/Ohuru-Tech/authkit/internal/config"
	"github.com/Ohuru-Tech/authkit/internal/infrastructure/audit"
	infraauth "github.com/Ohuru-Tech/authkit/internal/infrastructure/auth"
	"github.com/Ohuru-Tech/authkit/internal/infrastructure/database"
	"github.com/Ohuru-Tech/authkit/internal/infrastructure/notifications"
	"github.com/Ohuru-Tech/authkit/internal/infrastructure/repositories"
	"github.com/Ohuru-Tech/authkit/internal/metrics"
	"github.com/Ohuru-Tech/authkit/internal/services"
)

// verificationTTL bounds how long an emailed verification link stays valid.
const verificationTTL = 24 * time.Hour

// Container holds all dependencies. It is the composition root: the config
// object is resolved once here and handed to collaborators, so reconfiguring
// means building a new Container.
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Logger      *zap.Logger
	Registry    *prometheus.Registry

	// Repositories
	UserRepo         domain.UserRepository
	VerificationRepo domain.VerificationRepository

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Mailer      domain.Mailer
	Audit       domain.AuditLogger
	Metrics     *metrics.Collector
	AuthSvc     domain.AuthService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	container := &Container{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()

	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.VerificationRepo = repositories.NewVerificationRepository(c.RedisClient, verificationTTL)
}

func (c *Container) initServices() error {
	c.PasswordSvc = infraauth.NewPasswordService()

	tokenSvc, err := infraauth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTAlgorithm,
		c.Config.JWTIssuer,
		c.Config.JWTAudience,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	if err != nil {
		return err
	}
	c.TokenSvc = tokenSvc

	c.Mailer = c.buildMailer()
	c.Audit = audit.NewZapAuditLogger(c.Logger)
	c.Metrics = metrics.NewCollector(c.Registry)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.VerificationRepo,
		c.Mailer,
		c.Audit,
		c.Metrics,
		services.Options{
			PasswordlessLoginEnabled:  c.Config.PasswordlessLoginEnabled,
			EmailVerificationRequired: c.Config.EmailVerificationRequired,
		},
	)

	return nil
}

func (c *Container) buildMailer() domain.Mailer {
	if c.Config.EmailBackend == "smtp" {
		return notifications.NewSMTPMailer(notifications.SMTPConfig{
			Host:      c.Config.SMTPHost,
			Port:      c.Config.SMTPPort,
			Username:  c.Config.SMTPUsername,
			Password:  c.Config.SMTPPassword,
			From:      c.Config.SMTPFrom,
			VerifyURL: c.Config.VerifyURL,
		})
	}
	return notifications.NewConsoleMailer(c.Logger, c.Config.VerifyURL)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
