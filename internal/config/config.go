package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Algorithm  string `yaml:"algorithm"`
	Issuer     string `yaml:"issuer"`
	Audience   string `yaml:"audience"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type AuthConfig struct {
	PasswordlessLoginEnabled  bool `yaml:"passwordless_login_enabled"`
	EmailVerificationRequired bool `yaml:"email_verification_required"`
}

type EmailConfig struct {
	Backend      string `yaml:"backend"`
	VerifyURL    string `yaml:"verify_url"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_username"`
	SMTPPassword string `yaml:"smtp_password"`
	SMTPFrom     string `yaml:"smtp_from"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Auth     AuthConfig     `yaml:"auth"`
	Email    EmailConfig    `yaml:"email"`
}

// Config is the resolved runtime configuration. It is built once at the
// composition root and passed by reference into constructors; reconfiguring
// means building a new Config and a new container, never mutating this one.
type Config struct {
	Port    string
	GinMode string

	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret    string
	JWTAlgorithm string
	JWTIssuer    string
	JWTAudience  string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration

	PasswordlessLoginEnabled  bool
	EmailVerificationRequired bool

	EmailBackend string
	VerifyURL    string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

const (
	defaultConfigPath = "config/config.yml"

	defaultAlgorithm  = "HS256"
	defaultAccessTTL  = 30 * time.Minute
	defaultRefreshTTL = 720 * time.Hour
)

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the yaml config file and applies environment overrides.
// The file path itself can be overridden with AUTHKIT_CONFIG.
func Load() (*Config, error) {
	path := env("AUTHKIT_CONFIG", defaultConfigPath)

	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL := defaultAccessTTL
	if configFile.JWT.AccessTTL != "" {
		accTTL, err = time.ParseDuration(configFile.JWT.AccessTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
		}
	}

	refTTL := defaultRefreshTTL
	if configFile.JWT.RefreshTTL != "" {
		refTTL, err = time.ParseDuration(configFile.JWT.RefreshTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
		}
	}

	algorithm := configFile.JWT.Algorithm
	if algorithm == "" {
		algorithm = defaultAlgorithm
	}

	backend := configFile.Email.Backend
	if backend == "" {
		backend = "console"
	}

	cfg := &Config{
		Port:    fmt.Sprintf("%d", configFile.App.Port),
		GinMode: configFile.App.GinMode,

		DSN:           env("AUTHKIT_DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("AUTHKIT_REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("AUTHKIT_REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,

		JWTSecret:    env("AUTHKIT_JWT_SECRET", configFile.JWT.Secret),
		JWTAlgorithm: algorithm,
		JWTIssuer:    configFile.JWT.Issuer,
		JWTAudience:  configFile.JWT.Audience,
		AccessTTL:    accTTL,
		RefreshTTL:   refTTL,

		PasswordlessLoginEnabled:  envBool("AUTHKIT_PASSWORDLESS_LOGIN", configFile.Auth.PasswordlessLoginEnabled),
		EmailVerificationRequired: envBool("AUTHKIT_EMAIL_VERIFICATION", configFile.Auth.EmailVerificationRequired),

		EmailBackend: backend,
		VerifyURL:    configFile.Email.VerifyURL,
		SMTPHost:     configFile.Email.SMTPHost,
		SMTPPort:     configFile.Email.SMTPPort,
		SMTPUsername: configFile.Email.SMTPUsername,
		SMTPPassword: env("AUTHKIT_SMTP_PASSWORD", configFile.Email.SMTPPassword),
		SMTPFrom:     configFile.Email.SMTPFrom,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt secret must be configured")
	}
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported jwt algorithm %q", c.JWTAlgorithm)
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	switch c.EmailBackend {
	case "console", "smtp":
	default:
		return fmt.Errorf("unsupported email backend %q", c.EmailBackend)
	}
	return nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func envBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
