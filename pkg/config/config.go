package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ohmasense"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Stripe StripeConfig
	Client ClientConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OHMASENSE_APP_ENV" default:"dev"`
	Port         string `envconfig:"OHMASENSE_APP_PORT" default:"3001"`
	LogLevel     string `envconfig:"OHMASENSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OHMASENSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"OHMASENSE_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"OHMASENSE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OHMASENSE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OHMASENSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OHMASENSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"OHMASENSE_DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"OHMASENSE_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"OHMASENSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OHMASENSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OHMASENSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OHMASENSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OHMASENSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"OHMASENSE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"OHMASENSE_JWT_ISSUER" default:"ohmasense"`
	ExpirationMinutes int    `envconfig:"OHMASENSE_JWT_EXPIRATION_MINUTES" default:"60"`
}

type StripeConfig struct {
	SecretKey      string        `envconfig:"OHMASENSE_STRIPE_SECRET_KEY" required:"true"`
	WebhookSecret  string        `envconfig:"OHMASENSE_STRIPE_WEBHOOK_SECRET" required:"true"`
	Env            string        `envconfig:"OHMASENSE_STRIPE_ENV" default:"test"`
	IdempotencyTTL time.Duration `envconfig:"OHMASENSE_STRIPE_EVENT_IDEMPOTENCY_TTL" default:"72h"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type ClientConfig struct {
	// BaseURL is the externally addressable storefront origin used for the
	// post-payment success and cancel redirect targets.
	BaseURL string `envconfig:"OHMASENSE_CLIENT_URL" required:"true"`
}
