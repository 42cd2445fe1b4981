// Package config loads storefront settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Medusa    MedusaConfig
	Stripe    StripeConfig
	PayPal    PayPalConfig
	Cache     CacheConfig
	DB        DBConfig
	Mail      MailConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Env                string `env:"APP_ENV,default=development"`
	Addr               string `env:"HTTP_ADDR,default=:8000"`
	BaseURL            string `env:"BASE_URL,default=http://localhost:8000"`
	DefaultCountryCode string `env:"DEFAULT_REGION,default=nl"`
	CookieSecret       string `env:"COOKIE_SECRET,default=dev-only-cookie-secret-change-me!!"`
	SecureCookies      bool   `env:"COOKIE_SECURE,default=false"`
}

type MedusaConfig struct {
	BackendURL     string        `env:"MEDUSA_BACKEND_URL,default=http://localhost:9000"`
	PublishableKey string        `env:"MEDUSA_PUBLISHABLE_KEY"`
	Timeout        time.Duration `env:"MEDUSA_TIMEOUT,default=10s"`
}

type StripeConfig struct {
	PublishableKey string `env:"STRIPE_PUBLISHABLE_KEY"`
	AccountID      string `env:"STRIPE_ACCOUNT_ID"`
}

type PayPalConfig struct {
	ClientID string `env:"PAYPAL_CLIENT_ID"`
}

type CacheConfig struct {
	Driver        string        `env:"CACHE_DRIVER,default=memory"`
	TTL           time.Duration `env:"CACHE_TTL,default=60s"`
	RedisAddr     string        `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB,default=0"`
}

// DBConfig is optional; without a DSN the newsletter form is disabled.
type DBConfig struct {
	DSN string `env:"DB_DSN"`
}

type MailConfig struct {
	Driver   string `env:"MAIL_DRIVER,default=log"`
	From     string `env:"MAIL_FROM,default=hello@younithy.com"`
	FromName string `env:"MAIL_FROM_NAME,default=Younithy"`

	SMTPHost          string `env:"SMTP_HOST"`
	SMTPPort          int    `env:"SMTP_PORT,default=587"`
	SMTPUser          string `env:"SMTP_USER"`
	SMTPPass          string `env:"SMTP_PASS"`
	SMTPTLSMode       string `env:"SMTP_TLS_MODE,default=starttls"`
	SMTPSkipVerifyTLS bool   `env:"SMTP_SKIP_VERIFY_TLS,default=false"`

	MailtrapAPIURL string `env:"MAILTRAP_API_URL,default=https://send.api.mailtrap.io/api/send"`
	MailtrapToken  string `env:"MAILTRAP_TOKEN"`
}

type StorageConfig struct {
	Driver        string `env:"STORAGE_DRIVER,default=local"`
	LocalDir      string `env:"STORAGE_LOCAL_DIR,default=./uploads"`
	LocalURL      string `env:"STORAGE_LOCAL_URL,default=/uploads"`
	S3Region      string `env:"AWS_REGION"`
	S3Bucket      string `env:"S3_BUCKET"`
	S3Prefix      string `env:"S3_PREFIX"`
	S3PublicURL   string `env:"S3_PUBLIC_BASE_URL"`
	S3ACLPublic   bool   `env:"S3_ACL_PUBLIC,default=false"`
	S3CacheMaxAge int    `env:"S3_CACHE_MAX_AGE,default=31536000"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"RATE_LIMIT_RPS,default=5"`
	Burst             int     `env:"RATE_LIMIT_BURST,default=20"`
}

// Load reads .env (when present) and decodes the environment.
func Load() (Config, error) {
	// .env is optional; production uses real environment variables
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}
	cfg.App.DefaultCountryCode = strings.ToLower(strings.TrimSpace(cfg.App.DefaultCountryCode))
	cfg.Medusa.BackendURL = strings.TrimRight(cfg.Medusa.BackendURL, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.App.Env == "development" || c.App.Env == "dev" || c.App.Env == ""
}

func (c Config) Validate() error {
	if len(c.App.DefaultCountryCode) != 2 {
		return fmt.Errorf("DEFAULT_REGION must be a 2-letter country code, got %q", c.App.DefaultCountryCode)
	}
	if !c.IsDevelopment() && len(c.App.CookieSecret) < 32 {
		return errors.New("COOKIE_SECRET must be at least 32 bytes")
	}
	if c.Medusa.BackendURL == "" {
		return errors.New("MEDUSA_BACKEND_URL is required")
	}
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown CACHE_DRIVER %q", c.Cache.Driver)
	}
	switch c.Mail.Driver {
	case "log", "smtp", "mailtrap":
	default:
		return fmt.Errorf("unknown MAIL_DRIVER %q", c.Mail.Driver)
	}
	switch c.Storage.Driver {
	case "local", "s3":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "s3" && c.Storage.S3Bucket == "" {
		return errors.New("S3_BUCKET is required for the s3 storage driver")
	}
	return nil
}
