package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.App.Addr)
	assert.Equal(t, "nl", cfg.App.DefaultCountryCode)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 10*time.Second, cfg.Medusa.Timeout)
	assert.Equal(t, "log", cfg.Mail.Driver)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("COOKIE_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DEFAULT_REGION", " DE ")
	t.Setenv("MEDUSA_BACKEND_URL", "https://api.example.com/")
	t.Setenv("MEDUSA_PUBLISHABLE_KEY", "pk_123")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("STRIPE_PUBLISHABLE_KEY", "pk_test_abc")
	t.Setenv("PAYPAL_CLIENT_ID", "paypal-client")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "de", cfg.App.DefaultCountryCode)
	assert.Equal(t, "https://api.example.com", cfg.Medusa.BackendURL)
	assert.Equal(t, "pk_123", cfg.Medusa.PublishableKey)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "pk_test_abc", cfg.Stripe.PublishableKey)
	assert.Equal(t, "paypal-client", cfg.PayPal.ClientID)
	assert.False(t, cfg.IsDevelopment())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			App:     AppConfig{Env: "production", DefaultCountryCode: "nl", CookieSecret: "0123456789abcdef0123456789abcdef"},
			Medusa:  MedusaConfig{BackendURL: "http://localhost:9000"},
			Cache:   CacheConfig{Driver: "memory"},
			Mail:    MailConfig{Driver: "smtp"},
			Storage: StorageConfig{Driver: "local"},
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(*Config){
		"country code": func(c *Config) { c.App.DefaultCountryCode = "nld" },
		"short secret": func(c *Config) { c.App.CookieSecret = "short" },
		"cache driver": func(c *Config) { c.Cache.Driver = "memcached" },
		"mail driver":  func(c *Config) { c.Mail.Driver = "pigeon" },
		"storage":      func(c *Config) { c.Storage.Driver = "ftp" },
		"s3 bucket":    func(c *Config) { c.Storage.Driver = "s3" },
		"backend url":  func(c *Config) { c.Medusa.BackendURL = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
