package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration,
// populated from environment variables.
type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Cart     CartConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// UpstreamConfig points at the POS backend that owns all
// catalog and transaction data.
type UpstreamConfig struct {
	BaseURL        string // e.g. https://localhost:7137/api
	TimeoutSeconds int
}

type RedisConfig struct {
	Host     string // empty = redis disabled, in-memory carts only
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// AdminConfig is the credential the gateway accepts at login.
// PasswordHash is a bcrypt hash, never the plain password.
type AdminConfig struct {
	Username     string
	PasswordHash string
	FullName     string
}

type CartConfig struct {
	TTLMinutes int // session cart lifetime
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "POS Admin Gateway"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Upstream: UpstreamConfig{
			BaseURL:        getEnv("POS_API_BASE_URL", "https://localhost:7137/api"),
			TimeoutSeconds: getEnvInt("POS_API_TIMEOUT", 30),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 12),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			FullName:     getEnv("ADMIN_FULL_NAME", "Administrator"),
		},
		Cart: CartConfig{
			TTLMinutes: getEnvInt("CART_TTL_MINUTES", 120),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configs that cannot run safely.
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("POS_API_BASE_URL must be set")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Admin.PasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
