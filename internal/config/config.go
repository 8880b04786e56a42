// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/db"
)

// Config holds application configuration
type Config struct {
	ServerPort string
	LogEnv     string
	LogLevel   string
	Database   *db.Config

	// ImportTransactional wraps the clear-and-rebuild import in a single
	// database transaction. Off by default: a failed import leaves the
	// dataset partially rebuilt.
	ImportTransactional bool

	RateCacheTTL        time.Duration
	FXProvider          string
	FXAPIKey            string
	FXRequestsPerMinute int
}

// Load reads .env (if present) and environment variables.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_ENV", "")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("DB_DRIVER", db.DriverSQLite)
	v.SetDefault("DB_PATH", "portfolio.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "portfolio_user")
	v.SetDefault("DB_PASSWORD", "portfolio_password")
	v.SetDefault("DB_NAME", "portfolio")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("IMPORT_TRANSACTIONAL", false)
	v.SetDefault("RATE_CACHE_TTL", time.Hour)
	v.SetDefault("FX_PROVIDER", "static")
	v.SetDefault("FX_API_KEY", "")
	v.SetDefault("FX_REQUESTS_PER_MINUTE", 30)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ServerPort: v.GetString("SERVER_PORT"),
		LogEnv:     v.GetString("LOG_ENV"),
		LogLevel:   v.GetString("LOG_LEVEL"),
		Database: &db.Config{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Path:     v.GetString("DB_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		ImportTransactional: v.GetBool("IMPORT_TRANSACTIONAL"),
		RateCacheTTL:        v.GetDuration("RATE_CACHE_TTL"),
		FXProvider:          strings.ToLower(v.GetString("FX_PROVIDER")),
		FXAPIKey:            v.GetString("FX_API_KEY"),
		FXRequestsPerMinute: v.GetInt("FX_REQUESTS_PER_MINUTE"),
	}
	if cfg.LogEnv == "" {
		cfg.LogEnv = v.GetString("APP_ENV")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.FXProvider {
	case "static", "http":
	default:
		return fmt.Errorf("unsupported FX_PROVIDER %q", c.FXProvider)
	}
	if c.RateCacheTTL <= 0 {
		return fmt.Errorf("RATE_CACHE_TTL must be positive")
	}
	if c.FXRequestsPerMinute <= 0 {
		return fmt.Errorf("FX_REQUESTS_PER_MINUTE must be positive")
	}
	return nil
}
