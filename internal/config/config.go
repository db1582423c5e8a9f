package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains runtime settings for the API server
type Config struct {
	LogLevel string
	Port     string // default PORT env or 8080
	GinMode  string

	DatabaseURL string
	FrontendURL string // CORS origin, all origins when empty

	JWT struct {
		Secret string
		Expire time.Duration
	}
	CookieExpireDays int

	// Redis backs token revocation on logout. Revocation is off when Addr is empty.
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
}

// Load populates config from environment variables
func Load() (Config, error) {
	cfg := Config{
		LogLevel:         "info",
		Port:             "8080",
		CookieExpireDays: 7,
	}
	cfg.JWT.Expire = 7 * 24 * time.Hour

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	cfg.GinMode = os.Getenv("GIN_MODE")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.FrontendURL = os.Getenv("FRONTEND_URL")
	cfg.JWT.Secret = os.Getenv("JWT_SECRET_KEY")

	var invalid []string

	if v := os.Getenv("JWT_EXPIRE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			invalid = append(invalid, "JWT_EXPIRE")
		} else {
			cfg.JWT.Expire = d
		}
	}

	if v := os.Getenv("COOKIE_EXPIRE"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			invalid = append(invalid, "COOKIE_EXPIRE")
		} else {
			cfg.CookieExpireDays = days
		}
	}

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil || db < 0 {
			invalid = append(invalid, "REDIS_DB")
		} else {
			cfg.Redis.DB = db
		}
	}

	var missingVars []string

	if cfg.DatabaseURL == "" {
		missingVars = append(missingVars, "DATABASE_URL")
	}

	if cfg.JWT.Secret == "" {
		missingVars = append(missingVars, "JWT_SECRET_KEY")
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	if len(invalid) > 0 {
		return cfg, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// CookieExpire is the lifetime of the session cookie.
func (c Config) CookieExpire() time.Duration {
	return time.Duration(c.CookieExpireDays) * 24 * time.Hour
}
