package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings. The server listens on Port for
// plaintext traffic and, when a certificate pair is configured, on TLSPort
// for HTTPS.
type ServerConfig struct {
	Port           string
	TLSPort        string
	TLSCertFile    string
	TLSKeyFile     string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds libSQL connection settings. Path is a local database
// file (or ":memory:"); URL plus AuthToken point at a remote Turso database
// and take precedence when set.
type DatabaseConfig struct {
	Path      string
	URL       string
	AuthToken string
}

// AuthConfig holds token signing and session settings
type AuthConfig struct {
	Secret     string
	Issuer     string
	SessionTTL time.Duration
}

// RateLimitConfig holds fixed-window rate limiter settings. Backend selects
// the counter store: "memory" for single-instance deployments, "redis" for
// a shared counter across instances.
type RateLimitConfig struct {
	Window        time.Duration
	Max           int64
	Backend       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			TLSPort:        getEnv("SERVER_TLS_PORT", "8443"),
			TLSCertFile:    getEnv("SERVER_TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("SERVER_TLS_KEY_FILE", ""),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Path:      getEnv("DB_PATH", "./storefront.db"),
			URL:       getEnv("DB_URL", ""),
			AuthToken: getEnv("DB_AUTH_TOKEN", ""),
		},
		Auth: AuthConfig{
			Secret:     getEnv("AUTH_SECRET", ""),
			Issuer:     getEnv("AUTH_ISSUER", "storefront.shopworks.dev"),
			SessionTTL: getDurationEnv("AUTH_SESSION_TTL", time.Hour),
		},
		RateLimit: RateLimitConfig{
			Window:        getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			Max:           int64(getIntEnv("RATE_LIMIT_MAX", 100)),
			Backend:       getEnv("RATE_LIMIT_BACKEND", "memory"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getIntEnv("REDIS_DB", 0),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// TLSEnabled returns true when a certificate pair is configured
func (c *ServerConfig) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}
	if (c.Server.TLSCertFile == "") != (c.Server.TLSKeyFile == "") {
		errs = append(errs, errors.New("SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE must be set together"))
	}
	if c.Server.TLSEnabled() && c.Server.TLSPort == "" {
		errs = append(errs, errors.New("SERVER_TLS_PORT is required when TLS is enabled"))
	}
	if c.Server.TLSEnabled() && c.Server.TLSPort == c.Server.Port {
		errs = append(errs, errors.New("SERVER_TLS_PORT must differ from SERVER_PORT"))
	}

	// Database validation
	if c.Database.Path == "" && c.Database.URL == "" {
		errs = append(errs, errors.New("one of DB_PATH or DB_URL is required"))
	}

	// Auth validation - the signing secret has no default
	if c.Auth.Secret == "" {
		errs = append(errs, errors.New("AUTH_SECRET is required"))
	} else if c.IsProduction() && len(c.Auth.Secret) < 32 {
		errs = append(errs, errors.New("AUTH_SECRET must be at least 32 bytes in production"))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("AUTH_SESSION_TTL must be positive"))
	}

	// Rate limit validation
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.RateLimit.Max <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX must be positive"))
	}
	switch c.RateLimit.Backend {
	case "memory":
	case "redis":
		if c.RateLimit.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when RATE_LIMIT_BACKEND is 'redis'"))
		}
	default:
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BACKEND must be 'memory' or 'redis', got '%s'", c.RateLimit.Backend))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
