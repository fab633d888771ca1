// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevelopmentSecretKey is the signing key used when JWT_SECRET_KEY is unset.
// It is refused in production.
const DevelopmentSecretKey = "todo-app-development-secret-change-me"

// SQLiteMemoryPath names a private in-memory SQLite database. Every connection
// that opens it gets its own empty database.
const SQLiteMemoryPath = ":memory:"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	AppEnv          string
	HTTPAddr        string
	StaticDir       string
	ShutdownTimeout time.Duration

	Database  Database
	JWT       JWT
	Redis     Redis
	RateLimit RateLimit
}

// Database selects and addresses the backing store.
type Database struct {
	Driver string
	Path   string
	URL    string
	Debug  bool
}

// JWT holds token issuance settings.
type JWT struct {
	SecretKey  string
	Issuer     string
	Audience   string
	Expiration time.Duration
}

// Redis addresses the rate limiter's backing store. An empty Addr disables it.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// RateLimit configures the sliding window applied to auth endpoints.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	databaseURL := getEnv("DATABASE_URL", "")
	driver := DriverSQLite
	if databaseURL != "" {
		driver = DriverPostgres
	}

	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", EnvDevelopment),
		HTTPAddr:        getEnv("HTTP_ADDR", ":3000"),
		StaticDir:       getEnv("STATIC_DIR", "wwwroot"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		Database: Database{
			Driver: getEnv("DB_DRIVER", driver),
			Path:   getEnv("DB_PATH", "todo.db"),
			URL:    databaseURL,
			Debug:  getBoolEnv("DB_DEBUG", false),
		},

		JWT: JWT{
			SecretKey:  getEnv("JWT_SECRET_KEY", DevelopmentSecretKey),
			Issuer:     getEnv("JWT_ISSUER", "todo-app"),
			Audience:   getEnv("JWT_AUDIENCE", "todo-app-users"),
			Expiration: time.Duration(getIntEnv("JWT_EXPIRATION_MINUTES", 60)) * time.Minute,
		},

		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},

		RateLimit: RateLimit{
			Requests: getIntEnv("RATE_LIMIT_REQUESTS", 10),
			Window:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.AppEnv {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid APP_ENV %q: must be %q or %q", c.AppEnv, EnvDevelopment, EnvProduction)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
		// auth and todo each open the database; they must see the same users table
		if isSQLiteMemory(c.Database.Path) {
			return fmt.Errorf("DB_PATH %q is an in-memory database; use a file path", c.Database.Path)
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q", c.Database.Driver)
	}

	if c.JWT.SecretKey == "" {
		return errors.New("JWT_SECRET_KEY must not be empty")
	}
	if c.IsProduction() && c.JWT.SecretKey == DevelopmentSecretKey {
		return errors.New("JWT_SECRET_KEY must be set in production")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("JWT_EXPIRATION_MINUTES must be positive")
	}

	if c.RateLimit.Requests <= 0 {
		return errors.New("RATE_LIMIT_REQUESTS must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func isSQLiteMemory(path string) bool {
	return path == SQLiteMemoryPath ||
		strings.HasPrefix(path, SQLiteMemoryPath+"?") ||
		strings.HasPrefix(path, "file::memory:") ||
		strings.Contains(path, "mode=memory")
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// RateLimitEnabled reports whether a Redis address was configured.
func (c *Config) RateLimitEnabled() bool {
	return c.Redis.Addr != ""
}

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

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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
