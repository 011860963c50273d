package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers selectable through DB_DRIVER
const (
	DriverPostgres     = "postgres"
	DriverGormPostgres = "gorm-postgres"
	DriverSQLite       = "sqlite"
)

type Config struct {
	Port               string
	DatabaseURL        string
	DBDriver           string
	JWTSecret          string
	AdminToken         string
	LogLevel           string
	LogFormat          string
	CorsAllowedOrigins []string
	RateLimitPerMinute int
	MigrationsOnStart  bool
}

// Load reads .env (if present) and the process environment. Missing
// required settings are reported together in one error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AdminToken:         getEnv("ADMIN_TOKEN", ""),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	var errs []error

	limit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "100"))
	if err != nil || limit <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be a positive integer"))
	}
	cfg.RateLimitPerMinute = limit

	migrate, err := strconv.ParseBool(getEnv("MIGRATIONS_ON_START", "true"))
	if err != nil {
		errs = append(errs, fmt.Errorf("MIGRATIONS_ON_START must be a boolean"))
	}
	cfg.MigrationsOnStart = migrate

	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if cfg.AdminToken == "" {
		errs = append(errs, errors.New("ADMIN_TOKEN is required"))
	}
	switch cfg.DBDriver {
	case DriverPostgres, DriverGormPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not one of postgres, gorm-postgres, sqlite", cfg.DBDriver))
	}

	return cfg, errors.Join(errs...)
}

// Logger builds the process logger from LOG_LEVEL and LOG_FORMAT
func (c Config) Logger() *slog.Logger {
	level := slog.LevelInfo
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
