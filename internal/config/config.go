package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	DefaultPageSize int
	MaxPageSize     int
	ShutdownTimeout int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		DBPath:          envOr("DB_PATH", "lingotrack.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		DefaultPageSize: envIntOr("DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:     envIntOr("MAX_PAGE_SIZE", 100),
		ShutdownTimeout: envIntOr("SHUTDOWN_TIMEOUT_SEC", 30),
	}
}

// Validate checks the loaded configuration and reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.DefaultPageSize < 1 {
		problems = append(problems, "DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.MaxPageSize < c.DefaultPageSize {
		problems = append(problems, "MAX_PAGE_SIZE must not be smaller than DEFAULT_PAGE_SIZE")
	}
	if c.ShutdownTimeout < 1 {
		problems = append(problems, "SHUTDOWN_TIMEOUT_SEC must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
