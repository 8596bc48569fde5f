package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekzat/lingotrack/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:            ":8080",
		DBPath:          "test.db",
		LogLevel:        "INFO",
		DefaultPageSize: 10,
		MaxPageSize:     100,
		ShutdownTimeout: 30,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"uppercase valid level", "DEBUG", false},
		{"lowercase valid level", "debug", false},
		{"invalid level", "INVALID", true},
		{"empty level", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_PageSizes(t *testing.T) {
	cfg := validConfig()
	cfg.DefaultPageSize = 0

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_PAGE_SIZE")

	cfg = validConfig()
	cfg.MaxPageSize = 5 // below the default page size

	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_PAGE_SIZE")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "SHUTDOWN_TIMEOUT_SEC")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "DEFAULT_PAGE_SIZE", "MAX_PAGE_SIZE", "SHUTDOWN_TIMEOUT_SEC"} {
		original := os.Getenv(key)
		os.Unsetenv(key)
		defer func(key, original string) {
			if original != "" {
				os.Setenv(key, original)
			}
		}(key, original)
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "lingotrack.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 10, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Equal(t, 30, cfg.ShutdownTimeout)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	// Save original values
	originalAddr := os.Getenv("ADDR")
	originalDBPath := os.Getenv("DB_PATH")

	defer func() {
		if originalAddr != "" {
			os.Setenv("ADDR", originalAddr)
		} else {
			os.Unsetenv("ADDR")
		}
		if originalDBPath != "" {
			os.Setenv("DB_PATH", originalDBPath)
		} else {
			os.Unsetenv("DB_PATH")
		}
	}()

	os.Setenv("ADDR", ":9090")
	os.Setenv("DB_PATH", "custom.db")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	original := os.Getenv("MAX_PAGE_SIZE")
	defer func() {
		if original != "" {
			os.Setenv("MAX_PAGE_SIZE", original)
		} else {
			os.Unsetenv("MAX_PAGE_SIZE")
		}
	}()

	os.Setenv("MAX_PAGE_SIZE", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, 100, cfg.MaxPageSize)
}
