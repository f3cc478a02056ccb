package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds application configuration from env
type Config struct {
	TZ        string `validate:"required"`
	Format    string `validate:"oneof=csv json ndjson parquet"`
	LogLevel  string `validate:"oneof=debug info warn error"` // debug | info | warn | error
	LogFormat string `validate:"oneof=text json"`
	BaseDir   string `validate:"required"`
	EmaPeriod int    `validate:"gt=0"`
}

// LoadConfig reads config from environment
func LoadConfig() *Config {
	cfg := &Config{
		TZ:        getEnv("TVDATA_TZ", "America/Chicago"),
		Format:    getEnv("TVDATA_FORMAT", "csv"),
		LogLevel:  getEnv("TVDATA_LOG_LEVEL", "info"),
		LogFormat: getEnv("TVDATA_LOG_FORMAT", "text"),
		BaseDir:   getEnv("TVDATA_BASE_DIR", "data"),
		EmaPeriod: 20,
	}
	if p := os.Getenv("TVDATA_EMA_PERIOD"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			cfg.EmaPeriod = v
		}
	}
	return cfg
}

// Validate checks the loaded config against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WindowsDir returns the default output dir for extracted windows.
func (c *Config) WindowsDir() string {
	return filepath.Join(c.BaseDir, "windows")
}
