package app

import (
	"fmt"

	"tv-data/internal/fetch"
	"tv-data/internal/saver"
)

// ProvideConfig loads and validates config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	cfg := LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProvideFrameSaver creates the default FrameSaver from config (for Wire).
// Returns error if Format is not supported.
func ProvideFrameSaver(cfg *Config) (saver.FrameSaver, error) {
	fs := saver.NewFrameSaver(cfg.Format, saver.Options{})
	if fs == nil {
		return nil, fmt.Errorf("unsupported TVDATA_FORMAT %q (use: csv, json, ndjson, parquet)", cfg.Format)
	}
	return fs, nil
}

// ProvideFetchClient creates the HTTP client for remote sources (for Wire).
func ProvideFetchClient() *fetch.Client {
	return fetch.NewClient()
}
