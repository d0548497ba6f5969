// Package config loads the daybt runtime configuration: backtest defaults,
// result-storage locations, the optional Alpaca bar-source, and logging.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for a daybt run.
type Config struct {
	Backtest BacktestDefaults `yaml:"backtest"`
	Storage  Storage          `yaml:"storage"`
	Alpaca   Alpaca           `yaml:"alpaca"`
	Logging  Logging          `yaml:"logging"`
	Driver   Driver           `yaml:"driver"`
}

// BacktestDefaults mirrors domain.BacktestConfig, overridable per run.
type BacktestDefaults struct {
	InitCash float64 `yaml:"init_cash"`
	Fees     float64 `yaml:"fees"`
	Slippage float64 `yaml:"slippage"`
}

// Storage holds paths for the Parquet result archive and the SQLite run
// registry.
type Storage struct {
	ArchiveDir   string `yaml:"archive_dir"`
	RegistryPath string `yaml:"registry_path"`
}

// Alpaca holds credentials and endpoints for the optional Alpaca
// marketdata bar-source adapter.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `yaml:"level"`
}

// Driver controls the orchestration loop's concurrency.
type Driver struct {
	MaxWorkers int `yaml:"max_workers"`
}

// Default returns the documented defaults for a standalone run with no
// config file.
func Default() Config {
	return Config{
		Backtest: BacktestDefaults{InitCash: 10000, Fees: 0, Slippage: 0},
		Driver:   Driver{MaxWorkers: 1},
		Logging:  Logging{Level: "info"},
	}
}

// Load reads the YAML configuration file at path, parses it into a Config,
// and applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DAYBT_ARCHIVE_DIR"); v != "" {
		cfg.Storage.ArchiveDir = v
	}
	if v := os.Getenv("DAYBT_REGISTRY_PATH"); v != "" {
		cfg.Storage.RegistryPath = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_BASE_URL"); v != "" {
		cfg.Alpaca.BaseURL = v
	}
	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Standard Alpaca env vars (highest priority — canonical names used by SDK).
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
