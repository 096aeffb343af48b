// Package config loads application configuration from defaults, an
// optional YAML file, and environment variables, in that order of
// precedence (later wins).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/romanch203/DataConverterPro/tables"
)

// Server holds HTTP server settings.
type Server struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	OutputDir      string `yaml:"output_dir"`
	Workers        int    `yaml:"workers"`
}

// Config is the full application configuration.
type Config struct {
	Server   Server        `yaml:"server"`
	Tables   tables.Config `yaml:"tables"`
	Ledger   string        `yaml:"ledger"`
	LogLevel string        `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:           ":8080",
			MaxUploadBytes: 16 << 20,
			OutputDir:      "outputs",
			Workers:        4,
		},
		Tables:   tables.DefaultConfig(),
		Ledger:   "conversions.db",
		LogLevel: "info",
	}
}

// Load builds the configuration. A .env file in the working directory is
// applied to the environment first (best effort); path, when non-empty,
// names a YAML file that must exist; DCP_-prefixed environment variables
// override individual fields last.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Tables.Validate(); err != nil {
		return Config{}, fmt.Errorf("table tunables: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays DCP_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DCP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DCP_OUTPUT_DIR"); v != "" {
		cfg.Server.OutputDir = v
	}
	if v := os.Getenv("DCP_LEDGER"); v != "" {
		cfg.Ledger = v
	}
	if v := os.Getenv("DCP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DCP_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Server.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("DCP_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.Workers = n
		}
	}
}
