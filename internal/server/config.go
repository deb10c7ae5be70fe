package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the HTTP server settings.
type Config struct {
	// HTTPAddr is the listen address, e.g. ":8080" or "127.0.0.1:8080".
	HTTPAddr string `yaml:"http_addr"`

	// AuthToken protects every endpoint except /healthz and /metrics.
	// Empty disables authentication.
	AuthToken string `yaml:"auth_token"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	// MaxGraphs caps the number of graphs the engine will hold (0 = no limit).
	MaxGraphs int `yaml:"max_graphs"`

	// PprofEnabled exposes /debug/pprof endpoints when true.
	PprofEnabled bool `yaml:"pprof_enabled"`
}

// DefaultConfig returns a working local configuration.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:     ":8080",
		LogLevel:     "info",
		MaxGraphs:    0,
		PprofEnabled: false,
	}
}

// LoadConfig reads the YAML configuration file using strict parsing.
// An empty path returns the defaults unchanged; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("YAML syntax error in config: %w", err)
	}

	return cfg, nil
}
