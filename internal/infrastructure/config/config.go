package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every ambient variable.
const EnvPrefix = "pipedemo"

// Config holds the ambient configuration shared by all binaries. None of it
// affects the data channel.
type Config struct {
	Logging LogConfig
	Metrics MetricsConfig
}

// LogConfig holds diagnostic channel configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"console"`
	Output string `envconfig:"LOG_OUTPUT" default:"stderr"`
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	File string `envconfig:"METRICS_FILE" default:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Metrics: MetricsConfig{},
	}
}
