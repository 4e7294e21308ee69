package config

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
)

// CLI config - constructor arguments for the client plus settings for the
// mock telemetry backend
type Config struct {
	Environment string        `env:"ENVIRONMENT,default=dev"`
	LogLevel    string        `env:"LOG_LEVEL,default=info"`
	APIBaseURL  string        `env:"OPENFMB_API_URL,default=http://localhost:8000"`
	Timeout     time.Duration `env:"OPENFMB_TIMEOUT,default=5s"`
	MockHost    string        `env:"MOCK_HOST,default=0.0.0.0"`
	MockPort    int           `env:"MOCK_PORT,default=8000"`
}

var validEnvs = map[string]bool{
	"dev":  true,
	"test": true,
	"prod": true,
}

func NewConfig() (*Config, error) {
	var cfg Config

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, prod", cfg.Environment)
	}

	if cfg.APIBaseURL == "" {
		return fmt.Errorf("OPENFMB_API_URL cannot be empty")
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", cfg.Timeout)
	}

	if cfg.MockPort < 1 || cfg.MockPort > 65535 {
		return fmt.Errorf("mock port must be between 1 and 65535, got %d", cfg.MockPort)
	}

	return nil
}
