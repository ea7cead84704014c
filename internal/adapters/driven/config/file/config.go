// Package file loads Booktalk configuration from a TOML file with
// environment variable overrides.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration.
// File values are overridden by environment variables.
type Config struct {
	// Responder selects and configures the response strategy.
	Responder ResponderConfig `toml:"responder"`
}

// ResponderConfig configures the response strategy.
type ResponderConfig struct {
	// Provider is "placeholder", "openai" or "anthropic".
	// Empty selects the placeholder.
	Provider string `toml:"provider" env:"BOOKTALK_PROVIDER"`

	// APIKey authenticates against the provider.
	APIKey string `toml:"api_key" env:"BOOKTALK_API_KEY"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `toml:"base_url" env:"BOOKTALK_BASE_URL"`

	// Model selects the provider model.
	Model string `toml:"model" env:"BOOKTALK_MODEL"`
}

// DefaultPath returns the default configuration file path,
// ~/.booktalk/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".booktalk", "config.toml"), nil
}

// Load reads configuration from the TOML file at path, then applies
// environment overrides. A missing file is not an error; the environment
// alone can configure the application.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file yet - that's fine, start empty
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the TOML file at path, creating the
// parent directory when needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(path, data, 0600)
}
