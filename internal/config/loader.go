package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"qikfiller/internal/errors"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the optional yaml config file
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFromFile(l.config.ConfigFilePath()); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFromFile merges the yaml config file into the configuration. A missing
// file is not an error; a malformed one is.
func (l *Loader) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewConfigError("config_file", err.Error())
	}

	if err := yaml.Unmarshal(data, l.config); err != nil {
		return errors.NewConfigError("config_file", "malformed yaml: "+err.Error())
	}
	return nil
}
