package config

import (
	"os"
	"path/filepath"
	"time"

	"qikfiller/internal/errors"
)

// Config holds all configuration options for the qikfiller application
type Config struct {
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	Entry    EntryConfig    `yaml:"entry"`
	Timeout  time.Duration  `yaml:"timeout"`
	Verbose  bool           `yaml:"verbose"`
}

// APIConfig holds the remote QikTimes service credentials
type APIConfig struct {
	Key string `yaml:"key" env:"QIK_API_KEY"`
	URL string `yaml:"url" env:"QIK_URL"`
}

// DatabaseConfig holds cache database configuration
type DatabaseConfig struct {
	Dir      string `yaml:"dir" env:"QIK_DB_DIR"`
	Filename string `yaml:"filename" env:"QIK_DB_FILENAME"`
}

// EntryConfig holds defaults applied when creating entries
type EntryConfig struct {
	User string `yaml:"user" env:"QIK_USER"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Database: DatabaseConfig{
			Dir:      filepath.Join(homeDir, ".qikfiller"),
			Filename: "cache.db",
		},
		Entry: EntryConfig{
			User: "apiuser",
		},
		Timeout: 30 * time.Second,
	}
}

// DatabasePath returns the full path to the cache database file
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// ConfigFilePath returns the path of the optional yaml config file
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.Database.Dir, "config.yaml")
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	if key := os.Getenv("QIK_API_KEY"); key != "" {
		c.API.Key = key
	}
	if url := os.Getenv("QIK_URL"); url != "" {
		c.API.URL = url
	}
	if dir := os.Getenv("QIK_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("QIK_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if user := os.Getenv("QIK_USER"); user != "" {
		c.Entry.User = user
	}
	if timeout := os.Getenv("QIK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Timeout = d
		}
	}
	return nil
}

// Validate validates the configuration and returns any errors. Credentials
// are deliberately not validated here: commands that never touch the remote
// service work without them.
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return errors.NewConfigError("database.dir", "database directory cannot be empty")
	}
	if c.Database.Filename == "" {
		return errors.NewConfigError("database.filename", "database filename cannot be empty")
	}
	if c.Timeout <= 0 {
		return errors.NewConfigError("timeout", "timeout must be positive")
	}
	return nil
}
