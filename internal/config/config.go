// Package config loads the service configuration from config.toml, an
// optional config.<env>.toml overlay and VANTAGE_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/vantage/pkg/database"
	"github.com/JaimeStill/vantage/pkg/logging"
	"github.com/JaimeStill/vantage/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvVantageEnv             = "VANTAGE_ENV"
	EnvVantageConfigDir       = "VANTAGE_CONFIG_DIR"
	EnvVantageShutdownTimeout = "VANTAGE_SHUTDOWN_TIMEOUT"
	EnvVantageVersion         = "VANTAGE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "VANTAGE_DB_HOST",
	Port:            "VANTAGE_DB_PORT",
	Name:            "VANTAGE_DB_NAME",
	User:            "VANTAGE_DB_USER",
	Password:        "VANTAGE_DB_PASSWORD",
	SSLMode:         "VANTAGE_DB_SSL_MODE",
	ApplicationName: "VANTAGE_DB_APPLICATION_NAME",
	MaxOpenConns:    "VANTAGE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "VANTAGE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "VANTAGE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "VANTAGE_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "VANTAGE_STORAGE_CONTAINER_NAME",
	ConnectionString: "VANTAGE_STORAGE_CONNECTION_STRING",
	ServiceURL:       "VANTAGE_STORAGE_SERVICE_URL",
	MaxListSize:      "VANTAGE_STORAGE_MAX_LIST_SIZE",
}

var loggingEnv = &logging.Env{
	Level:  "VANTAGE_LOG_LEVEL",
	Format: "VANTAGE_LOG_FORMAT",
}

// Config is the root service configuration.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Logging         logging.Config  `toml:"logging"`
	Ranking         RankingConfig   `toml:"ranking"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns VANTAGE_ENV, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvVantageEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration parses ShutdownTimeout.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads config.toml when present, merges the overlay for VANTAGE_ENV
// when present, and finalizes every section. Files are looked up in
// VANTAGE_CONFIG_DIR, or the working directory when unset.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := configPath(BaseConfigFile); fileExists(path) {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if env := os.Getenv(EnvVantageEnv); env != "" {
		path := configPath(fmt.Sprintf(OverlayConfigPattern, env))
		if fileExists(path) {
			overlay, err := load(path)
			if err != nil {
				return nil, fmt.Errorf("load overlay %s: %w", path, err)
			}
			cfg.Merge(overlay)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Merge copies the non-zero fields of overlay onto c, section by section.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Logging.Merge(&overlay.Logging)
	c.Ranking.Merge(&overlay.Ranking)
}

// Finalize applies defaults and environment overrides to every section and
// validates the result.
func (c *Config) Finalize() error {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvVantageShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvVantageVersion); v != "" {
		c.Version = v
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"api", c.API.Finalize},
		{"logging", func() error { return c.Logging.Finalize(loggingEnv) }},
		{"ranking", c.Ranking.Finalize},
	}
	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func configPath(name string) string {
	if dir := os.Getenv(EnvVantageConfigDir); dir != "" {
		return dir + string(os.PathSeparator) + name
	}
	return name
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
