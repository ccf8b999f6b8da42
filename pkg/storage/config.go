package storage

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// MaxListCap is the largest page the blob service returns in one listing.
const MaxListCap int32 = 5000

// Config selects the blob container and how to authenticate to it. A
// connection string wins; otherwise ServiceURL is used with the default
// Azure credential chain.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	ServiceURL       string `toml:"service_url"`
	MaxListSize      int32  `toml:"max_list_size"`
}

// Env names the environment variables that override each field.
type Env struct {
	ContainerName    string
	ConnectionString string
	ServiceURL       string
	MaxListSize      string
}

// Finalize applies defaults, then environment overrides, then validates.
func (c *Config) Finalize(env *Env) error {
	if c.ContainerName == "" {
		c.ContainerName = "vantage"
	}
	if c.MaxListSize <= 0 {
		c.MaxListSize = 100
	}

	if env != nil {
		c.loadEnv(env)
	}

	c.MaxListSize = min(c.MaxListSize, MaxListCap)
	return c.validate()
}

// Merge copies non-zero fields of overlay onto c.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.ServiceURL != "" {
		c.ServiceURL = overlay.ServiceURL
	}
	if overlay.MaxListSize != 0 {
		c.MaxListSize = overlay.MaxListSize
	}
}

func (c *Config) loadEnv(env *Env) {
	for dst, name := range map[*string]string{
		&c.ContainerName:    env.ContainerName,
		&c.ConnectionString: env.ConnectionString,
		&c.ServiceURL:       env.ServiceURL,
	} {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if env.MaxListSize != "" {
		if n, err := strconv.ParseInt(os.Getenv(env.MaxListSize), 10, 32); err == nil && n > 0 {
			c.MaxListSize = int32(n)
		}
	}
}

func (c *Config) validate() error {
	if c.ConnectionString != "" {
		return nil
	}
	if c.ServiceURL == "" {
		return fmt.Errorf("connection_string or service_url required")
	}
	u, err := url.Parse(c.ServiceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid service_url %q", c.ServiceURL)
	}
	return nil
}
