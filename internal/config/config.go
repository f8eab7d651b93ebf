// Package config loads and finalizes the Kudos service configuration.
// Values resolve in three phases: defaults, then an optional TOML file
// with per-environment overlay, then KUDOS_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/kudoslabs/kudos/internal/identity"
	"github.com/kudoslabs/kudos/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvKudosEnv             = "KUDOS_ENV"
	EnvKudosShutdownTimeout = "KUDOS_SHUTDOWN_TIMEOUT"
	EnvKudosVersion         = "KUDOS_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "KUDOS_DB_HOST",
	Port:            "KUDOS_DB_PORT",
	Name:            "KUDOS_DB_NAME",
	User:            "KUDOS_DB_USER",
	Password:        "KUDOS_DB_PASSWORD",
	SSLMode:         "KUDOS_DB_SSL_MODE",
	MaxOpenConns:    "KUDOS_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "KUDOS_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "KUDOS_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "KUDOS_DB_CONN_TIMEOUT",
}

var identityEnv = &identity.Env{
	Issuer:       "KUDOS_IDENTITY_ISSUER",
	ClientID:     "KUDOS_IDENTITY_CLIENT_ID",
	ClientSecret: "KUDOS_IDENTITY_CLIENT_SECRET",
	RedirectURL:  "KUDOS_IDENTITY_REDIRECT_URL",
	PostLoginURL: "KUDOS_IDENTITY_POST_LOGIN_URL",
	CookieName:   "KUDOS_IDENTITY_COOKIE_NAME",
}

// Config is the root configuration for the Kudos service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Identity        identity.Config      `toml:"identity"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	API             APIConfig            `toml:"api"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the KUDOS_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvKudosEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment
// overlay, and finalizes all values. If no config.toml exists, defaults
// and environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Identity.Merge(&overlay.Identity)
	c.Agent.Merge(&overlay.Agent)
	c.API.Merge(&overlay.API)
}

// finalize runs the three-phase resolution for the root config and every
// sub-config.
func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Identity.Finalize(identityEnv); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvKudosShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvKudosVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
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
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvKudosEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
