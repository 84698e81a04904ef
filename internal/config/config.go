// Package config loads the per-environment service configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host string
	Port int
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	// storage: "memory" or "postgres"
	Storage     string `toml:"storage"`
	DatabaseURL string `toml:"database_url"`
	AutoMigrate bool   `toml:"auto_migrate"`
	// photos
	PhotoBucket       string `toml:"photo_bucket"`
	PhotoRegion       string `toml:"photo_region"`
	PhotoEndpoint     string `toml:"photo_endpoint"`
	PresignTTLMinutes int    `toml:"presign_ttl_minutes"`
	URLCacheSizeMB    int    `toml:"url_cache_size_mb"`
	// auth
	DisableAuth bool `toml:"disable_auth"`
	// TrustForwardAuth accepts Remote-User and X-Forwarded-For; only enable
	// behind a reverse proxy that strips them from client requests.
	TrustForwardAuth bool `toml:"trust_forward_auth"`
	OIDC             OIDC `toml:"oidc"`
}

type OIDC struct {
	Enabled      bool   `toml:"enabled"`
	Issuer       string `toml:"issuer"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var c *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		c = t.Development
	case "prod", "production":
		c = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if c == nil {
		return nil, fmt.Errorf("no [%s] section in config", strings.ToLower(env))
	}
	return c, nil
}

// Load reads the TOML file at path, selects env and applies secrets from the
// environment.
func Load(path, env string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	c, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	c.applyEnv(os.LookupEnv)
	c.applyDefaults()
	return c, c.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		c.DatabaseURL = v
	}
	if v, ok := lookup("OIDC_CLIENT_SECRET"); ok && v != "" {
		c.OIDC.ClientSecret = v
	}
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.Storage == "" {
		c.Storage = "memory"
	}
	if c.PresignTTLMinutes <= 0 {
		c.PresignTTLMinutes = 15
	}
	if c.URLCacheSizeMB <= 0 {
		c.URLCacheSizeMB = 8
	}
}

// Validate reports configuration that cannot start a server.
func (c *Config) Validate() error {
	switch c.Storage {
	case "memory":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("postgres storage needs database_url or DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	if c.OIDC.Enabled && (c.OIDC.Issuer == "" || c.OIDC.ClientID == "" || c.OIDC.RedirectURL == "") {
		return fmt.Errorf("oidc needs issuer, client_id and redirect_url")
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PresignTTL is the lifetime of presigned photo URLs.
func (c *Config) PresignTTL() time.Duration {
	return time.Duration(c.PresignTTLMinutes) * time.Minute
}
