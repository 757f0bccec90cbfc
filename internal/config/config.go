package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level configuration for the catalog service.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Archive ArchiveConfig `koanf:"archive"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // "debug" or "release"
}

// ArchiveConfig points at the bundled event dataset.
type ArchiveConfig struct {
	Path string `koanf:"path"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load loads the configuration from the given file path and environment
// variables. Environment variables use the CATALOG_ prefix with "__" as the
// nesting separator, e.g. CATALOG_SERVER__PORT=9090 overrides server.port.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":  8080,
		"server.host":  "0.0.0.0",
		"server.mode":  "release",
		"archive.path": "data/events.json",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("CATALOG_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "CATALOG_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
