package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by Defaults.
type Config struct {
	Addr         string `json:"addr" yaml:"addr" toml:"addr" env:"GATEWAYD_ADDR"`
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level" env:"GATEWAYD_LOG_LEVEL"`
	LogFormat    string `json:"log_format" yaml:"log_format" toml:"log_format" env:"GATEWAYD_LOG_FORMAT"`
	MaxBodyBytes int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"GATEWAYD_MAX_BODY_BYTES"`

	// AdaptersDir, when set, replaces the built-in adapter seed with the
	// weight files found in the directory.
	AdaptersDir string `json:"adapters_dir" yaml:"adapters_dir" toml:"adapters_dir" env:"GATEWAYD_ADAPTERS_DIR"`
	// ExclusiveMode is the initial exclusive mode flag. Nil means enabled.
	ExclusiveMode *bool `json:"exclusive_mode" yaml:"exclusive_mode" toml:"exclusive_mode" env:"GATEWAYD_EXCLUSIVE_MODE"`

	AccessSecret string        `json:"access_secret" yaml:"access_secret" toml:"access_secret" env:"GATEWAYD_ACCESS_SECRET"`
	SessionKey   string        `json:"session_key" yaml:"session_key" toml:"session_key" env:"GATEWAYD_SESSION_KEY"`
	SessionTTL   time.Duration `json:"session_ttl" yaml:"session_ttl" toml:"session_ttl" env:"GATEWAYD_SESSION_TTL"`

	CORSEnabled bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled" env:"GATEWAYD_CORS_ENABLED"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" env:"GATEWAYD_CORS_ORIGINS" envSeparator:","`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	on := true
	return Config{
		Addr:          ":8080",
		LogLevel:      "info",
		LogFormat:     "console",
		MaxBodyBytes:  1 << 20,
		ExclusiveMode: &on,
		SessionTTL:    12 * time.Hour,
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		var raw fileConfig
		if err := yaml.Unmarshal(b, &raw); err != nil {
			return cfg, err
		}
		return raw.resolve()
	case ".json":
		var raw fileConfig
		if err := json.Unmarshal(b, &raw); err != nil {
			return cfg, err
		}
		return raw.resolve()
	case ".toml":
		var raw fileConfig
		if err := toml.Unmarshal(b, &raw); err != nil {
			return cfg, err
		}
		return raw.resolve()
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
}

// FromEnv reads GATEWAYD_* variables. Unset variables leave zero values.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Merge overlays the non-zero fields of over onto base.
func Merge(base, over Config) Config {
	if over.Addr != "" {
		base.Addr = over.Addr
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.LogFormat != "" {
		base.LogFormat = over.LogFormat
	}
	if over.MaxBodyBytes != 0 {
		base.MaxBodyBytes = over.MaxBodyBytes
	}
	if over.AdaptersDir != "" {
		base.AdaptersDir = over.AdaptersDir
	}
	if over.ExclusiveMode != nil {
		v := *over.ExclusiveMode
		base.ExclusiveMode = &v
	}
	if over.AccessSecret != "" {
		base.AccessSecret = over.AccessSecret
	}
	if over.SessionKey != "" {
		base.SessionKey = over.SessionKey
	}
	if over.SessionTTL != 0 {
		base.SessionTTL = over.SessionTTL
	}
	if over.CORSEnabled {
		base.CORSEnabled = true
	}
	if len(over.CORSOrigins) > 0 {
		base.CORSOrigins = append([]string(nil), over.CORSOrigins...)
	}
	return base
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes must not be negative")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session_ttl must not be negative")
	}
	if c.SessionKey != "" && len(c.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 bytes")
	}
	return nil
}

// Exclusive reports the configured initial exclusive mode (default on).
func (c Config) Exclusive() bool {
	return c.ExclusiveMode == nil || *c.ExclusiveMode
}
