package config

import (
	"fmt"
	"time"
)

// fileConfig mirrors Config for file decoding. Durations are written as
// strings such as "12h" in every format.
type fileConfig struct {
	Addr          string   `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel      string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat     string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	MaxBodyBytes  int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	AdaptersDir   string   `json:"adapters_dir" yaml:"adapters_dir" toml:"adapters_dir"`
	ExclusiveMode *bool    `json:"exclusive_mode" yaml:"exclusive_mode" toml:"exclusive_mode"`
	AccessSecret  string   `json:"access_secret" yaml:"access_secret" toml:"access_secret"`
	SessionKey    string   `json:"session_key" yaml:"session_key" toml:"session_key"`
	SessionTTL    string   `json:"session_ttl" yaml:"session_ttl" toml:"session_ttl"`
	CORSEnabled   bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins   []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

func (f fileConfig) resolve() (Config, error) {
	cfg := Config{
		Addr:          f.Addr,
		LogLevel:      f.LogLevel,
		LogFormat:     f.LogFormat,
		MaxBodyBytes:  f.MaxBodyBytes,
		AdaptersDir:   f.AdaptersDir,
		ExclusiveMode: f.ExclusiveMode,
		AccessSecret:  f.AccessSecret,
		SessionKey:    f.SessionKey,
		CORSEnabled:   f.CORSEnabled,
		CORSOrigins:   f.CORSOrigins,
	}
	if f.SessionTTL != "" {
		d, err := time.ParseDuration(f.SessionTTL)
		if err != nil {
			return cfg, fmt.Errorf("session_ttl: %w", err)
		}
		cfg.SessionTTL = d
	}
	return cfg, nil
}
