package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nadapters_dir: /tmp\nexclusive_mode: false\nsession_ttl: 2h\ncors_origins: [\"http://a\"]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.AdaptersDir != "/tmp" || cfg.Exclusive() || cfg.SessionTTL != 2*time.Hour || len(cfg.CORSOrigins) != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","max_body_bytes":42,"log_format":"json","access_secret":"pw"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.MaxBodyBytes != 42 || cfg.LogFormat != "json" || cfg.AccessSecret != "pw" || !cfg.Exclusive() {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nlog_level=\"debug\"\nexclusive_mode=true\nsession_ttl=\"30m\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.LogLevel != "debug" || !cfg.Exclusive() || cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	p = writeTempFile(t, d, "ttl.yaml", "session_ttl: forever\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected duration parse error")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GATEWAYD_ADDR", ":1234")
	t.Setenv("GATEWAYD_EXCLUSIVE_MODE", "false")
	t.Setenv("GATEWAYD_SESSION_TTL", "90m")
	t.Setenv("GATEWAYD_CORS_ORIGINS", "http://a,http://b")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	if cfg.Addr != ":1234" || cfg.Exclusive() || cfg.SessionTTL != 90*time.Minute || len(cfg.CORSOrigins) != 2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	t.Setenv("GATEWAYD_MAX_BODY_BYTES", "lots")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMergeAndValidate(t *testing.T) {
	off := false
	cfg := Merge(Defaults(), Config{Addr: ":9000", ExclusiveMode: &off, CORSOrigins: []string{"x"}})
	if cfg.Addr != ":9000" || cfg.Exclusive() || cfg.LogLevel != "info" || cfg.MaxBodyBytes != 1<<20 {
		t.Fatalf("unexpected merge: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	bad := []Config{
		Merge(Defaults(), Config{LogFormat: "xml"}),
		Merge(Defaults(), Config{SessionKey: "short"}),
		Merge(Defaults(), Config{MaxBodyBytes: -1}),
		{LogFormat: "json"},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", c)
		}
	}
}
