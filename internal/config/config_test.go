package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `env: prod
http:
  host: 0.0.0.0
  port: "9000"
store:
  database_path: /var/lib/techtimes/kv.db
  quota_bytes: 1048576
gemini:
  api_key: secret
log_level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "prod" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if got := cfg.HTTP.Addr(); got != "0.0.0.0:9000" {
		t.Errorf("HTTP.Addr() = %q", got)
	}
	if cfg.Store.QuotaBytes != 1048576 {
		t.Errorf("QuotaBytes = %d", cfg.Store.QuotaBytes)
	}
	if cfg.Gemini.APIKey != "secret" {
		t.Errorf("APIKey = %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q; want default", cfg.Gemini.Model)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadDefaultsFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HTTP_PORT", "8099")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.HTTP.Addr(); got != "127.0.0.1:8099" {
		t.Errorf("HTTP.Addr() = %q", got)
	}
	if cfg.Store.DatabasePath != "./data/techtimes.db" {
		t.Errorf("DatabasePath = %q; want default", cfg.Store.DatabasePath)
	}
	if cfg.Store.QuotaBytes != 5242880 {
		t.Errorf("QuotaBytes = %d; want 5 MiB default", cfg.Store.QuotaBytes)
	}
	if cfg.Gemini.APIKey != "" {
		t.Errorf("APIKey = %q; want empty", cfg.Gemini.APIKey)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
