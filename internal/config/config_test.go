package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigs(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestMustLoad(t *testing.T) {
	dir := writeConfigs(t,
		"env: production\nport: 3001\nfrontend_url: https://www.app.example.com\njwt_ttl: 24h\nlog_level: info\n",
		"jwt_key: 'k'\npg:\n  host: localhost\n  port: 5432\n  user: u\n  password: p\n  dbname: backoffice\n")

	cfg := MustLoad(dir)

	if cfg.JwtKey() != "k" {
		t.Errorf("jwt key = %q, want k", cfg.JwtKey())
	}
	if cfg.JwtTTL() != 24*time.Hour {
		t.Errorf("jwt ttl = %v, want 24h", cfg.JwtTTL())
	}
	if !cfg.Production() {
		t.Error("expected production mode")
	}
}

func TestMustLoad_MissingJwtKey(t *testing.T) {
	// A process without a signing secret must refuse to start.
	dir := writeConfigs(t,
		"env: development\nport: 3001\njwt_ttl: 24h\n",
		"pg:\n  host: localhost\n")

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to missing jwt_key, got none")
		}
	}()

	_ = MustLoad(dir)
}

func TestMustLoad_MissingFile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to missing config file, got none")
		}
	}()

	_ = MustLoad(t.TempDir())
}
