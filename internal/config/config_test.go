package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSubstitutesEnvPlaceholders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9090"
mongo:
  uri: mongodb://db:27017
  database: kanmind
auth:
  token_secret: ${TEST_TOKEN_SECRET}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("TEST_TOKEN_SECRET", "sssh")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Auth.TokenSecret != "sssh" {
		t.Errorf("secret = %q, want substituted value", cfg.Auth.TokenSecret)
	}
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("ttl hours = %d, want default 24", cfg.Auth.TokenTTLHours)
	}
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("TOKEN_SECRET", "from-env")
	t.Setenv("PORT", "8088")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8088" {
		t.Errorf("port = %q, want env fallback 8088", cfg.Server.Port)
	}
	if cfg.Auth.TokenSecret != "from-env" {
		t.Errorf("secret = %q, want env fallback", cfg.Auth.TokenSecret)
	}
}

func TestLoadRequiresTokenSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("TOKEN_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("Load should fail without a token secret")
	}
}
