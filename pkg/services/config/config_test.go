package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "valid.yaml")
	// No indentation inside the backtick block to avoid YAML parsing errors
	content := `server:
  host: "0.0.0.0"
  port: "9090"
sources:
  business_url: "http://business.local"
  express_url: "http://express.local"
  treasury_url: "http://treasury.local"
  settings_url: "http://settings.local"
  ledger_url: "http://ledger.local"
rates:
  default: 62.5
  cache_ttl: 10m
db_path: "custom.db"`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// When
	cfg, err := LoadConfig(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected Host=0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected Port=9090, got %s", cfg.Server.Port)
	}
	if cfg.Sources.BusinessURL != "http://business.local" {
		t.Errorf("expected BusinessURL=http://business.local, got %s", cfg.Sources.BusinessURL)
	}
	if cfg.Rates.Default != 62.5 {
		t.Errorf("expected Rates.Default=62.5, got %v", cfg.Rates.Default)
	}
	if cfg.Rates.CacheTTL != 10*time.Minute {
		t.Errorf("expected Rates.CacheTTL=10m, got %v", cfg.Rates.CacheTTL)
	}
	if cfg.DbPath != "custom.db" {
		t.Errorf("expected DbPath=custom.db, got %s", cfg.DbPath)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.yaml")
	content := `sources:
  business_url: "http://business.local"
  express_url: "http://express.local"
  treasury_url: "http://treasury.local"
  settings_url: "http://settings.local"
  ledger_url: "http://ledger.local"`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default Port=8080, got %s", cfg.Server.Port)
	}
	if cfg.Rates.Default != 63 {
		t.Errorf("expected default rate=63, got %v", cfg.Rates.Default)
	}
	if cfg.DbPath != "ops-atlas.db" {
		t.Errorf("expected default DbPath=ops-atlas.db, got %s", cfg.DbPath)
	}
}

func TestLoadConfig_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	err := os.WriteFile(path, []byte("server: host: bad"), 0o644)
	if err != nil {
		t.Fatalf("failed to write bad config: %v", err)
	}

	_, err = LoadConfig(path)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}
