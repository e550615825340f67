package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadFromFiles_Defaults(t *testing.T) {
	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Server.Addr != "localhost:5001" {
		t.Errorf("Expected addr localhost:5001, got %s", cfg.Server.Addr)
	}
	if cfg.Market.HTTPTimeout.Duration != 10*time.Second {
		t.Errorf("Expected 10s market timeout, got %s", cfg.Market.HTTPTimeout)
	}
	if cfg.Market.MaxConcurrency != 8 {
		t.Errorf("Expected max concurrency 8, got %d", cfg.Market.MaxConcurrency)
	}
	if !cfg.Render.PDFEnabled {
		t.Error("Expected PDF rendering enabled by default")
	}
}

func TestLoadFromFiles_TOML(t *testing.T) {
	path := writeConfigFile(t, `
[server]
port = "8080"
host = "0.0.0.0"
public_base_url = "https://share.example.com/"

[market]
http_timeout = "3s"
cache_ttl = "1h"
max_concurrency = 2

[render]
pdf_enabled = false
currency = "EUR"
`)

	cfg, err := LoadFromFiles(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("Expected addr 0.0.0.0:8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.PublicBaseURL != "https://share.example.com" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.Server.PublicBaseURL)
	}
	if cfg.Market.HTTPTimeout.Duration != 3*time.Second {
		t.Errorf("Expected 3s, got %s", cfg.Market.HTTPTimeout)
	}
	if cfg.Market.CacheTTL.Duration != time.Hour {
		t.Errorf("Expected 1h, got %s", cfg.Market.CacheTTL)
	}
	if cfg.Render.PDFEnabled {
		t.Error("Expected PDF rendering disabled")
	}
	if cfg.Render.Currency != "EUR" {
		t.Errorf("Expected EUR, got %s", cfg.Render.Currency)
	}
	// Untouched sections keep defaults
	if cfg.Database.Path != "./data/portfolio_share.db" {
		t.Errorf("Expected default db path, got %s", cfg.Database.Path)
	}
}

func TestLoadFromFiles_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
[server]
port = "8080"
`)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MARKET_CACHE_TTL", "2m")
	t.Setenv("RENDER_PDF_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadFromFiles(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected env port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Market.CacheTTL.Duration != 2*time.Minute {
		t.Errorf("Expected 2m, got %s", cfg.Market.CacheTTL)
	}
	if cfg.Render.PDFEnabled {
		t.Error("Expected env to disable PDF rendering")
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("Unexpected origins: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadFromFiles_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFromFiles(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("invalid duration in file", func(t *testing.T) {
		path := writeConfigFile(t, `
[market]
http_timeout = "soon"
`)
		if _, err := LoadFromFiles(path); err == nil {
			t.Error("Expected error for invalid duration")
		}
	})

	t.Run("invalid concurrency env", func(t *testing.T) {
		t.Setenv("MARKET_MAX_CONCURRENCY", "0")
		if _, err := LoadFromFiles(); err == nil {
			t.Error("Expected error for zero concurrency")
		}
	})
}
