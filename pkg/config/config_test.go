package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogTTL, "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env to be dev, got %q", cfg.App.Env)
	}
	if cfg.Backend.APIURL != "https://larek-api.example.com/api/weblarek" {
		t.Fatalf("trailing slash should be trimmed, got %q", cfg.Backend.APIURL)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.Backend.Timeout)
	}
	if cfg.HTTP.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.HTTP.Port)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected default cors origins %v", cfg.HTTP.CORSOrigins)
	}
	if got := cfg.Redis.CatalogTTL; got != 90*time.Second {
		t.Fatalf("expected catalog ttl 90s, got %v", got)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without url or address")
	}
}

func TestLoad_CORSOriginsList(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCORSOrigins, "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected cors origins %v", cfg.HTTP.CORSOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAPIURL); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAPIURL, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsRelativeURL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCDNURL, "/content")

	if _, err := Load(); err == nil {
		t.Fatal("expected relative cdn url to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "dev")
	t.Setenv(EnvAPIURL, "https://larek-api.example.com/api/weblarek/")
	t.Setenv(EnvCDNURL, "https://larek-api.example.com/content/weblarek")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}

func TestRedisConfigEnabled(t *testing.T) {
	if !(RedisConfig{URL: "redis://localhost:6379/0"}).Enabled() {
		t.Fatal("expected url to enable redis")
	}
	if !(RedisConfig{Address: "localhost:6379"}).Enabled() {
		t.Fatal("expected address to enable redis")
	}
}
