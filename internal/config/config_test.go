package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.DatabaseDriver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %s", cfg.DatabaseDriver)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("expected cache disabled by default, got %s", cfg.RedisAddr)
	}
	if cfg.DBConnectAttempts != 5 {
		t.Errorf("expected 5 connect attempts, got %d", cfg.DBConnectAttempts)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/att")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")

	cfg := Load()
	if cfg.HTTPPort != "9999" {
		t.Errorf("PORT not applied: %s", cfg.HTTPPort)
	}
	if cfg.DatabaseDriver != "postgres" || cfg.DatabaseURL != "postgres://localhost/att" {
		t.Errorf("database env not applied: %s %s", cfg.DatabaseDriver, cfg.DatabaseURL)
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Errorf("CACHE_TTL not applied: %s", cfg.CacheTTL)
	}
	if cfg.RateLimitPerMin != 30 {
		t.Errorf("RATE_LIMIT_PER_MIN not applied: %d", cfg.RateLimitPerMin)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")

	cfg := Load()
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected fallback TTL, got %s", cfg.CacheTTL)
	}
	if cfg.RateLimitPerMin != 120 {
		t.Errorf("expected fallback rate limit, got %d", cfg.RateLimitPerMin)
	}
}
