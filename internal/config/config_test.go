package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("EXTRACTOR", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.Extractor != "pattern" {
		t.Fatalf("expected pattern extractor by default, got %s", cfg.Extractor)
	}
	if cfg.ExtractionTimeout != 10*time.Second {
		t.Fatalf("expected default extraction timeout, got %s", cfg.ExtractionTimeout)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("expected empty database url, got %s", cfg.DatabaseURL)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("EXTRACTOR", " Model ")
	t.Setenv("EXTRACTION_TIMEOUT", "3s")
	t.Setenv("REMINDER_INTERVAL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CHAT_RATE_PER_SECOND", "5.5")
	t.Setenv("CHAT_RATE_BURST", "20")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected database url, got %s", cfg.DatabaseURL)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected redis addr, got %s", cfg.RedisAddr)
	}
	if cfg.Extractor != "model" {
		t.Fatalf("expected normalized extractor, got %s", cfg.Extractor)
	}
	if cfg.ExtractionTimeout != 3*time.Second {
		t.Fatalf("expected extraction timeout override, got %s", cfg.ExtractionTimeout)
	}
	if cfg.ReminderInterval != 30*time.Second {
		t.Fatalf("expected reminder interval override, got %s", cfg.ReminderInterval)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected parsed CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ChatRatePerSecond != 5.5 || cfg.ChatRateBurst != 20 {
		t.Fatalf("expected rate limit overrides, got %v/%v", cfg.ChatRatePerSecond, cfg.ChatRateBurst)
	}
}

func TestGetEnvAsDurationFallback(t *testing.T) {
	t.Setenv("EXTRACTION_TIMEOUT", "not-a-duration")
	cfg := Load()
	if cfg.ExtractionTimeout != 10*time.Second {
		t.Fatalf("expected fallback timeout, got %s", cfg.ExtractionTimeout)
	}
}
