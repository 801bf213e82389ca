package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	for key := range defaults {
		t.Setenv(key, "")
	}

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseDriver != "postgres" || cfg.Port != "8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SessionTTL != 168*time.Hour || cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("unexpected ttl defaults: session=%v cache=%v", cfg.SessionTTL, cfg.CacheTTL)
	}
	if cfg.PageSize != 5 {
		t.Fatalf("expected page size 5, got %d", cfg.PageSize)
	}
	if cfg.SecretKey != defaultSecretKey {
		t.Fatalf("expected default secret, got %q", cfg.SecretKey)
	}
}

func TestLoadClampsPageSize(t *testing.T) {
	t.Setenv("PAGE_SIZE", "0")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PageSize != 5 {
		t.Fatalf("expected page size fallback 5, got %d", cfg.PageSize)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("PAGE_SIZE", "12")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.DatabaseURL != "file:test.db" {
		t.Fatalf("unexpected database config: %+v", cfg)
	}
	if cfg.SecretKey != "s3cret" {
		t.Fatalf("expected secret from env, got %q", cfg.SecretKey)
	}
	if !cfg.CookieSecure {
		t.Fatal("expected secure cookies")
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected 2h session ttl, got %v", cfg.SessionTTL)
	}
	if cfg.PageSize != 12 {
		t.Fatalf("expected page size 12, got %d", cfg.PageSize)
	}
}
