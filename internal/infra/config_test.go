package infra

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig() expected error when DATABASE_URL is missing")
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig() expected error when JWT_SECRET is missing")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("IDLE_TIMEOUT_MINUTES", "")
	t.Setenv("PAGE_SIZE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.IdleTimeout != 30*time.Minute {
		t.Fatalf("IdleTimeout mismatch: got %s want 30m", cfg.IdleTimeout)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("PageSize mismatch: got %d want 10", cfg.PageSize)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("AllowedOrigins mismatch: %#v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigDBPoolSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_MAX_CONNS", "16")
	t.Setenv("DB_CONNECT_TIMEOUT_SECONDS", "3")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.DBMaxConns != 16 {
		t.Fatalf("DBMaxConns = %d, want 16", cfg.DBMaxConns)
	}
	if cfg.DBMinConns != 2 {
		t.Fatalf("DBMinConns = %d, want default 2", cfg.DBMinConns)
	}
	if cfg.DBConnectTimeout != 3*time.Second {
		t.Fatalf("DBConnectTimeout = %s, want 3s", cfg.DBConnectTimeout)
	}
}

func TestLoadConfigRejectsMinConnsAboveMax(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig() expected error for DB_MIN_CONNS > DB_MAX_CONNS")
	}
}

func TestLoadConfigRejectsZeroPageSize(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PAGE_SIZE", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig() expected error for PAGE_SIZE=0")
	}
}

func TestLoadConfigSplitsOrigins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://staging.example.com" {
		t.Fatalf("AllowedOrigins mismatch: %#v", cfg.AllowedOrigins)
	}
}
