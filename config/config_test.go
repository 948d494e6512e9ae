package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Remote.BaseURL == "" {
		t.Error("default base URL should be set")
	}
	if cfg.Remote.RequestedWith != "XMLHttpRequest" {
		t.Errorf("RequestedWith = %q", cfg.Remote.RequestedWith)
	}
	if cfg.Database.Type != SQLite {
		t.Errorf("default database = %s, want sqlite", cfg.Database.Type)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("auto-migrate should default to on")
	}
}

func TestConfigBuilder(t *testing.T) {
	cfg := NewConfigBuilder().
		WithBaseURL("https://other.takeaspot.com").
		WithDatabase(PostgreSQL, "postgres://localhost/spotter").
		WithSessionStore("/tmp/s.bin", "secret").
		WithDefaultService(900).
		WithRateLimit(true, 5, 10).
		Build()

	if cfg.Remote.BaseURL != "https://other.takeaspot.com" {
		t.Errorf("BaseURL = %q", cfg.Remote.BaseURL)
	}
	if cfg.Database.Type != PostgreSQL || cfg.Database.ConnectionURL != "postgres://localhost/spotter" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Session.StorePath != "/tmp/s.bin" || cfg.Session.Passphrase != "secret" {
		t.Errorf("session = %+v", cfg.Session)
	}
	if cfg.Remote.DefaultServiceID != 900 {
		t.Errorf("DefaultServiceID = %d", cfg.Remote.DefaultServiceID)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.RequestsPerSec != 5 || cfg.RateLimit.BurstSize != 10 {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}

	// Untouched fields keep their defaults.
	if cfg.Remote.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.Remote.RequestTimeout)
	}
}
