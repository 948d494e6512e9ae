package config

import "time"

type DatabaseType string

const (
	PostgreSQL DatabaseType = "postgres"
	MySQL      DatabaseType = "mysql"
	SQLite     DatabaseType = "sqlite"
)

// Config holds all configuration for the booking engine
type Config struct {
	Remote    RemoteConfig
	Session   SessionConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
}

// RemoteConfig holds settings for the remote booking service
type RemoteConfig struct {
	BaseURL string // e.g. "https://ucam.takeaspot.com"

	// Headers the service requires on every call so the client looks
	// like a real browser. Reproduced exactly for interoperability.
	UserAgent      string
	Accept         string
	RequestedWith  string
	RequestTimeout time.Duration

	// DefaultServiceID is tried first when picking the library service
	// from the catalog; 0 means "just take the first".
	DefaultServiceID int
}

// SessionConfig holds local session storage settings
type SessionConfig struct {
	// Path of the encrypted session file
	StorePath string
	// Passphrase the storage key is derived from. Empty is a
	// construction-time error: there is no unencrypted fallback.
	Passphrase string
}

// DatabaseConfig holds the account database connection settings
type DatabaseConfig struct {
	Type          DatabaseType
	ConnectionURL string
	MaxOpenConns  int
	MaxIdleConns  int
	ConnMaxLife   time.Duration
	AutoMigrate   bool // Automatically run migrations
}

// RateLimitConfig paces outgoing requests to the booking service
type RateLimitConfig struct {
	Enabled        bool
	RequestsPerSec float64
	BurstSize      int
}

func DefaultConfig() *Config {
	return &Config{
		Remote: RemoteConfig{
			BaseURL:          "https://ucam.takeaspot.com",
			UserAgent:        "Mozilla/5.0 (Linux; Android 10; K) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			Accept:           "application/json, text/plain, */*",
			RequestedWith:    "XMLHttpRequest",
			RequestTimeout:   30 * time.Second,
			DefaultServiceID: 845, // BIBLIOTECA MURCIA
		},
		Session: SessionConfig{
			StorePath: "spotter_session.bin",
		},
		Database: DatabaseConfig{
			Type:          SQLite,
			ConnectionURL: "spotter.db",
			MaxOpenConns:  25,
			MaxIdleConns:  5,
			ConnMaxLife:   5 * time.Minute,
			AutoMigrate:   true,
		},
		RateLimit: RateLimitConfig{
			Enabled:        true,
			RequestsPerSec: 2,
			BurstSize:      4,
		},
	}
}

// ConfigBuilder provides a interface for building Config
type ConfigBuilder struct {
	config *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: DefaultConfig(),
	}
}

// WithBaseURL sets the booking service base URL
func (b *ConfigBuilder) WithBaseURL(baseURL string) *ConfigBuilder {
	b.config.Remote.BaseURL = baseURL
	return b
}

// WithDatabase sets the account database configuration
func (b *ConfigBuilder) WithDatabase(dbType DatabaseType, connURL string) *ConfigBuilder {
	b.config.Database.Type = dbType
	b.config.Database.ConnectionURL = connURL
	return b
}

// WithSessionStore sets the encrypted session file path and passphrase
func (b *ConfigBuilder) WithSessionStore(path, passphrase string) *ConfigBuilder {
	b.config.Session.StorePath = path
	b.config.Session.Passphrase = passphrase
	return b
}

// WithDefaultService sets the preferred service id
func (b *ConfigBuilder) WithDefaultService(id int) *ConfigBuilder {
	b.config.Remote.DefaultServiceID = id
	return b
}

// WithRateLimit configures request pacing
func (b *ConfigBuilder) WithRateLimit(enabled bool, perSec float64, burst int) *ConfigBuilder {
	b.config.RateLimit.Enabled = enabled
	b.config.RateLimit.RequestsPerSec = perSec
	b.config.RateLimit.BurstSize = burst
	return b
}

// Build returns the final Config
func (b *ConfigBuilder) Build() *Config {
	return b.config
}
