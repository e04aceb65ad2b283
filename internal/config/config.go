// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/okian/reelo/internal/domain/elo"
	"github.com/okian/reelo/internal/domain/sampler"
)

// Store backend identifiers.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendSheets = "sheets"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBackend selects the record store: memory, sqlite or sheets.
	StoreBackend string `koanf:"store_backend"`

	// SQLitePath locates the database file for the sqlite backend.
	SQLitePath string `koanf:"sqlite_path"`

	// Sheet settings for the sheets backend.
	SheetID          string `koanf:"sheet_id"`
	SheetName        string `koanf:"sheet_name"`
	SheetCredentials string `koanf:"sheet_credentials"`

	// EloK is the K-factor applied per vote.
	EloK int `koanf:"elo_k"`

	// SamplerAttempts bounds the genre-overlap rejection sampling loop.
	SamplerAttempts int `koanf:"sampler_attempts"`

	// DedupeSize bounds the consumed-duel-id cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		StoreBackend:        BackendSQLite,
		SQLitePath:          "reelo.db",
		SheetName:           "Movies",
		EloK:                elo.DefaultK,
		SamplerAttempts:     sampler.DefaultMaxAttempts,
		DedupeSize:          10_000,
		MaxLeaderboardLimit: 500,
	}
}
