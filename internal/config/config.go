// Package config holds the process-wide browserstore configuration. It is
// loaded once at startup and passed to the constructors that need it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"browserstore/internal/codec"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// AreaName names a storage area.
type AreaName string

const (
	AreaLocal   AreaName = "local"
	AreaSession AreaName = "session"
)

// Backend names the implementation of the local area.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendSQLite Backend = "sqlite"
	BackendNATS   Backend = "nats"
)

type Config struct {
	// Storage is the area bound to the durable role.
	Storage AreaName `env:"BROWSERSTORE_STORAGE" envDefault:"local"`
	// Flash is the area bound to the transient role.
	Flash AreaName `env:"BROWSERSTORE_FLASH" envDefault:"session"`
	// Hash stores keys as digests and values as base64.
	Hash          bool   `env:"BROWSERSTORE_HASH" envDefault:"false"`
	HashAlgorithm string `env:"BROWSERSTORE_HASH_ALGORITHM" envDefault:"md5"`
	// CacheExpire is the default TTL in seconds.
	CacheExpire int `env:"BROWSERSTORE_CACHE_EXPIRE" envDefault:"10"`

	LocalBackend Backend `env:"BROWSERSTORE_LOCAL_BACKEND" envDefault:"memory"`
	SQLitePath   string  `env:"BROWSERSTORE_SQLITE_PATH" envDefault:"browserstore.db"`
	NATSURL      string  `env:"BROWSERSTORE_NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	NATSBucket   string  `env:"BROWSERSTORE_NATS_BUCKET" envDefault:"browserstore_local"`

	MetricsAddr string `env:"BROWSERSTORE_METRICS_ADDR"`
	LogLevel    string `env:"BROWSERSTORE_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalizes enum fields and reports the first invalid one.
func (c *Config) Validate() error {
	var err error
	if c.Storage, err = parseArea(string(c.Storage)); err != nil {
		return fmt.Errorf("%w: storage: %v", ErrInvalid, err)
	}
	if c.Flash, err = parseArea(string(c.Flash)); err != nil {
		return fmt.Errorf("%w: flash: %v", ErrInvalid, err)
	}
	if _, err := codec.ParseAlgorithm(c.HashAlgorithm); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch b := Backend(strings.ToLower(strings.TrimSpace(string(c.LocalBackend)))); b {
	case BackendMemory, BackendSQLite, BackendNATS:
		c.LocalBackend = b
	default:
		return fmt.Errorf("%w: unknown local backend %q", ErrInvalid, c.LocalBackend)
	}
	if c.LocalBackend == BackendSQLite && strings.TrimSpace(c.SQLitePath) == "" {
		return fmt.Errorf("%w: sqlite path is required", ErrInvalid)
	}
	if c.LocalBackend == BackendNATS && strings.TrimSpace(c.NATSBucket) == "" {
		return fmt.Errorf("%w: nats bucket is required", ErrInvalid)
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Codec returns the codec selected by Hash and HashAlgorithm.
func (c Config) Codec() codec.Codec {
	alg, err := codec.ParseAlgorithm(c.HashAlgorithm)
	if err != nil {
		alg = codec.MD5
	}
	return codec.Codec{HashKeys: c.Hash, Hash: alg}
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

func parseArea(s string) (AreaName, error) {
	switch a := AreaName(strings.ToLower(strings.TrimSpace(s))); a {
	case AreaLocal, AreaSession:
		return a, nil
	default:
		return "", fmt.Errorf("unknown area %q", s)
	}
}
