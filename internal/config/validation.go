package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/genesis"
	"github.com/LeJamon/goPreauthLedger/internal/storage/backend"
	"github.com/LeJamon/goPreauthLedger/internal/storage/compression"
	"github.com/LeJamon/goPreauthLedger/internal/storage/journal"
)

var (
	ErrInvalidBaseReserve   = errors.New("base_reserve must be positive")
	ErrInvalidMaxNative     = errors.New("max_native_balance must exceed base_reserve")
	ErrMissingStoragePath   = errors.New("storage.path is required for persistent backends")
	ErrInvalidCacheSize     = errors.New("storage.cache_size must be >= 0")
	ErrInvalidLogFormat     = errors.New("log.format must be text or json")
	ErrMissingMetricsListen = errors.New("metrics.listen is required when metrics are enabled")
)

// ValidateConfig performs comprehensive validation on the complete configuration
func ValidateConfig(config *Config) error {
	if err := config.Ledger.Validate(); err != nil {
		return fmt.Errorf("ledger validation failed: %w", err)
	}
	if err := config.Storage.Validate(); err != nil {
		return fmt.Errorf("storage validation failed: %w", err)
	}
	if err := config.Journal.Validate(); err != nil {
		return fmt.Errorf("journal validation failed: %w", err)
	}
	if err := config.Log.Validate(); err != nil {
		return fmt.Errorf("log validation failed: %w", err)
	}
	if config.Metrics.Enabled && config.Metrics.Listen == "" {
		return ErrMissingMetricsListen
	}
	if _, err := genesis.Entries(config.Genesis.Accounts); err != nil {
		return fmt.Errorf("genesis validation failed: %w", err)
	}
	return nil
}

// Validate checks the ledger parameters
func (c *LedgerConfig) Validate() error {
	if c.BaseReserve <= 0 {
		return ErrInvalidBaseReserve
	}
	if c.MaxNativeBalance <= c.BaseReserve {
		return ErrInvalidMaxNative
	}
	return nil
}

// Validate checks the storage section
func (c *StorageConfig) Validate() error {
	if !containsString(backend.Available(), c.Backend) {
		return fmt.Errorf("unknown backend %q (available: %s)", c.Backend, strings.Join(backend.Available(), ", "))
	}
	if backend.IsPersistent(c.Backend) && c.Path == "" {
		return ErrMissingStoragePath
	}
	if _, err := compression.Get(c.Compression); err != nil {
		return err
	}
	if c.CacheSize < 0 {
		return ErrInvalidCacheSize
	}
	return nil
}

// Validate checks the journal section
func (c *JournalConfig) Validate() error {
	switch c.Driver {
	case "", JournalDriverNone:
		return nil
	case journal.DriverSQLite, journal.DriverPostgres:
		if c.DSN == "" {
			return journal.ErrMissingDSN
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", journal.ErrUnknownDriver, c.Driver)
	}
}

// Validate checks the log section
func (c *LogConfig) Validate() error {
	if _, err := logrus.ParseLevel(c.Level); err != nil {
		return err
	}
	if c.Format != "text" && c.Format != "json" {
		return ErrInvalidLogFormat
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
