package config

import (
	"time"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/genesis"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/storage/journal"
)

// Config represents the complete preauthd configuration
type Config struct {
	Ledger  LedgerConfig  `toml:"ledger" mapstructure:"ledger"`
	Storage StorageConfig `toml:"storage" mapstructure:"storage"`
	Journal JournalConfig `toml:"journal" mapstructure:"journal"`
	Log     LogConfig     `toml:"log" mapstructure:"log"`
	Metrics MetricsConfig `toml:"metrics" mapstructure:"metrics"`
	Genesis GenesisConfig `toml:"genesis" mapstructure:"genesis"`

	// Path the configuration was loaded from, empty for defaults only
	configPath string
}

// LedgerConfig represents the [ledger] section
type LedgerConfig struct {
	// BaseReserve is the per-entry reserve in stroops
	BaseReserve      int64  `toml:"base_reserve" mapstructure:"base_reserve"`
	MaxNativeBalance int64  `toml:"max_native_balance" mapstructure:"max_native_balance"`
	LedgerSequence   uint32 `toml:"ledger_sequence" mapstructure:"ledger_sequence"`
}

// StorageConfig represents the [storage] section
type StorageConfig struct {
	// Backend is one of memory, pebble, bbolt or leveldb
	Backend string `toml:"backend" mapstructure:"backend"`
	Path    string `toml:"path" mapstructure:"path"`

	// Compression is none or lz4
	Compression string `toml:"compression" mapstructure:"compression"`
	CacheSize   int    `toml:"cache_size" mapstructure:"cache_size"`
}

// JournalConfig represents the [journal] section
type JournalConfig struct {
	// Driver is none, sqlite or postgres
	Driver       string        `toml:"driver" mapstructure:"driver"`
	DSN          string        `toml:"dsn" mapstructure:"dsn"`
	MaxOpenConns int           `toml:"max_open_conns" mapstructure:"max_open_conns"`
	Timeout      time.Duration `toml:"timeout" mapstructure:"timeout"`
}

// LogConfig represents the [log] section
type LogConfig struct {
	Level  string `toml:"level" mapstructure:"level"`
	Format string `toml:"format" mapstructure:"format"`
}

// MetricsConfig represents the [metrics] section
type MetricsConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Listen  string `toml:"listen" mapstructure:"listen"`
}

// GenesisConfig represents the [genesis] section
type GenesisConfig struct {
	Accounts []genesis.Account `toml:"accounts" mapstructure:"accounts"`
}

// TxConfig returns the engine parameters.
func (c *Config) TxConfig() tx.Config {
	return tx.Config{
		BaseReserve:      c.Ledger.BaseReserve,
		MaxNativeBalance: c.Ledger.MaxNativeBalance,
		LedgerSequence:   c.Ledger.LedgerSequence,
	}
}

// JournalEnabled reports whether operations are journaled.
func (c *Config) JournalEnabled() bool {
	return c.Journal.Driver != "" && c.Journal.Driver != JournalDriverNone
}

// JournalOptions returns the journal connection settings.
func (c *Config) JournalOptions() journal.Config {
	return journal.Config{
		Driver:       c.Journal.Driver,
		DSN:          c.Journal.DSN,
		MaxOpenConns: c.Journal.MaxOpenConns,
		Timeout:      c.Journal.Timeout,
	}
}

// GetConfigPath returns the path the configuration was loaded from
func (c *Config) GetConfigPath() string {
	return c.configPath
}
