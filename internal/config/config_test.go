package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/storage/journal"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, tx.DefaultBaseReserve, config.Ledger.BaseReserve)
	assert.Equal(t, int64(math.MaxInt64), config.Ledger.MaxNativeBalance)
	assert.Equal(t, "pebble", config.Storage.Backend)
	assert.Equal(t, "lz4", config.Storage.Compression)
	assert.Equal(t, 5*time.Second, config.Journal.Timeout)
	assert.False(t, config.JournalEnabled())
	assert.Equal(t, "", config.GetConfigPath())

	assert.Equal(t, tx.DefaultConfig(), config.TxConfig())
}

func TestLoadConfig(t *testing.T) {
	issuer := keypair.MustRandom().Address()
	path := writeConfig(t, "preauthd.toml", `
[ledger]
base_reserve = 1000000

[storage]
backend = "bbolt"
path = "/tmp/preauthd/ledger.db"
compression = "none"
cache_size = 16

[journal]
driver = "sqlite"
dsn = ":memory:"
timeout = "2s"

[log]
level = "debug"
format = "json"

[[genesis.accounts]]
address = "`+issuer+`"
balance = 1000000000
flags = 3
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1_000_000), config.Ledger.BaseReserve)
	assert.Equal(t, "bbolt", config.Storage.Backend)
	assert.Equal(t, "none", config.Storage.Compression)
	assert.Equal(t, 16, config.Storage.CacheSize)
	assert.True(t, config.JournalEnabled())
	assert.Equal(t, journal.Config{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 4, Timeout: 2 * time.Second}, config.JournalOptions())
	assert.Equal(t, "json", config.Log.Format)
	require.Len(t, config.Genesis.Accounts, 1)
	assert.Equal(t, issuer, config.Genesis.Accounts[0].Address)
	assert.Equal(t, int64(1_000_000_000), config.Genesis.Accounts[0].Balance)
	assert.Equal(t, uint32(3), config.Genesis.Accounts[0].Flags)
	assert.Equal(t, path, config.GetConfigPath())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PREAUTHD_STORAGE_BACKEND", "memory")
	t.Setenv("PREAUTHD_LEDGER_BASE_RESERVE", "42")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "memory", config.Storage.Backend)
	assert.Equal(t, int64(42), config.Ledger.BaseReserve)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Ledger:  LedgerConfig{BaseReserve: 10, MaxNativeBalance: 100},
			Storage: StorageConfig{Backend: "memory", Compression: "none"},
			Log:     LogConfig{Level: "info", Format: "text"},
		}
	}
	require.NoError(t, ValidateConfig(valid()))

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"ZeroReserve", func(c *Config) { c.Ledger.BaseReserve = 0 }, ErrInvalidBaseReserve},
		{"CeilingBelowReserve", func(c *Config) { c.Ledger.MaxNativeBalance = 10 }, ErrInvalidMaxNative},
		{"PersistentWithoutPath", func(c *Config) { c.Storage.Backend = "pebble" }, ErrMissingStoragePath},
		{"NegativeCache", func(c *Config) { c.Storage.CacheSize = -1 }, ErrInvalidCacheSize},
		{"JournalWithoutDSN", func(c *Config) { c.Journal.Driver = "postgres" }, journal.ErrMissingDSN},
		{"UnknownJournal", func(c *Config) { c.Journal.Driver = "mysql" }, journal.ErrUnknownDriver},
		{"LogFormat", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidLogFormat},
		{"MetricsListen", func(c *Config) { c.Metrics.Enabled = true }, ErrMissingMetricsListen},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			err := ValidateConfig(c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), err.Error())
		})
	}

	t.Run("UnknownBackend", func(t *testing.T) {
		c := valid()
		c.Storage.Backend = "nudb"
		assert.Error(t, ValidateConfig(c))
	})
	t.Run("UnknownCompression", func(t *testing.T) {
		c := valid()
		c.Storage.Compression = "zstd"
		assert.Error(t, ValidateConfig(c))
	})
	t.Run("LogLevel", func(t *testing.T) {
		c := valid()
		c.Log.Level = "loud"
		assert.Error(t, ValidateConfig(c))
	})
}

func TestSaveExampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.toml")
	require.NoError(t, SaveExampleConfig(path))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", config.Journal.Driver)
	assert.Equal(t, "/var/lib/preauthd/ledger", config.Storage.Path)
}
