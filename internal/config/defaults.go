package config

import (
	"math"
	"time"

	"github.com/spf13/viper"

	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
)

// JournalDriverNone disables the journal.
const JournalDriverNone = "none"

// setDefaults sets all default values
func setDefaults(v *viper.Viper) {
	// Ledger parameters
	v.SetDefault("ledger.base_reserve", tx.DefaultBaseReserve)
	v.SetDefault("ledger.max_native_balance", int64(math.MaxInt64))
	v.SetDefault("ledger.ledger_sequence", 1)

	// Entry store
	v.SetDefault("storage.backend", "pebble")
	v.SetDefault("storage.path", "./data/ledger")
	v.SetDefault("storage.compression", "lz4")
	v.SetDefault("storage.cache_size", 4096)

	// Journal
	v.SetDefault("journal.driver", JournalDriverNone)
	v.SetDefault("journal.dsn", "")
	v.SetDefault("journal.max_open_conns", 4)
	v.SetDefault("journal.timeout", 5*time.Second)

	// Logging
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Metrics
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen", "127.0.0.1:9464")
}
