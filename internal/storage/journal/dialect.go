package journal

import (
	"strconv"
	"strings"
)

// Supported drivers, named as registered with database/sql.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// dialect holds the SQL differences between drivers.
type dialect struct {
	name   string
	schema []string

	// numbered reports whether placeholders are $1, $2... instead of ?
	numbered bool
}

var dialects = map[string]dialect{
	DriverSQLite: {
		name: DriverSQLite,
		schema: []string{
			`CREATE TABLE IF NOT EXISTS operations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				ledger_seq BIGINT NOT NULL,
				op_type INTEGER NOT NULL,
				source TEXT NOT NULL,
				result_code INTEGER NOT NULL,
				result TEXT NOT NULL,
				applied BOOLEAN NOT NULL,
				changes INTEGER NOT NULL,
				duration_us BIGINT NOT NULL,
				recorded_at BIGINT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_operations_source ON operations(source, id)`,
		},
	},
	DriverPostgres: {
		name:     DriverPostgres,
		numbered: true,
		schema: []string{
			`CREATE TABLE IF NOT EXISTS operations (
				id BIGSERIAL PRIMARY KEY,
				ledger_seq BIGINT NOT NULL,
				op_type INTEGER NOT NULL,
				source TEXT NOT NULL,
				result_code INTEGER NOT NULL,
				result TEXT NOT NULL,
				applied BOOLEAN NOT NULL,
				changes INTEGER NOT NULL,
				duration_us BIGINT NOT NULL,
				recorded_at BIGINT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_operations_source ON operations(source, id)`,
		},
	},
}

// rebind rewrites ? placeholders for drivers that number them.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
