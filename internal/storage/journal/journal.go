// Package journal records engine results in a SQL database. It is an engine
// observer: ledger state never depends on it.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

// Config selects and tunes the journal database.
type Config struct {
	Driver string
	DSN    string

	// MaxOpenConns caps the connection pool. SQLite is always limited to one.
	MaxOpenConns int

	// Timeout bounds each statement.
	Timeout time.Duration
}

// Record is one journaled operation.
type Record struct {
	ID             int64
	LedgerSequence uint32
	Type           tx.OperationType
	Source         sle.AccountID
	ResultCode     int32
	Result         string
	Applied        bool
	Changes        int
	Duration       time.Duration
	RecordedAt     time.Time
}

// Filter narrows List results.
type Filter struct {
	// Source restricts results to one submitting account
	Source *sle.AccountID

	// Limit caps the number of records; zero means 100
	Limit int
}

// Journal is a SQL-backed operation log.
type Journal struct {
	mu      sync.RWMutex
	db      *sql.DB
	dialect dialect
	timeout time.Duration
	log     logrus.FieldLogger
	now     func() time.Time
}

var _ tx.Observer = (*Journal)(nil)

// Open connects to the journal database and creates its schema.
func Open(ctx context.Context, cfg Config, logger logrus.FieldLogger) (*Journal, error) {
	d, ok := dialects[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if cfg.DSN == "" {
		return nil, ErrMissingDSN
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, newError("open", "failed to open database connection", err)
	}
	if cfg.Driver == DriverSQLite {
		// In-memory databases live per connection
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	j := &Journal{
		db:      db,
		dialect: d,
		timeout: cfg.Timeout,
		log:     logger.WithField("component", "journal"),
		now:     time.Now,
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, newError("open", "failed to ping database", err)
	}
	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, newError("open", "failed to initialize schema", err)
		}
	}

	j.log.WithField("driver", cfg.Driver).Info("journal opened")
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	if err != nil {
		return newError("close", "failed to close database connection", err)
	}
	return nil
}

// OperationApplied journals res. Failures are logged, not returned, so the
// journal can never block the engine.
func (j *Journal) OperationApplied(ctx context.Context, res *tx.ApplyResult) {
	if err := j.Append(ctx, res); err != nil {
		j.log.WithError(err).WithField("op", res.Type.String()).Warn("failed to journal operation")
	}
}

// Append writes one engine result.
func (j *Journal) Append(ctx context.Context, res *tx.ApplyResult) error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.db == nil {
		return ErrJournalClosed
	}

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	changes := 0
	if res.Metadata != nil {
		changes = len(res.Metadata.AffectedNodes)
	}
	query := j.dialect.rebind(`INSERT INTO operations
		(ledger_seq, op_type, source, result_code, result, applied, changes, duration_us, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := j.db.ExecContext(ctx, query,
		int64(res.LedgerSequence),
		int32(res.Type),
		res.Source.String(),
		res.Result.Code(),
		res.Result.String(),
		res.Applied,
		changes,
		res.Duration.Microseconds(),
		j.now().UnixNano(),
	)
	if err != nil {
		return newError("append", "failed to insert operation", err)
	}
	return nil
}

// List returns journaled operations, newest first.
func (j *Journal) List(ctx context.Context, f Filter) ([]Record, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.db == nil {
		return nil, ErrJournalClosed
	}
	if f.Limit <= 0 {
		f.Limit = 100
	}

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	query := `SELECT id, ledger_seq, op_type, source, result_code, result, applied, changes, duration_us, recorded_at
		FROM operations`
	args := []any{}
	if f.Source != nil {
		query += ` WHERE source = ?`
		args = append(args, f.Source.String())
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, f.Limit)

	rows, err := j.db.QueryContext(ctx, j.dialect.rebind(query), args...)
	if err != nil {
		return nil, newError("list", "failed to query operations", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r          Record
			seq        int64
			opType     int32
			source     string
			durationUs int64
			recordedAt int64
		)
		if err := rows.Scan(&r.ID, &seq, &opType, &source, &r.ResultCode, &r.Result,
			&r.Applied, &r.Changes, &durationUs, &recordedAt); err != nil {
			return nil, newError("list", "failed to scan operation", err)
		}
		r.Source, err = sle.DecodeAccountID(source)
		if err != nil {
			return nil, newError("list", "invalid source account", err)
		}
		r.LedgerSequence = uint32(seq)
		r.Type = tx.OperationType(opType)
		r.Duration = time.Duration(durationUs) * time.Microsecond
		r.RecordedAt = time.Unix(0, recordedAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, newError("list", "failed to iterate operations", err)
	}
	return records, nil
}

// Count returns the number of journaled operations.
func (j *Journal) Count(ctx context.Context) (int64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.db == nil {
		return 0, ErrJournalClosed
	}

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	var n int64
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operations`).Scan(&n); err != nil {
		return 0, newError("count", "failed to count operations", err)
	}
	return n, nil
}
