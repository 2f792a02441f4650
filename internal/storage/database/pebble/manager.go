package pebble

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/LeJamon/goPreauthLedger/internal/storage/database"
)

// Manager opens pebble databases as <path>/<name>.db directories.
type Manager struct {
	mu     sync.Mutex
	dbs    map[string]*pebble.DB
	path   string
	closed bool
}

var _ database.Manager = (*Manager)(nil)

func NewManager(path string) *Manager {
	return &Manager{
		dbs:  make(map[string]*pebble.DB),
		path: path,
	}
}

// options returns the settings used for every ledger database. Entries are
// small and written in per-operation batches, so the defaults apart from
// the file budget are kept.
func options() *pebble.Options {
	return &pebble.Options{MaxOpenFiles: 256}
}

// OpenDB opens or returns the named database.
func (m *Manager) OpenDB(name string) (database.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, database.ErrDBClosed
	}
	if db, exists := m.dbs[name]; exists {
		return NewDB(db), nil
	}

	db, err := pebble.Open(filepath.Join(m.path, name+".db"), options())
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", name, err)
	}
	m.dbs[name] = db
	return NewDB(db), nil
}

// Close closes every open database. The manager cannot be reused.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for name, db := range m.dbs {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database %s: %w", name, err))
		}
		delete(m.dbs, name)
	}
	m.closed = true
	return errors.Join(errs...)
}
