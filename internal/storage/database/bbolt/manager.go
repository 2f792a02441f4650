package bbolt

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.etcd.io/bbolt"

	"github.com/LeJamon/goPreauthLedger/internal/storage/database"
)

// Manager opens bbolt files as <path>/<name>.db, each with a bucket named
// after the database.
type Manager struct {
	dbs  map[string]*bbolt.DB
	path string
	mu   sync.Mutex
}

func NewManager(path string) *Manager {
	return &Manager{
		dbs:  make(map[string]*bbolt.DB),
		path: path,
	}
}

func (m *Manager) OpenDB(name string) (database.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if db, exists := m.dbs[name]; exists {
		return NewDB(db, []byte(name)), nil
	}

	if err := os.MkdirAll(m.path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", m.path, err)
	}
	dbPath := filepath.Join(m.path, name+".db")
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", name, err)
	}

	// Create default bucket
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket for %s: %w", name, err)
	}

	m.dbs[name] = db
	return NewDB(db, []byte(name)), nil
}

// Close closes every open database file.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for name, db := range m.dbs {
		if err := db.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close database %s: %w", name, err)
		}
		delete(m.dbs, name)
	}
	return lastErr
}
