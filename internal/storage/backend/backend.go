// Package backend selects a key-value database implementation by name.
package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/LeJamon/goPreauthLedger/internal/storage/database"
	"github.com/LeJamon/goPreauthLedger/internal/storage/database/bbolt"
	"github.com/LeJamon/goPreauthLedger/internal/storage/database/leveldb"
	"github.com/LeJamon/goPreauthLedger/internal/storage/database/memory"
	"github.com/LeJamon/goPreauthLedger/internal/storage/database/pebble"
)

// Factory creates a database manager rooted at path.
type Factory func(path string) (database.Manager, error)

var (
	backendMu        sync.RWMutex
	backendFactories = make(map[string]Factory)
)

// Register registers a backend factory with the given name.
func Register(name string, factory Factory) {
	backendMu.Lock()
	defer backendMu.Unlock()
	backendFactories[name] = factory
}

// Open creates the manager for the named backend.
func Open(name, path string) (database.Manager, error) {
	backendMu.RLock()
	factory, ok := backendFactories[name]
	backendMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", database.ErrUnknownBackend, name)
	}
	return factory(path)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	backendMu.RLock()
	defer backendMu.RUnlock()

	names := make([]string, 0, len(backendFactories))
	for name := range backendFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsPersistent reports whether the named backend keeps data across restarts.
func IsPersistent(name string) bool {
	return name != "memory"
}

// init registers the built-in backends.
func init() {
	Register("memory", func(string) (database.Manager, error) { return memory.NewManager(), nil })
	Register("pebble", func(path string) (database.Manager, error) { return pebble.NewManager(path), nil })
	Register("bbolt", func(path string) (database.Manager, error) { return bbolt.NewManager(path), nil })
	Register("leveldb", func(path string) (database.Manager, error) { return leveldb.NewManager(path), nil })
}
