// Package memory implements database.DB in process memory for tests and
// ephemeral ledgers.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/LeJamon/goPreauthLedger/internal/storage/database"
)

// DB is a thread-safe in-memory database.DB.
type DB struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewDB creates an empty in-memory database.
func NewDB() *DB {
	return &DB{data: make(map[string][]byte)}
}

func (m *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[string(key)]
	if !ok {
		return nil, database.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *DB) Write(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *DB) Delete(ctx context.Context, key []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

func (m *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, op := range ops {
		if op.Type != database.BatchPut && op.Type != database.BatchDelete {
			return fmt.Errorf("%w: unknown operation type %d", database.ErrBatchOperationFailed, op.Type)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		if op.Type == database.BatchPut {
			m.data[string(op.Key)] = append([]byte(nil), op.Value...)
		} else {
			delete(m.data, string(op.Key))
		}
	}
	return nil
}

// Iterator snapshots the matching keys when created.
func (m *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	it := &iterator{pos: -1}
	for k, v := range m.data {
		kb := []byte(k)
		if start != nil && bytes.Compare(kb, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(kb, end) >= 0 {
			continue
		}
		it.keys = append(it.keys, kb)
		it.values = append(it.values, append([]byte(nil), v...))
	}
	sort.Sort(it)
	return it, nil
}

// Len returns the number of stored keys.
func (m *DB) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

type iterator struct {
	keys   [][]byte
	values [][]byte
	pos    int
}

func (it *iterator) Len() int           { return len(it.keys) }
func (it *iterator) Less(i, j int) bool { return bytes.Compare(it.keys[i], it.keys[j]) < 0 }
func (it *iterator) Swap(i, j int) {
	it.keys[i], it.keys[j] = it.keys[j], it.keys[i]
	it.values[i], it.values[j] = it.values[j], it.values[i]
}

func (it *iterator) Next() bool {
	it.pos++
	return it.pos < len(it.keys)
}

func (it *iterator) Key() []byte   { return it.keys[it.pos] }
func (it *iterator) Value() []byte { return it.values[it.pos] }
func (it *iterator) Error() error  { return nil }
func (it *iterator) Close() error  { return nil }

// Manager hands out one in-memory DB per name.
type Manager struct {
	mu  sync.Mutex
	dbs map[string]*DB
}

// NewManager creates an in-memory manager.
func NewManager() *Manager {
	return &Manager{dbs: make(map[string]*DB)}
}

func (m *Manager) OpenDB(name string) (database.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	db, ok := m.dbs[name]
	if !ok {
		db = NewDB()
		m.dbs[name] = db
	}
	return db, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dbs = make(map[string]*DB)
	return nil
}
