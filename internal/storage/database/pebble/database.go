// Package pebble stores ledger entries in one pebble instance per database.
// Writes are synced and iterators copy their entries out. Cancelled
// contexts are refused before any call reaches pebble.
package pebble

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/LeJamon/goPreauthLedger/internal/storage/database"
)

// DB is a database.DB over an open pebble instance.
type DB struct {
	db *pebble.DB
}

var _ database.DB = (*DB)(nil)

func NewDB(db *pebble.DB) *DB {
	return &DB{db: db}
}

func (p *DB) ready(ctx context.Context) error {
	if p.db == nil {
		return database.ErrDBClosed
	}
	return ctx.Err()
}

func (p *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if err := p.ready(ctx); err != nil {
		return nil, err
	}

	val, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return bytes.Clone(val), nil
}

func (p *DB) Write(ctx context.Context, key, value []byte) error {
	if err := p.ready(ctx); err != nil {
		return err
	}
	return p.db.Set(key, value, pebble.Sync)
}

func (p *DB) Delete(ctx context.Context, key []byte) error {
	if err := p.ready(ctx); err != nil {
		return err
	}
	return p.db.Delete(key, pebble.Sync)
}

// Batch stages every op before committing, so an invalid op leaves the
// database untouched.
func (p *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if err := p.ready(ctx); err != nil {
		return err
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	for _, op := range ops {
		var err error
		switch op.Type {
		case database.BatchPut:
			err = batch.Set(op.Key, op.Value, nil)
		case database.BatchDelete:
			err = batch.Delete(op.Key, nil)
		default:
			err = fmt.Errorf("%w: unknown operation type %d", database.ErrBatchOperationFailed, op.Type)
		}
		if err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

// Iterator walks a bounded key range of a pebble instance.
type Iterator struct {
	iter       *pebble.Iterator
	started    bool
	key, value []byte
}

func (p *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if err := p.ready(ctx); err != nil {
		return nil, err
	}

	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, err
	}
	return &Iterator{iter: iter}, nil
}

func (it *Iterator) Next() bool {
	var valid bool
	if it.started {
		valid = it.iter.Next()
	} else {
		valid = it.iter.First()
		it.started = true
	}
	if !valid {
		it.key, it.value = nil, nil
		return false
	}
	it.key = bytes.Clone(it.iter.Key())
	it.value = bytes.Clone(it.iter.Value())
	return true
}

func (it *Iterator) Key() []byte   { return it.key }
func (it *Iterator) Value() []byte { return it.value }
func (it *Iterator) Error() error  { return it.iter.Error() }
func (it *Iterator) Close() error  { return it.iter.Close() }
