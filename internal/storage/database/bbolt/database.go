// Package bbolt stores ledger entries in a single bbolt bucket per
// database. Every call checks its context before touching the file, batches
// commit in one read-write transaction, and iterators hand out copies so
// entries stay valid after the read transaction ends.
package bbolt

import (
	"bytes"
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/LeJamon/goPreauthLedger/internal/storage/database"
)

// DB is a database.DB over one bucket of a bbolt file.
type DB struct {
	db     *bbolt.DB
	bucket []byte
}

var _ database.DB = (*DB)(nil)

func NewDB(db *bbolt.DB, bucket []byte) *DB {
	return &DB{
		db:     db,
		bucket: bucket,
	}
}

func (b *DB) ready(ctx context.Context) error {
	if b.db == nil {
		return database.ErrDBClosed
	}
	return ctx.Err()
}

func (b *DB) bucketOf(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	bucket := tx.Bucket(b.bucket)
	if bucket == nil {
		return nil, fmt.Errorf("bucket %s not found", b.bucket)
	}
	return bucket, nil
}

// view runs fn against the bucket in a read-only transaction.
func (b *DB) view(ctx context.Context, fn func(*bbolt.Bucket) error) error {
	if err := b.ready(ctx); err != nil {
		return err
	}
	return b.db.View(func(tx *bbolt.Tx) error {
		bucket, err := b.bucketOf(tx)
		if err != nil {
			return err
		}
		return fn(bucket)
	})
}

// update runs fn against the bucket in a read-write transaction. Any error
// from fn rolls the whole transaction back.
func (b *DB) update(ctx context.Context, fn func(*bbolt.Bucket) error) error {
	if err := b.ready(ctx); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := b.bucketOf(tx)
		if err != nil {
			return err
		}
		return fn(bucket)
	})
}

func (b *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := b.view(ctx, func(bucket *bbolt.Bucket) error {
		v := bucket.Get(key)
		if v == nil {
			return database.ErrKeyNotFound
		}
		value = bytes.Clone(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (b *DB) Write(ctx context.Context, key, value []byte) error {
	return b.update(ctx, func(bucket *bbolt.Bucket) error {
		return bucket.Put(key, value)
	})
}

func (b *DB) Delete(ctx context.Context, key []byte) error {
	return b.update(ctx, func(bucket *bbolt.Bucket) error {
		return bucket.Delete(key)
	})
}

// Batch applies ops in one Update. bbolt's own Batch may run the function
// more than once and coalesce callers, which breaks per-operation commits.
func (b *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	return b.update(ctx, func(bucket *bbolt.Bucket) error {
		for _, op := range ops {
			var err error
			switch op.Type {
			case database.BatchPut:
				err = bucket.Put(op.Key, op.Value)
			case database.BatchDelete:
				err = bucket.Delete(op.Key)
			default:
				err = fmt.Errorf("%w: unknown operation type %d", database.ErrBatchOperationFailed, op.Type)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Iterator walks a key range inside one read-only transaction, which
// Close releases.
type Iterator struct {
	tx         *bbolt.Tx
	cursor     *bbolt.Cursor
	start, end []byte
	started    bool
	key, value []byte
}

func (b *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if err := b.ready(ctx); err != nil {
		return nil, err
	}

	tx, err := b.db.Begin(false)
	if err != nil {
		return nil, err
	}
	bucket, err := b.bucketOf(tx)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return &Iterator{
		tx:     tx,
		cursor: bucket.Cursor(),
		start:  start,
		end:    end,
	}, nil
}

func (it *Iterator) Next() bool {
	var k, v []byte
	switch {
	case it.started:
		k, v = it.cursor.Next()
	case it.start == nil:
		k, v = it.cursor.First()
	default:
		k, v = it.cursor.Seek(it.start)
	}
	it.started = true

	if k == nil || (it.end != nil && bytes.Compare(k, it.end) >= 0) {
		it.key, it.value = nil, nil
		return false
	}
	it.key, it.value = bytes.Clone(k), bytes.Clone(v)
	return true
}

func (it *Iterator) Key() []byte   { return it.key }
func (it *Iterator) Value() []byte { return it.value }
func (it *Iterator) Error() error  { return nil }

func (it *Iterator) Close() error {
	return it.tx.Rollback()
}
