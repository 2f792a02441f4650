package leveldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/LeJamon/goPreauthLedger/internal/storage/database"
)

var syncWrite = &opt.WriteOptions{Sync: true}

type DB struct {
	db *leveldb.DB
}

func NewDB(db *leveldb.DB) *DB {
	return &DB{db: db}
}

func (l *DB) ready(ctx context.Context) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	return ctx.Err()
}

func (l *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if err := l.ready(ctx); err != nil {
		return nil, err
	}

	data, err := l.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, database.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (l *DB) Write(ctx context.Context, key, value []byte) error {
	if err := l.ready(ctx); err != nil {
		return err
	}
	return l.db.Put(key, value, syncWrite)
}

func (l *DB) Delete(ctx context.Context, key []byte) error {
	if err := l.ready(ctx); err != nil {
		return err
	}
	return l.db.Delete(key, syncWrite)
}

func (l *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if err := l.ready(ctx); err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case database.BatchPut:
			batch.Put(op.Key, op.Value)
		case database.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("%w: unknown operation type %d", database.ErrBatchOperationFailed, op.Type)
		}
	}
	return l.db.Write(batch, syncWrite)
}

type Iterator struct {
	iter    iterator.Iterator
	current struct {
		key, value []byte
	}
}

func (l *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if err := l.ready(ctx); err != nil {
		return nil, err
	}
	return &Iterator{iter: l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)}, nil
}

func (it *Iterator) Next() bool {
	if !it.iter.Next() {
		return false
	}
	// goleveldb reuses the iterator buffers
	it.current.key = append([]byte(nil), it.iter.Key()...)
	it.current.value = append([]byte(nil), it.iter.Value()...)
	return true
}

func (it *Iterator) Key() []byte {
	return it.current.key
}

func (it *Iterator) Value() []byte {
	return it.current.value
}

func (it *Iterator) Error() error {
	return it.iter.Error()
}

func (it *Iterator) Close() error {
	it.iter.Release()
	return nil
}
