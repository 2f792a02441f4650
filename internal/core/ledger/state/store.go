// Package state persists ledger entries in a key-value database.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/storage/compression"
	"github.com/LeJamon/goPreauthLedger/internal/storage/database"
)

// DefaultCacheSize is the number of entries kept in the read cache.
const DefaultCacheSize = 4096

// Options configures a Store.
type Options struct {
	// Compressor is applied to every stored value. Defaults to none.
	Compressor compression.Compressor

	// CacheSize is the read cache capacity. Zero uses DefaultCacheSize.
	CacheSize int

	Logger logrus.FieldLogger
}

// Store implements tx.LedgerEntryStore over a database.DB. Recently read
// entries are served from an LRU cache that is only updated after a
// successful commit.
type Store struct {
	db         database.DB
	compressor compression.Compressor
	cache      *lru.Cache[keylet.Keylet, []byte]
	log        logrus.FieldLogger

	mu     sync.Mutex
	hits   uint64
	misses uint64
}

var _ tx.LedgerEntryStore = (*Store)(nil)

// New creates a store over db.
func New(db database.DB, opts Options) (*Store, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Compressor == nil {
		opts.Compressor = &compression.NoCompressor{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	cache, err := lru.New[keylet.Keylet, []byte](opts.CacheSize)
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:         db,
		compressor: opts.Compressor,
		cache:      cache,
		log:        opts.Logger,
	}
	s.log.WithFields(logrus.Fields{
		"compression": opts.Compressor.Name(),
		"cache_size":  opts.CacheSize,
	}).Debug("entry store opened")
	return s, nil
}

// Read returns the entry at k, or (nil, nil) if there is none.
func (s *Store) Read(ctx context.Context, k keylet.Keylet) ([]byte, error) {
	if data, ok := s.cache.Get(k); ok {
		s.count(true)
		return data, nil
	}
	s.count(false)

	raw, err := s.db.Read(ctx, k.StoreKey())
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", k, err)
	}

	data, err := s.compressor.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", k, err)
	}
	s.cache.Add(k, data)
	return data, nil
}

// Apply commits changes as a single database batch.
func (s *Store) Apply(ctx context.Context, changes []tx.Change) error {
	if len(changes) == 0 {
		return nil
	}

	ops := make([]database.BatchOperation, 0, len(changes))
	for _, c := range changes {
		if c.After == nil {
			ops = append(ops, database.Del(c.Key.StoreKey()))
			continue
		}
		value, err := s.compressor.Compress(c.After)
		if err != nil {
			return fmt.Errorf("compress %s: %w", c.Key, err)
		}
		ops = append(ops, database.Put(c.Key.StoreKey(), value))
	}

	if err := s.db.Batch(ctx, ops); err != nil {
		return err
	}

	for _, c := range changes {
		if c.After == nil {
			s.cache.Remove(c.Key)
		} else {
			s.cache.Add(c.Key, c.After)
		}
	}
	return nil
}

// ForEach visits every entry of type t in key order.
func (s *Store) ForEach(ctx context.Context, t entry.Type, fn func(k keylet.Keylet, data []byte) error) error {
	start, end := keylet.TypePrefix(t)
	it, err := s.db.Iterator(ctx, start, end)
	if err != nil {
		return err
	}
	defer it.Close()

	for it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		k, err := keylet.FromStoreKey(it.Key())
		if err != nil {
			return err
		}
		data, err := s.compressor.Decompress(it.Value())
		if err != nil {
			return fmt.Errorf("decompress %s: %w", k, err)
		}
		if err := fn(k, data); err != nil {
			return err
		}
	}
	return it.Error()
}

// CacheStats returns read cache hits and misses.
func (s *Store) CacheStats() (hits, misses uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.misses
}

func (s *Store) count(hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hit {
		s.hits++
	} else {
		s.misses++
	}
}
