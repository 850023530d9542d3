package persistence

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore persists vectors in a BadgerDB directory. Preferred over Bolt
// for large catalogs where the LSM write path matters during first build.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// Get returns the vector for key, if present.
func (s *BadgerStore) Get(ctx context.Context, key string) ([]float32, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var vector []float32
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := decodeVector(val)
			if err != nil {
				return err
			}
			vector = decoded
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger read failed: %w", err)
	}
	return vector, true, nil
}

// Put stores vector under key.
func (s *BadgerStore) Put(ctx context.Context, key string, vector []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), encodeVector(vector))
	})
	if err != nil {
		return fmt.Errorf("badger write failed: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
