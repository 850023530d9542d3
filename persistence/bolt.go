package persistence

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var vectorBucket = []byte("vectors")

// BoltStore persists vectors in a BoltDB file. Single-writer, many-reader;
// a good fit for the write-once read-many embedding cache.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the BoltDB file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database at %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(vectorBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create vector bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Get returns the vector for key, if present.
func (s *BoltStore) Get(ctx context.Context, key string) ([]float32, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var vector []float32
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(vectorBucket).Get([]byte(key))
		if data == nil {
			return nil
		}
		decoded, err := decodeVector(data)
		if err != nil {
			return err
		}
		vector = decoded
		found = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("bolt read failed: %w", err)
	}
	return vector, found, nil
}

// Put stores vector under key.
func (s *BoltStore) Put(ctx context.Context, key string, vector []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(vectorBucket).Put([]byte(key), encodeVector(vector))
	})
	if err != nil {
		return fmt.Errorf("bolt write failed: %w", err)
	}
	return nil
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
