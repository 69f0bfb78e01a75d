package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const (
	boltFileName = "waitlist.db"
	slotBucket   = "slots"
)

// BoltSlot keeps the slot as one key in a BoltDB bucket.
type BoltSlot struct {
	db  *bbolt.DB
	key []byte
}

// OpenBoltSlot opens (or creates) <basePath>/waitlist.db.
func OpenBoltSlot(basePath, name string) (*BoltSlot, error) {
	if basePath == "" {
		basePath = "./data"
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	db, err := bbolt.Open(filepath.Join(filepath.Clean(basePath), boltFileName), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(slotBucket)); err != nil {
			return fmt.Errorf("create %s bucket: %w", slotBucket, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltSlot{db: db, key: []byte(name)}, nil
}

// Load reads the slot value.
func (s *BoltSlot) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket is missing", slotBucket)
		}
		value := bucket.Get(s.key)
		if value == nil {
			return ErrNotFound
		}
		// value is only valid inside the transaction
		data = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save replaces the slot value.
func (s *BoltSlot) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket is missing", slotBucket)
		}
		return bucket.Put(s.key, data)
	})
}

// Close closes the underlying BoltDB database.
func (s *BoltSlot) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
