package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketKV = "kv_store"

// BoltStore keeps values in a single bbolt bucket
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (and creates if needed) the bolt database at path
func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketKV))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Get returns the value stored under key
func (s *BoltStore) Get(ctx context.Context, key string) (string, bool, error) {
	_, span := tracer.Start(ctx, "BoltStore.Get")
	defer span.End()

	var (
		value string
		ok    bool
	)
	span.AddEvent("View bucket")
	err := s.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketKV)).Get([]byte(key))
		if res == nil {
			return nil
		}
		// res is only valid inside the transaction
		value, ok = string(res), true
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return "", false, err
	}
	return value, ok, nil
}

// Set stores value under key
func (s *BoltStore) Set(ctx context.Context, key, value string) error {
	_, span := tracer.Start(ctx, "BoltStore.Set")
	defer span.End()

	span.AddEvent("Update bucket")
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketKV)).Put([]byte(key), []byte(value))
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}
