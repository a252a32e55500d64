package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

// Store is an opaque string key-value store
type Store interface {
	// Get returns the value stored under key; ok is false if nothing is stored
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// FileStore keeps every key in a single JSON document on disk
type FileStore struct {
	mu     sync.RWMutex
	values map[string]string
	file   string
	// loadErr is returned by Get until the next successful Set
	loadErr error
}

// NewFileStore creates a new file backed store
func NewFileStore(filePath string) (*FileStore, error) {
	s := &FileStore{
		values: make(map[string]string),
		file:   filePath,
	}

	// Load existing data if file exists
	if _, err := os.Stat(filePath); err == nil {
		if err := s.load(); err != nil {
			return nil, fmt.Errorf("failed to load storage: %w", err)
		}
	}

	return s, nil
}

// CorruptPath is where an unparseable document is moved on open
func (s *FileStore) CorruptPath() string {
	return s.file + ".corrupt"
}

// Get returns the value stored under key
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	_, span := tracer.Start(ctx, "FileStore.Get")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loadErr != nil {
		span.RecordError(s.loadErr)
		return "", false, s.loadErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key and writes the whole document to disk
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "FileStore.Set")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := s.save(ctx); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		span.RecordError(err)
		return err
	}
	s.loadErr = nil
	return nil
}

// Close is a no-op; every Set is already on disk
func (s *FileStore) Close() error {
	return nil
}

// save writes the values to file
func (s *FileStore) save(ctx context.Context) error {
	_, span := tracer.Start(ctx, "FileStore.save")
	defer span.End()

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(s.file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Atomic replace via rename
	tmp := s.file + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, s.file); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

// load reads the values from file. A document that cannot be parsed is
// moved to CorruptPath and the store starts empty, with the parse error
// kept for Get.
func (s *FileStore) load() error {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		s.values = make(map[string]string)
		s.loadErr = fmt.Errorf("failed to unmarshal %s: %w", s.file, err)
		if rerr := os.Rename(s.file, s.CorruptPath()); rerr != nil {
			return fmt.Errorf("failed to move corrupt file aside: %w", rerr)
		}
		return nil
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}

	return nil
}
