package storage

import (
	"context"
	"fmt"
	"path/filepath"
)

// Supported drivers
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options selects and configures a Store backend
type Options struct {
	Driver   string
	DataDir  string
	RedisURL string
}

// Open creates the Store named by opts.Driver
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverFile, "":
		return NewFileStore(filepath.Join(opts.DataDir, "guests.json"))
	case DriverSQLite:
		return NewSQLiteStore(filepath.Join(opts.DataDir, "guests.db"))
	case DriverBolt:
		return NewBoltStore(filepath.Join(opts.DataDir, "guests.bolt"))
	case DriverRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis driver requires a redis URL")
		}
		return NewRedisStore(ctx, opts.RedisURL)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
