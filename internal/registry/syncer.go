package registry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wedding-planner/internal/models"
	"wedding-planner/internal/storage"
)

// ErrSyncerClosed is returned by Flush once the syncer has stopped
var ErrSyncerClosed = errors.New("syncer closed")

// Syncer writes guest list snapshots to storage in the background.
// Submit never blocks; only the latest unsaved snapshot is kept, so the last
// submitted snapshot is always the last one written.
type Syncer struct {
	store   storage.Store
	key     string
	timeout time.Duration
	onError func(error)
	log     zerolog.Logger

	mu         sync.Mutex
	pending    []models.Guest
	hasPending bool
	closed     bool
	submitted  uint64
	written    uint64
	lastErr    error
	progress   chan struct{}

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// SyncerConfig configures a Syncer
type SyncerConfig struct {
	Key string
	// Timeout bounds a single write; zero means 5s
	Timeout time.Duration
	// OnError is called from the background goroutine for every failed write
	OnError func(error)
	Logger  *zerolog.Logger
}

// NewSyncer starts the background writer
func NewSyncer(store storage.Store, cfg SyncerConfig) *Syncer {
	s := &Syncer{
		store:    store,
		key:      cfg.Key,
		timeout:  cfg.Timeout,
		onError:  cfg.OnError,
		log:      zerolog.Nop(),
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.timeout <= 0 {
		s.timeout = 5 * time.Second
	}
	if cfg.Logger != nil {
		s.log = *cfg.Logger
	}

	go s.run()
	return s
}

// Submit queues snapshot for writing. It is a SyncHook.
func (s *Syncer) Submit(snapshot []models.Guest) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Warn().Int("guests", len(snapshot)).Msg("Syncer closed, snapshot not saved")
		return
	}
	s.pending = snapshot
	s.hasPending = true
	s.submitted++
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush waits until every snapshot submitted before the call has been
// written and returns the error of the last write, if any.
func (s *Syncer) Flush(ctx context.Context) error {
	s.mu.Lock()
	target := s.submitted
	for s.written < target {
		ch := s.progress
		s.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			s.mu.Lock()
			if s.written < target {
				s.mu.Unlock()
				return ErrSyncerClosed
			}
			s.mu.Unlock()
			return s.LastError()
		}
		s.mu.Lock()
	}
	err := s.lastErr
	s.mu.Unlock()
	return err
}

// LastError returns the error of the most recent write
func (s *Syncer) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

// Close writes any pending snapshot and stops the background goroutine
func (s *Syncer) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.quit)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return s.LastError()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Syncer) run() {
	defer close(s.done)

	for {
		select {
		case <-s.wake:
			s.writePending()
		case <-s.quit:
			s.writePending()
			return
		}
	}
}

func (s *Syncer) writePending() {
	s.mu.Lock()
	if !s.hasPending {
		s.mu.Unlock()
		return
	}
	snapshot, version := s.pending, s.submitted
	s.pending, s.hasPending = nil, false
	s.mu.Unlock()

	err := s.write(snapshot)

	s.mu.Lock()
	s.written = version
	s.lastErr = err
	close(s.progress)
	s.progress = make(chan struct{})
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Int("guests", len(snapshot)).Msg("Failed to save guests")
		if s.onError != nil {
			s.onError(err)
		}
		return
	}
	s.log.Debug().Int("guests", len(snapshot)).Msg("Guests saved")
}

func (s *Syncer) write(snapshot []models.Guest) error {
	raw, err := EncodeGuests(snapshot)
	if err != nil {
		return &models.PersistenceFault{Op: "save", Key: s.key, Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return &models.PersistenceFault{Op: "save", Key: s.key, Err: err}
	}
	return nil
}
