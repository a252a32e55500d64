// Package registry owns the guest list. It is the only place guests are
// created, changed or removed, and it hands every new snapshot to a sync
// hook so storage can follow.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wedding-planner/internal/models"
	"wedding-planner/internal/storage"
)

const (
	// DefaultKey is the storage key holding the guest list
	DefaultKey = "@wedding_guests"
	// DefaultDateLayout matches the US locale short date, e.g. 6/15/2026
	DefaultDateLayout = "1/2/2006"
)

// ErrStaleResult is returned when a random guest arrives after the caller
// went away or the list was reloaded; the guest is not added.
var ErrStaleResult = errors.New("random guest result discarded")

// GuestProvider generates a full name for a random guest
type GuestProvider interface {
	RandomName(ctx context.Context) (string, error)
}

// SyncHook receives the guest list after every successful mutation.
// The slice is never modified afterwards and must not be modified by the hook.
type SyncHook func(snapshot []models.Guest)

type Registry struct {
	mu         sync.RWMutex
	guests     []models.Guest
	generation uint64

	store      storage.Store
	key        string
	provider   GuestProvider
	hook       SyncHook
	ids        *IDGenerator
	now        func() time.Time
	dateLayout string
	log        zerolog.Logger
}

// Option configures a Registry
type Option func(*Registry)

func WithKey(key string) Option {
	return func(r *Registry) { r.key = key }
}

func WithProvider(p GuestProvider) Option {
	return func(r *Registry) { r.provider = p }
}

func WithSyncHook(h SyncHook) Option {
	return func(r *Registry) { r.hook = h }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithDateLayout(layout string) Option {
	return func(r *Registry) { r.dateLayout = layout }
}

func WithIDGenerator(g *IDGenerator) Option {
	return func(r *Registry) { r.ids = g }
}

func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// New creates an empty registry. Call Initialize to load the saved list.
func New(store storage.Store, opts ...Option) (*Registry, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	r := &Registry{
		guests:     []models.Guest{},
		store:      store,
		key:        DefaultKey,
		ids:        NewIDGenerator(),
		now:        time.Now,
		dateLayout: DefaultDateLayout,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.key == "" {
		return nil, errors.New("storage key is required")
	}
	return r, nil
}

// Initialize replaces the in-memory list with the saved snapshot.
// A missing snapshot leaves the list empty. If the snapshot cannot be read
// or parsed the list is also left empty and a PersistenceFault is returned;
// the registry stays usable.
func (r *Registry) Initialize(ctx context.Context) error {
	raw, ok, err := r.store.Get(ctx, r.key)

	var (
		guests  = []models.Guest{}
		skipped int
		fault   error
	)
	switch {
	case err != nil:
		fault = &models.PersistenceFault{Op: "load", Key: r.key, Err: err}
	case !ok:
		r.log.Debug().Str("key", r.key).Msg("No saved guest list")
	default:
		decoded, n, err := DecodeGuests(raw)
		if err != nil {
			fault = &models.PersistenceFault{Op: "load", Key: r.key, Err: err}
			break
		}
		guests, skipped = decoded, n
	}

	r.mu.Lock()
	r.guests = guests
	r.generation++
	r.mu.Unlock()

	ids := make([]string, len(guests))
	for i, g := range guests {
		ids[i] = g.ID
	}
	r.ids.Observe(ids...)

	if fault != nil {
		r.log.Error().Err(fault).Msg("Starting with an empty guest list")
		return fault
	}
	if skipped > 0 {
		r.log.Warn().Int("skipped", skipped).Msg("Dropped invalid guest records from snapshot")
	}
	r.log.Info().Int("guests", len(guests)).Msg("Guest list loaded")
	return nil
}

// AddManual adds a guest typed in by the user. The zero RSVP means Maybe.
func (r *Registry) AddManual(name string, rsvp models.RSVPStatus) (models.Guest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Guest{}, &models.ValidationError{Field: "name", Reason: "please enter a guest name"}
	}
	rsvp = rsvp.OrDefault()
	if !rsvp.Valid() {
		return models.Guest{}, &models.ValidationError{Field: "rsvp", Reason: "must be one of Yes, No or Maybe"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	guest, err := r.newGuest(name, rsvp, false)
	if err != nil {
		return models.Guest{}, err
	}
	r.commit(append(r.cloneLocked(), guest))

	r.log.Info().Str("id", guest.ID).Str("name", guest.Name).Str("rsvp", string(guest.RSVP)).Msg("Guest added")
	return guest, nil
}

// AddRandom asks the provider for a generated person and adds them with RSVP
// Maybe. The result is discarded with ErrStaleResult if ctx is done by the
// time the provider answers, or if the list was reloaded or cleared meanwhile.
func (r *Registry) AddRandom(ctx context.Context) (models.Guest, error) {
	if r.provider == nil {
		return models.Guest{}, &models.ProviderError{Op: "fetch", Err: errors.New("no random guest provider configured")}
	}

	r.mu.RLock()
	generation := r.generation
	r.mu.RUnlock()

	name, err := r.provider.RandomName(ctx)
	if err != nil {
		if ctx.Err() != nil {
			r.log.Debug().Err(err).Msg("Random guest request abandoned")
			return models.Guest{}, ErrStaleResult
		}
		var perr *models.ProviderError
		if !errors.As(err, &perr) {
			err = &models.ProviderError{Op: "fetch", Err: err}
		}
		return models.Guest{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Guest{}, &models.ProviderError{Op: "decode", Err: errors.New("empty name")}
	}
	if ctx.Err() != nil {
		r.log.Debug().Str("name", name).Msg("Discarding random guest, caller is gone")
		return models.Guest{}, ErrStaleResult
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generation != generation {
		r.log.Debug().Str("name", name).Msg("Discarding random guest, list was reloaded")
		return models.Guest{}, ErrStaleResult
	}

	guest, err := r.newGuest(name, models.RSVPMaybe, true)
	if err != nil {
		return models.Guest{}, err
	}
	r.commit(append(r.cloneLocked(), guest))

	r.log.Info().Str("id", guest.ID).Str("name", guest.Name).Msg("Random guest added")
	return guest, nil
}

// UpdateRSVP changes one guest's RSVP and nothing else
func (r *Registry) UpdateRSVP(id string, status models.RSVPStatus) error {
	if !status.Valid() {
		return &models.ValidationError{Field: "rsvp", Reason: "must be one of Yes, No or Maybe"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return &models.NotFoundError{ID: id}
	}
	if r.guests[idx].RSVP == status {
		return nil
	}

	next := r.cloneLocked()
	next[idx].RSVP = status
	r.commit(next)

	r.log.Info().Str("id", id).Str("rsvp", string(status)).Msg("RSVP updated")
	return nil
}

// Remove deletes the guest with id. It reports whether a guest was removed;
// removing an unknown id does nothing.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return false
	}

	next := make([]models.Guest, 0, len(r.guests)-1)
	next = append(next, r.guests[:idx]...)
	next = append(next, r.guests[idx+1:]...)
	r.commit(next)

	r.log.Info().Str("id", id).Msg("Guest removed")
	return true
}

// Clear removes every guest. Pending random guests are discarded.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	r.commit([]models.Guest{})
	r.log.Info().Msg("Guest list cleared")
}

// List returns a copy of the guests in display order
func (r *Registry) List() []models.Guest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.cloneLocked()
}

// Get returns a copy of one guest
func (r *Registry) Get(id string) (models.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return models.Guest{}, &models.NotFoundError{ID: id}
	}
	return r.guests[idx], nil
}

// Len returns the number of guests
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.guests)
}

func (r *Registry) newGuest(name string, rsvp models.RSVPStatus, random bool) (models.Guest, error) {
	id, err := r.ids.Next()
	if err != nil {
		return models.Guest{}, fmt.Errorf("failed to add guest: %w", err)
	}
	return models.Guest{
		ID:        id,
		Name:      name,
		RSVP:      rsvp,
		AddedDate: r.now().Format(r.dateLayout),
		IsRandom:  random,
	}, nil
}

// commit swaps in the new list and hands it to the sync hook.
// Called with mu held so hooks see snapshots in mutation order.
func (r *Registry) commit(next []models.Guest) {
	r.guests = next
	if r.hook != nil {
		r.hook(next)
	}
}

func (r *Registry) cloneLocked() []models.Guest {
	out := make([]models.Guest, len(r.guests), len(r.guests)+1)
	copy(out, r.guests)
	return out
}

func (r *Registry) indexLocked(id string) int {
	for i, g := range r.guests {
		if g.ID == id {
			return i
		}
	}
	return -1
}
