package handler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"wedding-planner/internal/models"
	"wedding-planner/internal/query"
)

var (
	ErrNotComposing    = errors.New("no guest is being added")
	ErrRequestPending  = errors.New("a random guest request is already pending")
	ErrSharingDisabled = errors.New("sharing is not configured")
	ErrClosed          = errors.New("controller closed")
)

// GuestRegistry is the part of the registry the controller drives
type GuestRegistry interface {
	AddManual(name string, rsvp models.RSVPStatus) (models.Guest, error)
	AddRandom(ctx context.Context) (models.Guest, error)
	UpdateRSVP(id string, status models.RSVPStatus) error
	Remove(id string) bool
	Clear()
	Get(id string) (models.Guest, error)
	List() []models.Guest
}

// Sharer delivers a text message to a phone number
type Sharer interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}

// AddState is the state of the add-guest flow
type AddState int

const (
	AddIdle AddState = iota
	AddComposing
)

func (s AddState) String() string {
	if s == AddComposing {
		return "composing"
	}
	return "idle"
}

// View is everything the presentation layer needs to draw the guest list
type View struct {
	Guests        []models.Guest
	Stats         query.Stats
	Search        string
	Filter        models.StatusFilter
	ConfirmTarget string
}

// Result is returned by every user operation. Message is meant for the user
// and is empty when there is nothing to say.
type Result struct {
	View    View
	Message string
	Err     error
}

// Config holds the optional collaborators of a Controller
type Config struct {
	Sharer     Sharer
	OwnerPhone string
	Notifier   Notifier
	Logger     *zerolog.Logger
}

// Controller sequences the user flows on top of the registry. It owns only
// transient state: the staged guest, the pending random request and the
// guest awaiting delete confirmation.
type Controller struct {
	registry   GuestRegistry
	sharer     Sharer
	ownerPhone string
	notifier   Notifier
	log        zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	addState      AddState
	stagedName    string
	stagedRSVP    models.RSVPStatus
	randomPending bool
	confirmID     string
	search        string
	filter        models.StatusFilter
	closed        bool
}

// NewController creates a new controller
func NewController(registry GuestRegistry, cfg *Config) *Controller {
	if cfg == nil {
		cfg = &Config{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		registry:   registry,
		sharer:     cfg.Sharer,
		ownerPhone: cfg.OwnerPhone,
		notifier:   cfg.Notifier,
		log:        zerolog.Nop(),
		ctx:        ctx,
		cancel:     cancel,
		stagedRSVP: models.RSVPMaybe,
		filter:     models.FilterAll,
	}
	if cfg.Logger != nil {
		c.log = *cfg.Logger
	}
	if c.notifier == nil {
		c.notifier = LogNotifier{Log: c.log}
	}
	return c
}

// BeginAdd moves the add flow to composing with a blank guest
func (c *Controller) BeginAdd() Result {
	c.mu.Lock()
	c.addState = AddComposing
	c.stagedName = ""
	c.stagedRSVP = models.RSVPMaybe
	c.mu.Unlock()
	return c.ok("")
}

// StageName sets the name of the guest being added
func (c *Controller) StageName(name string) Result {
	c.mu.Lock()
	if c.addState != AddComposing {
		c.mu.Unlock()
		return c.fail(ErrNotComposing)
	}
	c.stagedName = name
	c.mu.Unlock()
	return c.ok("")
}

// StageRSVP sets the RSVP of the guest being added
func (c *Controller) StageRSVP(status models.RSVPStatus) Result {
	if !status.Valid() {
		return c.fail(&models.ValidationError{Field: "rsvp", Reason: "must be one of Yes, No or Maybe"})
	}
	c.mu.Lock()
	if c.addState != AddComposing {
		c.mu.Unlock()
		return c.fail(ErrNotComposing)
	}
	c.stagedRSVP = status
	c.mu.Unlock()
	return c.ok("")
}

// SubmitAdd commits the staged guest. On a validation error the flow stays
// in composing with the input kept so it can be corrected.
func (c *Controller) SubmitAdd() Result {
	c.mu.Lock()
	if c.addState != AddComposing {
		c.mu.Unlock()
		return c.fail(ErrNotComposing)
	}
	name, rsvp := c.stagedName, c.stagedRSVP
	c.mu.Unlock()

	guest, err := c.registry.AddManual(name, rsvp)
	if err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	c.addState = AddIdle
	c.stagedName = ""
	c.stagedRSVP = models.RSVPMaybe
	c.mu.Unlock()

	c.log.Debug().Str("id", guest.ID).Msg("Add flow completed")
	return c.ok("Guest added successfully!")
}

// CancelAdd abandons the add flow
func (c *Controller) CancelAdd() Result {
	c.mu.Lock()
	c.addState = AddIdle
	c.stagedName = ""
	c.stagedRSVP = models.RSVPMaybe
	c.mu.Unlock()
	return c.ok("")
}

// Add runs the whole add flow in one call
func (c *Controller) Add(name string, rsvp models.RSVPStatus) Result {
	c.BeginAdd()
	if r := c.StageName(name); r.Err != nil {
		return r
	}
	if r := c.StageRSVP(rsvp.OrDefault()); r.Err != nil {
		return r
	}
	return c.SubmitAdd()
}

// AddState returns the add flow state and the staged input
func (c *Controller) AddState() (AddState, string, models.RSVPStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.addState, c.stagedName, c.stagedRSVP
}

// AddRandom fetches and adds a random guest, waiting for the result
func (c *Controller) AddRandom(ctx context.Context) Result {
	if err := c.beginRandom(); err != nil {
		return c.fail(err)
	}
	return c.finishRandom(ctx)
}

// StartRandom fetches a random guest in the background. The result is
// delivered on the returned channel. Only one request may be pending.
func (c *Controller) StartRandom(ctx context.Context) (<-chan Result, error) {
	if err := c.beginRandom(); err != nil {
		return nil, err
	}
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- c.finishRandom(ctx)
	}()
	return ch, nil
}

// RandomPending reports whether a random guest request is in flight
func (c *Controller) RandomPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.randomPending
}

func (c *Controller) beginRandom() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.randomPending {
		return ErrRequestPending
	}
	c.randomPending = true
	return nil
}

func (c *Controller) finishRandom(ctx context.Context) Result {
	defer func() {
		c.mu.Lock()
		c.randomPending = false
		c.mu.Unlock()
	}()

	// the request dies with either the caller or the controller
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	guest, err := c.registry.AddRandom(ctx)
	if err != nil {
		return c.fail(err)
	}
	return c.ok(fmt.Sprintf("Added random guest: %s", guest.Name))
}

// RequestDelete asks for confirmation before removing the guest. Only one
// guest awaits confirmation at a time; asking for another replaces it.
func (c *Controller) RequestDelete(id string) Result {
	guest, err := c.registry.Get(id)
	if err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	c.confirmID = id
	c.mu.Unlock()
	return c.ok(fmt.Sprintf("Delete %s?", guest.Name))
}

// ConfirmDelete removes the guest awaiting confirmation, if any
func (c *Controller) ConfirmDelete() Result {
	c.mu.Lock()
	id := c.confirmID
	c.confirmID = ""
	c.mu.Unlock()

	if id == "" {
		return c.ok("")
	}
	if !c.registry.Remove(id) {
		return c.ok("")
	}
	return c.ok("Guest removed.")
}

// CancelDelete drops the pending confirmation
func (c *Controller) CancelDelete() Result {
	c.mu.Lock()
	c.confirmID = ""
	c.mu.Unlock()
	return c.ok("")
}

// ClearAll removes every guest and drops any pending confirmation.
// A random guest still being fetched is discarded.
func (c *Controller) ClearAll() Result {
	c.registry.Clear()

	c.mu.Lock()
	c.confirmID = ""
	c.mu.Unlock()
	return c.ok("All guests removed.")
}

// ConfirmTarget returns the id awaiting delete confirmation, or ""
func (c *Controller) ConfirmTarget() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.confirmID
}

// SetRSVP changes a guest's RSVP
func (c *Controller) SetRSVP(id string, status models.RSVPStatus) Result {
	if err := c.registry.UpdateRSVP(id, status); err != nil {
		return c.fail(err)
	}
	return c.ok("")
}

// SetSearch sets the name search of the view
func (c *Controller) SetSearch(q string) Result {
	c.mu.Lock()
	c.search = q
	c.mu.Unlock()
	return c.ok("")
}

// SetFilter sets the status filter of the view
func (c *Controller) SetFilter(f models.StatusFilter) Result {
	if f != models.FilterAll && !models.RSVPStatus(f).Valid() {
		return c.fail(&models.ValidationError{Field: "filter", Reason: "must be All, Yes, No or Maybe"})
	}
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
	return c.ok("")
}

// View returns the filtered guest list and the stats of the whole list
func (c *Controller) View() View {
	c.mu.Lock()
	search, filter, confirmID := c.search, c.filter, c.confirmID
	c.mu.Unlock()

	guests := c.registry.List()
	return View{
		Guests:        query.ApplyFilters(guests, search, filter),
		Stats:         query.ComputeStats(guests),
		Search:        search,
		Filter:        filter,
		ConfirmTarget: confirmID,
	}
}

// Stats returns the RSVP counts of the whole list
func (c *Controller) Stats() query.Stats {
	return query.ComputeStats(c.registry.List())
}

// ShareSummary sends the stats summary to the owner's phone
func (c *Controller) ShareSummary(ctx context.Context) Result {
	if c.sharer == nil || c.ownerPhone == "" {
		return c.fail(ErrSharingDisabled)
	}
	if err := c.sharer.SendMessage(ctx, c.ownerPhone, summaryMessage(c.Stats())); err != nil {
		return c.fail(fmt.Errorf("failed to share summary: %w", err))
	}
	return c.ok("Summary sent!")
}

// ReportPersistenceFault tells the user a background save failed.
// It is meant to be the syncer's error callback.
func (c *Controller) ReportPersistenceFault(err error) {
	c.notifier.Notify(Notification{Kind: KindError, Message: UserMessage(err)})
}

// Close tears the controller down. A pending random request is abandoned
// and its result discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

func (c *Controller) ok(msg string) Result {
	return Result{View: c.View(), Message: msg}
}

func (c *Controller) fail(err error) Result {
	msg := UserMessage(err)
	if msg != "" {
		c.log.Debug().Err(err).Msg("Operation failed")
	}
	return Result{View: c.View(), Message: msg, Err: err}
}
