// Package cache holds the authoritative in-memory customer list.
//
// Every mutation goes to the persistence gateway first. When the gateway
// fails the change is applied locally anyway, the error message is recorded
// and the whole list is written to the local mirror. There is no replay of
// local-only changes once the gateway comes back.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/logging"
)

// User-facing messages recorded as the last error when the gateway fails.
const (
	MsgLoadFailed   = "Customers could not be loaded from the database; showing the local copy"
	MsgAddFailed    = "The customer could not be saved to the database; it was stored locally"
	MsgUpdateFailed = "The customer could not be updated in the database; the change was applied locally"
	MsgDeleteFailed = "The customer could not be deleted from the database; it was removed locally"
)

const defaultMirrorTimeout = 2 * time.Second

// Gateway is the subset of the persistence gateway the cache calls.
type Gateway interface {
	List(ctx context.Context) ([]core.Record, error)
	Create(ctx context.Context, in core.Input) (core.Record, error)
	Update(ctx context.Context, id string, in core.Input) (core.Record, error)
	Delete(ctx context.Context, id string) error
}

// Outcome describes the effect of one mutation.
type Outcome struct {
	Record  core.Record `json:"record"`
	Offline bool        `json:"offline"`           // gateway failed; applied locally only
	Message string      `json:"message,omitempty"` // set when Offline
}

// State is a point-in-time copy of the cache.
type State struct {
	Records   []core.Record `json:"records"`
	Loading   bool          `json:"loading"`
	LastError string        `json:"lastError,omitempty"`
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the clock used for locally created records.
func WithClock(now func() time.Time) Option { return func(c *Cache) { c.now = now } }

// WithIDGenerator overrides the id generator used for locally created records.
func WithIDGenerator(newID func() string) Option { return func(c *Cache) { c.newID = newID } }

// WithMirrorTimeout bounds each mirror read or write.
func WithMirrorTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.mirrorTimeout = d
		}
	}
}

// Cache is safe for concurrent use.
type Cache struct {
	gw            Gateway
	mirror        Mirror
	logger        *slog.Logger
	now           func() time.Time
	newID         func() string
	mirrorTimeout time.Duration

	once   sync.Once
	saveMu sync.Mutex

	mu        sync.Mutex
	records   []core.Record
	loading   bool
	lastError string
}

// New returns an empty cache. Call InitialLoad before serving requests.
func New(gw Gateway, mirror Mirror, logger *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		gw:            gw,
		mirror:        mirror,
		logger:        logging.OrDefault(logger),
		now:           time.Now,
		newID:         uuid.NewString,
		mirrorTimeout: defaultMirrorTimeout,
		records:       []core.Record{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InitialLoad fills the cache once per lifetime. Later calls are no-ops and
// return nil. It returns the gateway error when it fell back to the mirror.
func (c *Cache) InitialLoad(ctx context.Context) error {
	var err error
	c.once.Do(func() { err = c.load(ctx) })
	return err
}

// Reload refreshes the cache from the gateway, falling back to the mirror.
func (c *Cache) Reload(ctx context.Context) error {
	return c.load(ctx)
}

func (c *Cache) load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.lastError = ""
	c.mu.Unlock()

	records, err := c.gw.List(ctx)
	if err == nil {
		c.mu.Lock()
		c.records = records
		c.loading = false
		c.mu.Unlock()
		c.log(ctx).Debug("customers loaded", "count", len(records))
		return nil
	}

	log := c.log(ctx).With("op", "load")
	log.Warn("gateway list failed; falling back to mirror", "error", err)

	local, merr := c.loadMirror(ctx)
	if merr != nil {
		log.Warn("mirror unavailable", "error", merr)
	}

	c.mu.Lock()
	if merr == nil {
		c.records = local
	}
	c.lastError = MsgLoadFailed
	c.loading = false
	c.mu.Unlock()
	return err
}

// AddRecord creates a customer. Invalid input is rejected before any I/O.
func (c *Cache) AddRecord(ctx context.Context, in core.Input) (Outcome, error) {
	in = in.Normalize().WithDefaults()
	if err := core.ValidateInput(in); err != nil {
		return Outcome{}, err
	}

	c.clearError()

	created, err := c.gw.Create(ctx, in)
	if err != nil {
		if core.IsValidation(err) {
			return Outcome{}, err
		}
		c.log(ctx).With("op", "add").Warn("gateway create failed; storing locally", "error", err)
		created = core.NewRecord(c.newID(), c.now(), in)
	}

	c.mu.Lock()
	c.records = append([]core.Record{created}, c.records...)
	out := c.finish(err, MsgAddFailed)
	c.mu.Unlock()

	c.saveMirror(ctx)
	out.Record = created
	return out, nil
}

// UpdateRecord overwrites every mutable field of a customer.
func (c *Cache) UpdateRecord(ctx context.Context, id string, in core.Input) (Outcome, error) {
	in = in.Normalize()
	if err := core.ValidateInput(in); err != nil {
		return Outcome{}, err
	}

	c.clearError()

	updated, err := c.gw.Update(ctx, id, in)
	if err != nil && core.IsValidation(err) {
		return Outcome{}, err
	}

	c.mu.Lock()
	i := c.indexLocked(id)
	if err != nil {
		if i < 0 {
			c.lastError = MsgUpdateFailed
			c.mu.Unlock()
			return Outcome{}, core.ErrNotFound
		}
		c.log(ctx).With("op", "update", "id", id).Warn("gateway update failed; applying locally", "error", err)
		updated = c.records[i].Apply(in)
	}
	if i >= 0 {
		c.records[i] = updated
	}
	out := c.finish(err, MsgUpdateFailed)
	c.mu.Unlock()

	c.saveMirror(ctx)
	out.Record = updated
	return out, nil
}

// DeleteRecord removes a customer locally whether or not the gateway
// succeeds.
func (c *Cache) DeleteRecord(ctx context.Context, id string) (Outcome, error) {
	c.clearError()

	err := c.gw.Delete(ctx, id)
	if err != nil {
		c.log(ctx).With("op", "delete", "id", id).Warn("gateway delete failed; removing locally", "error", err)
	}

	c.mu.Lock()
	var removed core.Record
	if i := c.indexLocked(id); i >= 0 {
		removed = c.records[i]
		c.records = append(c.records[:i:i], c.records[i+1:]...)
	}
	out := c.finish(err, MsgDeleteFailed)
	c.mu.Unlock()

	c.saveMirror(ctx)
	out.Record = removed
	return out, nil
}

// FindByID looks a customer up in memory only.
func (c *Cache) FindByID(id string) (core.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexLocked(id); i >= 0 {
		return c.records[i], true
	}
	return core.Record{}, false
}

// Records returns a copy of the current list, newest first.
func (c *Cache) Records() []core.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLocked()
}

// Snapshot returns a copy of the full state.
func (c *Cache) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Records: c.copyLocked(), Loading: c.loading, LastError: c.lastError}
}

// LastError returns the message of the most recent gateway failure, or "".
func (c *Cache) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

func (c *Cache) clearError() {
	c.mu.Lock()
	c.lastError = ""
	c.mu.Unlock()
}

// finish records the failure message, if any. Caller holds mu.
func (c *Cache) finish(err error, msg string) Outcome {
	if err == nil {
		return Outcome{}
	}
	c.lastError = msg
	return Outcome{Offline: true, Message: msg}
}

func (c *Cache) indexLocked(id string) int {
	for i, r := range c.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cache) copyLocked() []core.Record {
	return append([]core.Record(nil), c.records...)
}

func (c *Cache) loadMirror(ctx context.Context) ([]core.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.mirrorTimeout)
	defer cancel()
	return c.mirror.Load(ctx)
}

// saveMirror overwrites the mirror with the current list. Saves are
// serialized and each one reads the list after acquiring saveMu, so the last
// write always reflects the latest state. Failures are logged, never returned.
func (c *Cache) saveMirror(ctx context.Context) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	records := c.Records()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.mirrorTimeout)
	defer cancel()

	if err := c.mirror.Save(ctx, records); err != nil {
		c.log(ctx).Warn("mirror write failed", "error", err, "count", len(records))
	}
}

func (c *Cache) log(ctx context.Context) *slog.Logger {
	return logging.Scoped(ctx, c.logger)
}
