// Package registry implements the identity registry: a directory of
// profiles keyed by identity handle, with username and email uniqueness
// indexes, guarded mutations, and notifications.
//
// Every operation runs under one mutex, validates against in-memory state,
// journals its result through a Store, and only then mutates memory. Events
// reach the Notifier after the mutex is released, in commit order, before
// the operation returns. A failed operation changes nothing and notifies
// nobody.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/common"
	"github.com/dmitrijs2005/idregistry/internal/logging"
	"github.com/dmitrijs2005/idregistry/internal/server/models"
	"github.com/google/uuid"
)

const (
	DefaultEventsLimit = 100
	MaxEventsLimit     = 1000
)

// Notifier receives the events of each committed operation, in commit order.
// It is called without the registry lock held.
type Notifier interface {
	Notify(ctx context.Context, events []models.Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, []models.Event) {}

type Option func(*Registry)

func WithStore(s Store) Option { return func(r *Registry) { r.store = s } }

func WithNotifier(n Notifier) Option { return func(r *Registry) { r.notifier = n } }

func WithLogger(l logging.Logger) Option { return func(r *Registry) { r.logger = l } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(r *Registry) { r.now = now } }

// newEventID is a seam for tests.
var newEventID = func() string { return uuid.NewString() }

type Registry struct {
	mu sync.Mutex

	owner      string
	profiles   map[string]*models.Profile
	byUsername map[string]string
	byEmail    map[string]string

	store    Store
	notifier Notifier
	logger   logging.Logger
	now      func() time.Time

	lastTime time.Time
	lastSeq  int64

	// pending holds committed event batches not yet delivered. notifyMu
	// serializes delivery.
	pendingMu sync.Mutex
	pending   [][]models.Event
	notifyMu  sync.Mutex
}

// New returns an empty registry whose owner capability belongs to owner.
// Without WithStore the journal lives in memory.
func New(owner string, opts ...Option) *Registry {
	r := &Registry{
		owner:      owner,
		profiles:   make(map[string]*models.Profile),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
		store:      NewMemoryStore(),
		notifier:   nopNotifier{},
		logger:     logging.Nop{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("module", "registry")
	return r
}

// Open builds a registry and restores it from its store.
func Open(ctx context.Context, owner string, opts ...Option) (*Registry, error) {
	r := New(owner, opts...)

	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	if err := r.restore(snap); err != nil {
		return nil, err
	}

	r.logger.Info(ctx, "registry restored", "profiles", len(snap.Profiles), "last_seq", snap.LastSeq)
	return r, nil
}

func (r *Registry) restore(snap Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range snap.Profiles {
		if _, ok := r.profiles[p.Identity]; ok {
			return fmt.Errorf("%w: duplicate identity %q", ErrCorruptSnapshot, p.Identity)
		}
		if other, ok := r.byUsername[p.Username]; ok {
			return fmt.Errorf("%w: username %q held by %q and %q", ErrCorruptSnapshot, p.Username, other, p.Identity)
		}
		if other, ok := r.byEmail[p.Email]; ok {
			return fmt.Errorf("%w: email %q held by %q and %q", ErrCorruptSnapshot, p.Email, other, p.Identity)
		}

		stored := p
		r.profiles[p.Identity] = &stored
		r.byUsername[p.Username] = p.Identity
		r.byEmail[p.Email] = p.Identity

		for _, t := range []time.Time{p.RegisteredAt, p.LastLogin} {
			if t.After(r.lastTime) {
				r.lastTime = t
			}
		}
	}
	if snap.LastTime.After(r.lastTime) {
		r.lastTime = snap.LastTime
	}
	r.lastSeq = snap.LastSeq
	return nil
}

func (r *Registry) Owner() string {
	return r.owner
}

func (r *Registry) IsRegistered(identity string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.profiles[identity]
	return ok
}

func (r *Registry) IsActive(identity string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[identity]
	return ok && p.IsActive
}

// GetProfile returns a copy of the profile, or common.ErrorNotFound.
func (r *Registry) GetProfile(identity string) (models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[identity]
	if !ok {
		return models.Profile{}, common.ErrorNotFound
	}
	return *p, nil
}

// Profiles returns copies of all profiles ordered by registration time.
func (r *Registry) Profiles() []models.Profile {
	r.mu.Lock()
	out := make([]models.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].Identity < out[j].Identity
		}
		return out[i].RegisteredAt.Before(out[j].RegisteredAt)
	})
	return out
}

// Events replays the notification journal after sequence number since.
func (r *Registry) Events(ctx context.Context, since int64, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = DefaultEventsLimit
	}
	if limit > MaxEventsLimit {
		limit = MaxEventsLimit
	}
	if since < 0 {
		since = 0
	}
	return r.store.Events(ctx, since, limit)
}

// nextTime returns the timestamp for the operation being prepared. It is
// strictly after every timestamp already committed.
func (r *Registry) nextTime() time.Time {
	t := r.now().UTC().Truncate(time.Microsecond)
	if !t.After(r.lastTime) {
		t = r.lastTime.Add(time.Microsecond)
	}
	return t
}

func (r *Registry) newEvent(kind models.EventKind, p models.Profile, at time.Time) models.Event {
	e := models.Event{
		Seq:       r.lastSeq + 1,
		ID:        newEventID(),
		Kind:      kind,
		Identity:  p.Identity,
		Timestamp: at,
	}
	if kind != models.EventLoggedIn {
		e.Username = p.Username
		e.Email = p.Email
	}
	return e
}

// commit journals next and, once the journal accepted it, installs it in
// memory and queues its events for flush. prev is nil for a new profile. at
// is the operation timestamp, or the zero time for operations that carry
// none. Callers hold r.mu.
func (r *Registry) commit(ctx context.Context, prev *models.Profile, next models.Profile, at time.Time, events []models.Event) error {
	if err := r.store.Commit(ctx, Change{Profile: next, Events: events}); err != nil {
		r.logger.Error(ctx, "journal commit failed", "identity", next.Identity, "error", err)
		return fmt.Errorf("journal commit: %w", err)
	}

	if prev != nil {
		if prev.Username != next.Username {
			delete(r.byUsername, prev.Username)
		}
		if prev.Email != next.Email {
			delete(r.byEmail, prev.Email)
		}
	}
	r.byUsername[next.Username] = next.Identity
	r.byEmail[next.Email] = next.Identity

	stored := next
	r.profiles[next.Identity] = &stored

	if at.After(r.lastTime) {
		r.lastTime = at
	}
	if n := len(events); n > 0 {
		r.lastSeq = events[n-1].Seq
		r.pendingMu.Lock()
		r.pending = append(r.pending, events)
		r.pendingMu.Unlock()
	}
	return nil
}

// flush delivers pending batches. Mutating operations defer it ahead of
// their unlock, so it runs after r.mu is released. Whoever holds notifyMu
// drains batches queued by others too, which keeps delivery in commit order
// and guarantees an operation's events are out before it returns.
func (r *Registry) flush(ctx context.Context) {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	for {
		r.pendingMu.Lock()
		batches := r.pending
		r.pending = nil
		r.pendingMu.Unlock()

		if len(batches) == 0 {
			return
		}
		for _, events := range batches {
			r.notifier.Notify(ctx, events)
		}
	}
}
