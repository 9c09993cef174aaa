package registry

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/server/models"
)

// Change is everything one successful operation writes: the resulting
// profile row and the events it emitted. A Store must persist it
// atomically.
type Change struct {
	Profile models.Profile
	Events  []models.Event
}

// Snapshot is the persisted state a registry is rebuilt from.
// LastTime is the timestamp of the newest journaled event; profile fields
// alone do not record when an update happened.
type Snapshot struct {
	Profiles []models.Profile
	LastSeq  int64
	LastTime time.Time
}

// Store is the registry's journal.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Commit(ctx context.Context, c Change) error
	Events(ctx context.Context, since int64, limit int) ([]models.Event, error)
}

// MemoryStore keeps the journal in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
	order    []string
	events   []models.Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]models.Profile)}
}

func (m *MemoryStore) Load(ctx context.Context) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{Profiles: make([]models.Profile, 0, len(m.order))}
	for _, id := range m.order {
		s.Profiles = append(s.Profiles, m.profiles[id])
	}
	if n := len(m.events); n > 0 {
		s.LastSeq = m.events[n-1].Seq
		s.LastTime = m.events[n-1].Timestamp
	}
	return s, nil
}

func (m *MemoryStore) Commit(ctx context.Context, c Change) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[c.Profile.Identity]; !ok {
		m.order = append(m.order, c.Profile.Identity)
	}
	m.profiles[c.Profile.Identity] = c.Profile
	m.events = append(m.events, c.Events...)
	return nil
}

func (m *MemoryStore) Events(ctx context.Context, since int64, limit int) ([]models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Event, 0)
	for _, e := range m.events {
		if e.Seq <= since {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
