package store

import (
	"context"
	"sync"
	"time"

	"keneviz-panel-go/internal/domain/session"
)

type memoryEntry struct {
	state     session.State
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Entries expire on
// access; a sweep on Save keeps the map from growing unbounded.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, id string, state session.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[id] = memoryEntry{state: state, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (session.State, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return session.State{}, session.ErrNotFound
	}
	return entry.state, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
