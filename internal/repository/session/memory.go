// Package session provides the interview session stores.
package session

import (
	"context"
	"sync"
	"time"

	"go-hiring-assistant/internal/domain"
)

// maxSweepInterval bounds how often Save scans the whole map for expired entries.
const maxSweepInterval = time.Minute

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// memoryStore keeps sessions in process memory. Entries expire after ttl.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	sweepEvery time.Duration
	lastSweep  time.Time
}

func NewMemoryStore(ttl time.Duration) domain.SessionStore {
	return newMemoryStore(ttl, time.Now)
}

func newMemoryStore(ttl time.Duration, now func() time.Time) *memoryStore {
	every := maxSweepInterval
	if ttl > 0 && ttl < every {
		every = ttl
	}
	return &memoryStore{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		now:        now,
		sweepEvery: every,
		lastSweep:  now(),
	}
}

func (s *memoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.ttl > 0 && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		if cur, ok := s.entries[id]; ok && s.now().After(cur.expiresAt) {
			delete(s.entries, id)
		}
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}

	out := entry.session.Clone()
	return &out, nil
}

func (s *memoryStore) Save(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[session.ID] = memoryEntry{
		session:   session.Clone(),
		expiresAt: s.now().Add(s.ttl),
	}
	s.sweepLocked()
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// sweepLocked drops expired entries at most once per sweepEvery. Caller holds mu.
func (s *memoryStore) sweepLocked() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	if now.Sub(s.lastSweep) < s.sweepEvery {
		return
	}
	s.lastSweep = now
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
