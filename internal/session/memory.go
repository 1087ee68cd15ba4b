package session

import (
	"context"
	"sync"
	"time"

	"jobportal/internal/auth"
)

type memoryEntry struct {
	principal auth.Principal
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded in-process session store. It backs tests and
// deployments where Redis is unavailable.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
}

// NewMemoryStore creates a MemoryStore with the given session TTL.
// A non-positive ttl falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Create(_ context.Context, p auth.Principal) (string, error) {
	token := newToken()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[token] = memoryEntry{principal: p, expiresAt: time.Now().Add(s.ttl)}
	return token, nil
}

func (s *MemoryStore) Resolve(_ context.Context, token string) (*auth.Principal, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, nil
	}

	p := entry.principal
	return &p, nil
}

// Refresh replaces the stored principal without rotating the token, keeping
// its original expiry. Unknown tokens are ignored.
func (s *MemoryStore) Refresh(_ context.Context, token string, p auth.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return nil
	}
	entry.principal = p
	s.sessions[token] = entry
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// sweepLocked drops expired entries. Called with the write lock held.
func (s *MemoryStore) sweepLocked() {
	now := time.Now()
	for token, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, token)
		}
	}
}
