package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Expired entries are dropped when
// read and swept from the whole map on every Set, so abandoned sessions do
// not outlive their ttl by more than one write.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	if !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	sess := entry.session
	return &sess, nil
}

func (s *MemoryStore) Set(_ context.Context, token string, sess *Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	s.entries[token] = memoryEntry{
		session:   *sess,
		expiresAt: now.Add(ttl),
	}

	return nil
}

// Sweep drops every expired entry.
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked(s.now())
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for token, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, token)
		}
	}
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, token)
	return nil
}

// Len returns the number of stored entries. Entries that expired since the
// last Set or Sweep are still counted.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
