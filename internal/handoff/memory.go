package handoff

import (
	"context"
	"sync"
	"time"

	"github.com/honeycarbs/occupation-insights/internal/domain"
)

type memoryEntry struct {
	report    domain.JobInsightsReport
	expiresAt time.Time
}

// MemoryStore keeps slots in process memory with a fixed TTL
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	clock   func() time.Time

	nextSweep time.Time
}

// NewMemoryStore creates a store; ttl <= 0 keeps entries forever
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		clock:   time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, session string, report domain.JobInsightsReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expires time.Time
	if s.ttl > 0 {
		now := s.clock()
		expires = now.Add(s.ttl)
		if !now.Before(s.nextSweep) {
			s.sweepLocked(now)
			s.nextSweep = expires
		}
	}
	s.entries[Key(session)] = memoryEntry{report: report, expiresAt: expires}
	return nil
}

// sweepLocked drops expired slots, at most once per TTL, so sessions that
// are never read again do not accumulate.
func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, e := range s.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

func (s *MemoryStore) Load(_ context.Context, session string) (domain.JobInsightsReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(session)
	e, ok := s.entries[key]
	if !ok {
		return domain.JobInsightsReport{}, ErrNotFound
	}
	if !e.expiresAt.IsZero() && !s.clock().Before(e.expiresAt) {
		delete(s.entries, key)
		return domain.JobInsightsReport{}, ErrNotFound
	}
	return e.report, nil
}

var _ Store = (*MemoryStore)(nil)
