package verification

import (
	"context"
	"sync"
	"time"

	id "rtwgate/pkg/domain"
	"rtwgate/pkg/platform/sentinel"
)

type memoryKey struct {
	tenant id.TenantID
	id     id.VerificationID
}

type cachedRecord struct {
	record    Record
	expiresAt time.Time
}

// InMemoryOutcomeStore is the OutcomeStore used when Redis is not configured.
type InMemoryOutcomeStore struct {
	mu      sync.RWMutex
	records map[memoryKey]cachedRecord
	now     func() time.Time
}

func NewInMemoryOutcomeStore() *InMemoryOutcomeStore {
	return &InMemoryOutcomeStore{
		records: make(map[memoryKey]cachedRecord),
		now:     time.Now,
	}
}

// WithClock replaces the expiry clock. Tests only.
func (s *InMemoryOutcomeStore) WithClock(now func() time.Time) *InMemoryOutcomeStore {
	s.now = now
	return s
}

func (s *InMemoryOutcomeStore) Save(_ context.Context, rec Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	s.records[memoryKey{tenant: rec.TenantID, id: rec.Outcome.ID}] = cachedRecord{
		record:    rec,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *InMemoryOutcomeStore) Find(_ context.Context, tenantID id.TenantID, verificationID id.VerificationID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cached, ok := s.records[memoryKey{tenant: tenantID, id: verificationID}]
	if !ok || !s.now().Before(cached.expiresAt) {
		return nil, sentinel.ErrNotFound
	}
	rec := cached.record
	return &rec, nil
}

// evictExpired runs on writes so the map stays bounded. Caller holds mu.
func (s *InMemoryOutcomeStore) evictExpired() {
	now := s.now()
	for k, v := range s.records {
		if !now.Before(v.expiresAt) {
			delete(s.records, k)
		}
	}
}
