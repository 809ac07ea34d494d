// Package store persists right-to-work checks. Rows are insert-only; nothing
// here updates or deletes a check.
package store

import (
	"context"
	"sort"
	"sync"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/models"
	id "rtwgate/pkg/domain"
	"rtwgate/pkg/platform/sentinel"
)

// InMemoryStore backs the service when no database is configured.
type InMemoryStore struct {
	mu     sync.RWMutex
	checks map[id.TenantID][]*models.Check
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{checks: make(map[id.TenantID][]*models.Check)}
}

func (s *InMemoryStore) Insert(_ context.Context, check *models.Check) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.checks[check.TenantID] {
		if existing.ID == check.ID {
			return sentinel.ErrConflict
		}
	}
	s.checks[check.TenantID] = append(s.checks[check.TenantID], clone(check))
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, tenantID id.TenantID, checkID id.CheckID) (*models.Check, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.checks[tenantID] {
		if c.ID == checkID {
			return clone(c), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// ListBySubject returns the subject's checks, most recent check date first.
func (s *InMemoryStore) ListBySubject(_ context.Context, tenantID id.TenantID, employeeID id.EmployeeID) ([]*models.Check, error) {
	out := s.filter(tenantID, func(c *models.Check) bool {
		return c.EmployeeID != nil && *c.EmployeeID == employeeID
	})
	sortByCheckDateDesc(out)
	return out, nil
}

// ListDueBefore returns checks whose next check date is on or before cutoff,
// soonest first.
func (s *InMemoryStore) ListDueBefore(_ context.Context, tenantID id.TenantID, cutoff eligibility.Date) ([]*models.Check, error) {
	out := s.filter(tenantID, func(c *models.Check) bool {
		return c.NextCheckDate != nil && !c.NextCheckDate.After(cutoff)
	})
	sortByNextCheckAsc(out)
	return out, nil
}

func (s *InMemoryStore) ListRequiringFollowup(_ context.Context, tenantID id.TenantID) ([]*models.Check, error) {
	out := s.filter(tenantID, func(c *models.Check) bool { return c.RequiresFollowup })
	sortByNextCheckAsc(out)
	return out, nil
}

func (s *InMemoryStore) ListByDocumentType(_ context.Context, tenantID id.TenantID, documentType eligibility.DocumentType) ([]*models.Check, error) {
	out := s.filter(tenantID, func(c *models.Check) bool { return c.DocumentType == documentType })
	sortByCheckDateDesc(out)
	return out, nil
}

func (s *InMemoryStore) ListByTenant(_ context.Context, tenantID id.TenantID) ([]*models.Check, error) {
	out := s.filter(tenantID, func(*models.Check) bool { return true })
	sortByCheckDateDesc(out)
	return out, nil
}

// Count returns the number of stored checks for a tenant.
func (s *InMemoryStore) Count(tenantID id.TenantID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.checks[tenantID])
}

func (s *InMemoryStore) filter(tenantID id.TenantID, keep func(*models.Check) bool) []*models.Check {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Check, 0)
	for _, c := range s.checks[tenantID] {
		if keep(c) {
			out = append(out, clone(c))
		}
	}
	return out
}

func clone(c *models.Check) *models.Check {
	cp := *c
	cp.Warnings = append([]string(nil), c.Warnings...)
	if cp.Warnings == nil {
		cp.Warnings = []string{}
	}
	return &cp
}

func sortByCheckDateDesc(checks []*models.Check) {
	sort.SliceStable(checks, func(i, j int) bool {
		a, b := checks[i].CheckDate, checks[j].CheckDate
		if a.After(b) || b.After(a) {
			return a.After(b)
		}
		return checks[i].CreatedAt.After(checks[j].CreatedAt)
	})
}

func sortByNextCheckAsc(checks []*models.Check) {
	sort.SliceStable(checks, func(i, j int) bool {
		a, b := checks[i].NextCheckDate, checks[j].NextCheckDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Before(*b)
	})
}
