package helpdesk

import (
	"context"
	"sync"
)

// MemRosterStore is an in-memory RosterStore for tests. ListCalls counts
// store reads so tests can assert the admin gate short-circuits.
type MemRosterStore struct {
	mu         sync.RWMutex
	Applicants []Applicant
	Helpers    []Helper

	ListCalls int
	FailWith  error
}

func NewMemRosterStore() *MemRosterStore {
	return &MemRosterStore{}
}

func (s *MemRosterStore) ListApplicants(ctx context.Context) ([]Applicant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListCalls++
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	return append([]Applicant(nil), s.Applicants...), nil
}

func (s *MemRosterStore) ListHelpers(ctx context.Context) ([]Helper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListCalls++
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	return append([]Helper(nil), s.Helpers...), nil
}
