package session

import (
	"context"
	"sync"
)

// MemProfileStore is an in-memory ProfileStore used by tests across the
// repository. FailWith, when set, makes every call return that error.
type MemProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile

	FailWith error
}

func NewMemProfileStore() *MemProfileStore {
	return &MemProfileStore{
		profiles: make(map[string]Profile),
	}
}

func (s *MemProfileStore) Get(ctx context.Context, id string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if profile, ok := s.profiles[id]; ok {
		return &profile, nil
	}
	return nil, nil
}

func (s *MemProfileStore) List(ctx context.Context) ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	profiles := make([]Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (s *MemProfileStore) Put(ctx context.Context, profile *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if existing, ok := s.profiles[profile.ID]; ok && existing.Version != profile.Version {
		return ErrVersionConflict
	}
	profile.Version++
	s.profiles[profile.ID] = *profile
	return nil
}
