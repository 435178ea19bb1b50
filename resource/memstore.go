package resource

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrBlobNotFound is what MemBlobStore.Download returns for an unknown key.
var ErrBlobNotFound = errors.New("blob not found")

// MemResourceStore is an in-memory ResourceStore for tests. PutCalls counts
// writes so tests can assert no network action happened.
type MemResourceStore struct {
	mu        sync.RWMutex
	resources []Resource

	PutCalls int
	FailWith error
}

func NewMemResourceStore() *MemResourceStore {
	return &MemResourceStore{}
}

func (s *MemResourceStore) Get(ctx context.Context, id string) (*Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	for i := range s.resources {
		if s.resources[i].ID == id {
			resource := s.resources[i]
			return &resource, nil
		}
	}
	return nil, nil
}

func (s *MemResourceStore) Put(ctx context.Context, resource *Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PutCalls++
	if s.FailWith != nil {
		return s.FailWith
	}
	for i := range s.resources {
		if s.resources[i].ID == resource.ID {
			s.resources[i] = *resource
			return nil
		}
	}
	s.resources = append(s.resources, *resource)
	return nil
}

func (s *MemResourceStore) List(ctx context.Context) ([]Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	return append([]Resource(nil), s.resources...), nil
}

// MemBlobStore is an in-memory BlobStore for tests, recording uploads and
// deletes.
type MemBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte

	UploadCalls int
	DeleteCalls int
	FailWith    error
}

func NewMemBlobStore() *MemBlobStore {
	return &MemBlobStore{
		blobs: make(map[string][]byte),
	}
}

func (s *MemBlobStore) Upload(ctx context.Context, content []byte, key string, mediaType string, metadata map[string]string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UploadCalls++
	if s.FailWith != nil {
		return "", s.FailWith
	}
	s.blobs[key] = append([]byte(nil), content...)
	return "https://blobs.test/" + key, nil
}

func (s *MemBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return false, s.FailWith
	}
	_, ok := s.blobs[key]
	return ok, nil
}

func (s *MemBlobStore) Download(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	content, ok := s.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return append([]byte(nil), content...), nil
}

func (s *MemBlobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls++
	delete(s.blobs, key)
	return nil
}

func (s *MemBlobStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var keys []string
	for key := range s.blobs {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Has reports whether a blob is currently stored under key.
func (s *MemBlobStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[key]
	return ok
}
