package evidence

import (
	"context"
	"sync"

	"rtwgate/pkg/platform/sentinel"
)

// Object is a stored evidence file.
type Object struct {
	ContentType string
	Body        []byte
}

// InMemoryStore keeps objects in process. Development and tests only.
type InMemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{objects: make(map[string]Object)}
}

func (s *InMemoryStore) Put(_ context.Context, key, contentType string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[key]; exists {
		return sentinel.ErrConflict
	}
	s.objects[key] = Object{ContentType: contentType, Body: append([]byte(nil), body...)}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, key string) (Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return Object{}, sentinel.ErrNotFound
	}
	return obj, nil
}
