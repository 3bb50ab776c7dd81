package session

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu    sync.RWMutex
	creds map[string]Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{creds: make(map[string]Credentials)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds[id], nil
}

func (s *MemoryStore) Save(_ context.Context, id string, creds Credentials) error {
	if id == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[id] = creds
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, id)
	return nil
}
