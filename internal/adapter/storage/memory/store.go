// Package memory provides an in-memory session storage backend.
// State is lost on process exit; intended for tests and ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/DeltaH-ll/library-client/internal/domain/session"
)

// Store is a map-backed session.Storage implementation.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value for key, or "" if absent.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys. Primarily for tests.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Compile-time check that Store implements session.Storage.
var _ session.Storage = (*Store)(nil)
