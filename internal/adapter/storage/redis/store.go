// Package redis provides a Redis-backed session storage backend.
//
// Each session attribute is stored as a plain string under a
// namespaced key, so the persisted layout stays the same seven flat
// key-value pairs as every other backend.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/DeltaH-ll/library-client/internal/domain/session"
)

// DefaultKeyPrefix namespaces session keys in a shared Redis instance.
const DefaultKeyPrefix = "library:session:"

// Store is a go-redis backed session.Storage implementation.
type Store struct {
	client *goredis.Client
	prefix string
}

// NewStore creates a Store over an existing Redis client.
func NewStore(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Get returns the value for key, or "" if the key is absent.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key with no expiration. Session lifetime is
// governed by Logout, not by a TTL.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Compile-time check that Store implements session.Storage.
var _ session.Storage = (*Store)(nil)
