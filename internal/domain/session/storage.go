package session

import "context"

// Storage is the durable key-value shadow of the session.
// This interface is defined in the domain to avoid circular imports.
// Implementations: file (default), memory (test), redis, sqlite.
//
// A missing key is reported as ("", nil), not as an error. Writes are
// best-effort from the manager's point of view: the manager logs and
// continues on storage errors, it never surfaces them to callers.
type Storage interface {
	// Get returns the value for key, or "" if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
