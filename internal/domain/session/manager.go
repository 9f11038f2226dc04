package session

import (
	"context"
	"log/slog"
	"sync"
)

// Manager is the single source of truth for the current identity.
// All mutations flow through Login, Load, UpdateProfile, and Logout;
// consumers read a consistent snapshot via Current.
//
// The durable storage is a synchronized shadow copy, not a second
// owner: every mutation is mirrored into it, and Load reconstitutes
// in-memory state from it after a process restart.
type Manager struct {
	mu      sync.Mutex
	current Session
	storage Storage
	logger  *slog.Logger
}

// NewManager creates a Manager with an empty session.
func NewManager(storage Storage, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		storage: storage,
		logger:  logger,
	}
}

// Current returns a snapshot of the session. Consumers that need
// up-to-date state must re-read; there is no change notification.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Login overwrites the full session from an identity payload and
// rewrites every durable key. Omitted fields default to empty, except
// Role which defaults to RoleUser. Login cannot fail; storage errors
// are logged and swallowed.
func (m *Manager) Login(ctx context.Context, id Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	role := id.Role
	if role == "" {
		role = RoleUser
	}

	m.current = Session{
		Username:  id.Username,
		Role:      role,
		ID:        id.ID,
		Token:     id.Token,
		Email:     id.Email,
		StudentID: id.StudentID,
		Avatar:    id.Avatar,
	}

	m.writeAll(ctx)

	m.logger.Debug("session established",
		"username", m.current.Username,
		"role", m.current.Role,
	)
}

// Load reconstitutes the session from durable storage. Missing keys
// yield empty fields, so loading from empty storage produces an
// unauthenticated session. Idempotent.
func (m *Manager) Load(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = Session{
		Token:     m.read(ctx, KeyToken),
		Username:  m.read(ctx, KeyUsername),
		Role:      Role(m.read(ctx, KeyRole)),
		ID:        m.read(ctx, KeyUserID),
		Email:     m.read(ctx, KeyEmail),
		StudentID: m.read(ctx, KeyStudentID),
		Avatar:    m.read(ctx, KeyAvatar),
	}
}

// UpdateProfile overwrites only the explicitly supplied display fields,
// in memory and in durable storage. Fields absent from the input are
// left untouched.
func (m *Manager) UpdateProfile(ctx context.Context, p Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.Username != nil {
		m.current.Username = *p.Username
		m.write(ctx, KeyUsername, m.current.Username)
	}
	if p.Email != nil {
		m.current.Email = *p.Email
		m.write(ctx, KeyEmail, m.current.Email)
	}
	if p.StudentID != nil {
		m.current.StudentID = *p.StudentID
		m.write(ctx, KeyStudentID, m.current.StudentID)
	}
	if p.Avatar != nil {
		m.current.Avatar = *p.Avatar
		m.write(ctx, KeyAvatar, m.current.Avatar)
	}
}

// Logout resets every field and removes every durable key. Idempotent:
// a second call observes the same empty state.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = Session{}
	for _, key := range Keys {
		if err := m.storage.Delete(ctx, key); err != nil {
			m.logger.Warn("failed to remove session key", "key", key, "error", err)
		}
	}

	m.logger.Debug("session cleared")
}

// writeAll mirrors the full in-memory state into durable storage.
// Caller must hold m.mu.
func (m *Manager) writeAll(ctx context.Context) {
	m.write(ctx, KeyToken, m.current.Token)
	m.write(ctx, KeyUsername, m.current.Username)
	m.write(ctx, KeyRole, string(m.current.Role))
	m.write(ctx, KeyUserID, m.current.ID)
	m.write(ctx, KeyEmail, m.current.Email)
	m.write(ctx, KeyStudentID, m.current.StudentID)
	m.write(ctx, KeyAvatar, m.current.Avatar)
}

func (m *Manager) write(ctx context.Context, key, value string) {
	if err := m.storage.Set(ctx, key, value); err != nil {
		m.logger.Warn("failed to persist session key", "key", key, "error", err)
	}
}

func (m *Manager) read(ctx context.Context, key string) string {
	value, err := m.storage.Get(ctx, key)
	if err != nil {
		m.logger.Warn("failed to read session key", "key", key, "error", err)
		return ""
	}
	return value
}
