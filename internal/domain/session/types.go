// Package session owns the authenticated-identity record and its
// synchronization into durable storage.
package session

// Role is the access role attached to an authenticated session.
type Role string

// The two roles the route tree is partitioned by.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Durable storage keys. One flat string value per session attribute;
// an absent key is equivalent to the empty string. This layout is the
// full persisted-state contract and must not change.
const (
	KeyToken     = "token"
	KeyUsername  = "username"
	KeyRole      = "role"
	KeyUserID    = "userId"
	KeyEmail     = "email"
	KeyStudentID = "studentId"
	KeyAvatar    = "avatar"
)

// Keys lists every durable storage key, in the order they are written.
var Keys = []string{
	KeyToken,
	KeyUsername,
	KeyRole,
	KeyUserID,
	KeyEmail,
	KeyStudentID,
	KeyAvatar,
}

// Session is the current identity record. A zero Session is an
// unauthenticated session.
type Session struct {
	Username  string
	Role      Role
	ID        string
	Token     string
	Email     string
	StudentID string
	Avatar    string
}

// Authenticated reports whether the session holds a credential.
// Token presence is the sole authentication signal; every other field
// is meaningless when Token is empty.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Identity is the payload supplied by a successful credential exchange.
// Omitted fields default to empty, except Role which defaults to RoleUser.
type Identity struct {
	Username  string
	Role      Role
	ID        string
	Token     string
	Email     string
	StudentID string
	Avatar    string
}

// Profile is a partial update of the display attributes. A nil field is
// left untouched; a non-nil field overwrites both the in-memory and the
// durable value.
type Profile struct {
	Username  *string
	Email     *string
	StudentID *string
	Avatar    *string
}
