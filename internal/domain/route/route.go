// Package route defines the static route surface and its per-route
// access metadata. Routes are configuration, not runtime state: the
// table is built once and only read afterwards.
package route

import (
	"strings"

	"github.com/DeltaH-ll/library-client/internal/domain/session"
)

// Well-known paths referenced by the guard and the request pipeline.
const (
	PathLogin          = "/login"
	PathRegister       = "/register"
	PathAdminDashboard = "/admin/dashboard"
	PathUserBookList   = "/user/book-list"
)

// LandingPath returns the authenticated landing route for a role:
// admins land on the dashboard, everyone else on the book list.
func LandingPath(role session.Role) string {
	if role == session.RoleAdmin {
		return PathAdminDashboard
	}
	return PathUserBookList
}

// Meta is the per-route access metadata driving guard decisions.
// A route carrying neither Public nor RequiresAuth is treated as
// public-like: the guard forces no redirect for it.
type Meta struct {
	// Public marks login/registration style pages that authenticated
	// users are bounced away from.
	Public bool
	// RequiresAuth marks pages that need a credential.
	RequiresAuth bool
	// Role, when set, restricts the route to sessions with that role.
	Role session.Role
}

// Route is one static route descriptor. Page identifies the component
// the rendering layer binds to the path; it is opaque here.
type Route struct {
	Path     string
	Page     string
	Meta     Meta
	Redirect string
	Children []Route
}

// Table resolves request paths to route descriptors. Child routes
// inherit their parent's metadata, mirroring how nested route records
// merge their meta.
type Table struct {
	byPath map[string]Route
}

// NewTable builds the table for the library application's route surface.
func NewTable() *Table {
	return newTable([]Route{
		{Path: "/", Redirect: PathLogin},
		{Path: PathLogin, Page: "login", Meta: Meta{Public: true}},
		{Path: PathRegister, Page: "register", Meta: Meta{Public: true}},
		{
			Path:     "/admin",
			Page:     "admin-home",
			Meta:     Meta{RequiresAuth: true, Role: session.RoleAdmin},
			Redirect: PathAdminDashboard,
			Children: []Route{
				{Path: "dashboard", Page: "admin-dashboard"},
				{Path: "books", Page: "admin-books"},
				{Path: "borrow", Page: "admin-borrow"},
				{Path: "users", Page: "admin-users"},
			},
		},
		{
			Path:     "/user",
			Page:     "user-home",
			Meta:     Meta{RequiresAuth: true, Role: session.RoleUser},
			Redirect: PathUserBookList,
			Children: []Route{
				{Path: "book-list", Page: "user-book-list"},
				{Path: "my-borrow", Page: "user-my-borrow"},
				{Path: "profile", Page: "user-profile"},
			},
		},
	})
}

// newTable flattens the route tree into a path-keyed map, resolving
// child paths against their parent and inheriting parent metadata.
func newTable(routes []Route) *Table {
	t := &Table{byPath: make(map[string]Route)}
	for _, r := range routes {
		t.add("", r, Meta{})
	}
	return t
}

func (t *Table) add(parentPath string, r Route, parentMeta Meta) {
	full := joinPath(parentPath, r.Path)

	resolved := r
	resolved.Path = full
	resolved.Meta = mergeMeta(parentMeta, r.Meta)
	resolved.Children = nil
	t.byPath[full] = resolved

	for _, child := range r.Children {
		t.add(full, child, resolved.Meta)
	}
}

// Match returns the resolved descriptor for path. The second return is
// false for paths outside the route surface; the guard sends those to
// the login route.
func (t *Table) Match(path string) (Route, bool) {
	r, ok := t.byPath[Normalize(path)]
	return r, ok
}

// Normalize strips a trailing slash so "/admin/" and "/admin" resolve
// to the same descriptor. The root path stays "/".
func Normalize(path string) string {
	if path == "" {
		return "/"
	}
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	return path
}

// mergeMeta layers a child's metadata over its parent's: fields the
// child leaves unset keep the parent's value.
func mergeMeta(parent, child Meta) Meta {
	merged := parent
	if child.Public {
		merged.Public = true
	}
	if child.RequiresAuth {
		merged.RequiresAuth = true
	}
	if child.Role != "" {
		merged.Role = child.Role
	}
	return merged
}

func joinPath(parent, child string) string {
	if parent == "" || strings.HasPrefix(child, "/") {
		return child
	}
	return strings.TrimRight(parent, "/") + "/" + child
}
