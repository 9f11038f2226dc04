package guard

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/DeltaH-ll/library-client/internal/domain/route"
	"github.com/DeltaH-ll/library-client/internal/domain/session"
)

// mockStorage is a simple in-memory key-value store for testing.
type mockStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func newMockStorage(values map[string]string) *mockStorage {
	if values == nil {
		values = make(map[string]string)
	}
	return &mockStorage{values: values}
}

func (m *mockStorage) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *mockStorage) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func mustMatch(t *testing.T, table *route.Table, path string) route.Route {
	t.Helper()
	r, ok := table.Match(path)
	if !ok {
		t.Fatalf("route %q not found in table", path)
	}
	return r
}

func TestGuard_Evaluate(t *testing.T) {
	table := route.NewTable()

	tests := []struct {
		name     string
		stored   map[string]string // durable storage contents
		identity *session.Identity // logged-in session, if any
		path     string
		want     Decision
	}{
		{
			name: "unauthenticated to admin dashboard redirects to login",
			path: "/admin/dashboard",
			want: Redirect(route.PathLogin),
		},
		{
			name:     "user role to admin route lands on own home",
			identity: &session.Identity{Username: "bob", Role: session.RoleUser, Token: "tok"},
			path:     "/admin/books",
			want:     Redirect(route.PathUserBookList),
		},
		{
			name:     "admin role to user route lands on own home",
			identity: &session.Identity{Username: "alice", Role: session.RoleAdmin, Token: "tok"},
			path:     "/user/my-borrow",
			want:     Redirect(route.PathAdminDashboard),
		},
		{
			name:     "authenticated admin to login bounces to dashboard",
			identity: &session.Identity{Username: "alice", Role: session.RoleAdmin, Token: "tok"},
			path:     "/login",
			want:     Redirect(route.PathAdminDashboard),
		},
		{
			name:     "authenticated user to register bounces to book list",
			identity: &session.Identity{Username: "bob", Role: session.RoleUser, Token: "tok"},
			path:     "/register",
			want:     Redirect(route.PathUserBookList),
		},
		{
			name: "unauthenticated to login is allowed",
			path: "/login",
			want: Allow(),
		},
		{
			name: "stored session is reconstituted before deciding",
			stored: map[string]string{
				session.KeyToken: "tok",
				session.KeyRole:  "user",
			},
			path: "/user/profile",
			want: Allow(),
		},
		{
			name: "stored admin session still fails role check",
			stored: map[string]string{
				session.KeyToken: "tok",
				session.KeyRole:  "admin",
			},
			path: "/user/profile",
			want: Redirect(route.PathAdminDashboard),
		},
		{
			name:     "matching role is allowed",
			identity: &session.Identity{Username: "alice", Role: session.RoleAdmin, Token: "tok"},
			path:     "/admin/users",
			want:     Allow(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			sessions := session.NewManager(newMockStorage(tt.stored), slog.Default())
			if tt.identity != nil {
				sessions.Login(ctx, *tt.identity)
			}
			g := New(sessions, slog.Default(), nil)

			got := g.Evaluate(ctx, mustMatch(t, table, tt.path), true)
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGuard_UnmatchedPathRedirectsToLogin(t *testing.T) {
	sessions := session.NewManager(newMockStorage(nil), slog.Default())
	g := New(sessions, slog.Default(), nil)

	got := g.Evaluate(context.Background(), route.Route{Path: "/no-such-page"}, false)
	if got != Redirect(route.PathLogin) {
		t.Errorf("Evaluate(unmatched) = %+v, want redirect to login", got)
	}
}

func TestGuard_RouteWithoutFlagsForcesNoRedirect(t *testing.T) {
	// A route carrying neither Public nor RequiresAuth is public-like.
	bare := route.Route{Path: "/about"}

	t.Run("unauthenticated", func(t *testing.T) {
		sessions := session.NewManager(newMockStorage(nil), slog.Default())
		g := New(sessions, slog.Default(), nil)
		if got := g.Evaluate(context.Background(), bare, true); !got.Allowed() {
			t.Errorf("Evaluate(bare route) = %+v, want allow", got)
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		ctx := context.Background()
		sessions := session.NewManager(newMockStorage(nil), slog.Default())
		sessions.Login(ctx, session.Identity{Username: "bob", Token: "tok"})
		g := New(sessions, slog.Default(), nil)
		if got := g.Evaluate(ctx, bare, true); !got.Allowed() {
			t.Errorf("Evaluate(bare route) = %+v, want allow", got)
		}
	})
}

func TestGuard_DoesNotLoadForPublicTargets(t *testing.T) {
	// The lazy reload only runs when the target requires auth, so a
	// logged-out user with stale storage still reaches the login page.
	stored := map[string]string{
		session.KeyToken: "tok",
		session.KeyRole:  "user",
	}
	sessions := session.NewManager(newMockStorage(stored), slog.Default())
	g := New(sessions, slog.Default(), nil)

	table := route.NewTable()
	got := g.Evaluate(context.Background(), mustMatch(t, table, "/login"), true)
	if !got.Allowed() {
		t.Errorf("Evaluate(/login) = %+v, want allow (no eager reload)", got)
	}
	if sessions.Current().Authenticated() {
		t.Error("session was reconstituted for a public target")
	}
}
