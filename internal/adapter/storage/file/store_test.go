package file

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/DeltaH-ll/library-client/internal/domain/session"
)

func TestStore_GetSetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path, slog.Default())
	ctx := context.Background()

	// Absent file reads as empty.
	if got, err := store.Get(ctx, session.KeyToken); err != nil || got != "" {
		t.Fatalf("Get(absent) = (%q, %v), want (\"\", nil)", got, err)
	}

	if err := store.Set(ctx, session.KeyToken, "tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, session.KeyRole, "admin"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := store.Get(ctx, session.KeyToken); got != "tok-1" {
		t.Errorf("Get(token) = %q, want %q", got, "tok-1")
	}
	if got, _ := store.Get(ctx, session.KeyRole); got != "admin" {
		t.Errorf("Get(role) = %q, want %q", got, "admin")
	}

	if err := store.Delete(ctx, session.KeyToken); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := store.Get(ctx, session.KeyToken); got != "" {
		t.Errorf("Get(token) after delete = %q, want empty", got)
	}
	if got, _ := store.Get(ctx, session.KeyRole); got != "admin" {
		t.Errorf("Get(role) after unrelated delete = %q, want %q", got, "admin")
	}

	if err := store.Delete(ctx, "no-such-key"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	first := NewStore(path, slog.Default())
	if err := first.Set(ctx, session.KeyToken, "tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// A fresh store over the same path sees the persisted value.
	second := NewStore(path, slog.Default())
	if got, _ := second.Get(ctx, session.KeyToken); got != "tok-1" {
		t.Errorf("Get() after reopen = %q, want %q", got, "tok-1")
	}
}

func TestStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits not supported on windows")
	}

	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path, slog.Default())
	if err := store.Set(context.Background(), session.KeyToken, "tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if mode := info.Mode().Perm(); mode&0077 != 0 {
		t.Errorf("session file mode = %04o, want no group/other access", mode)
	}
}

func TestStore_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	store := NewStore(path, slog.Default())
	if err := store.Set(context.Background(), session.KeyToken, "tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := store.Get(context.Background(), session.KeyToken); got != "tok-1" {
		t.Errorf("Get() = %q, want %q", got, "tok-1")
	}
}
