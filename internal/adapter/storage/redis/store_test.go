package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/DeltaH-ll/library-client/internal/domain/session"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, ""), mr
}

func TestStore_GetSetDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if got, err := store.Get(ctx, session.KeyToken); err != nil || got != "" {
		t.Fatalf("Get(absent) = (%q, %v), want (\"\", nil)", got, err)
	}

	if err := store.Set(ctx, session.KeyToken, "tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := store.Get(ctx, session.KeyToken); got != "tok-1" {
		t.Errorf("Get() = %q, want %q", got, "tok-1")
	}

	if err := store.Delete(ctx, session.KeyToken); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := store.Get(ctx, session.KeyToken); got != "" {
		t.Errorf("Get() after delete = %q, want empty", got)
	}

	if err := store.Delete(ctx, session.KeyToken); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestStore_KeysAreNamespaced(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, session.KeyToken, "tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if got, err := mr.Get(DefaultKeyPrefix + session.KeyToken); err != nil || got != "tok-1" {
		t.Errorf("raw redis value = (%q, %v), want (%q, nil)", got, err, "tok-1")
	}
}

func TestStore_ServerDownReturnsError(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	if _, err := store.Get(context.Background(), session.KeyToken); err == nil {
		t.Error("Get() with server down: want error, got nil")
	}
	if err := store.Set(context.Background(), session.KeyToken, "x"); err == nil {
		t.Error("Set() with server down: want error, got nil")
	}
}
