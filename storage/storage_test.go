package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, err := s.Get(ctx, "k")
	if err != nil || v != "v1" {
		t.Fatalf("expected v1, got %q err=%v", v, err)
	}

	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}
	v, err = s.Get(ctx, "k")
	if err != nil || v != "v2" {
		t.Fatalf("expected v2 after overwrite, got %q err=%v", v, err)
	}

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after Remove, got %v", err)
	}

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove of missing key must be a no-op, got %v", err)
	}
}

func TestMemoryStoreContract(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestFileStoreContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	storeContract(t, s)
}

func TestFileStoreReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := s.Set(ctx, "vetcare_user", `{"email":"a@b.c"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, "userEmail", "a@b.c"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	v, err := reopened.Get(ctx, "vetcare_user")
	if err != nil || v != `{"email":"a@b.c"}` {
		t.Fatalf("expected persisted value after reopen, got %q err=%v", v, err)
	}
}

func TestRedisStoreContract(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	storeContract(t, NewRedisStore(rdb, "test"))
}

func TestRedisStorePrefixIsolation(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	a := NewRedisStore(rdb, "a")
	b := NewRedisStore(rdb, "b")

	if err := a.Set(ctx, "k", "from-a"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected prefix isolation, got %v", err)
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewRedisStore(rdb, "test")
	mr.Close()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := s.Set(ctx, "k", "v"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
