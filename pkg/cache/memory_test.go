package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	t.Cleanup(s.Close)
	return s
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "trending_styles:limit:10", []byte(`["a"]`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "trending_styles:limit:10")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `["a"]` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Fatalf("expected value before expiry, got %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if _, err := s.Get(ctx, "k"); err != ErrMiss {
		t.Fatalf("expected miss after expiry, got %v", err)
	}
	// Expired reads remove the entry lazily.
	if n, _ := s.Len(ctx); n != 0 {
		t.Fatalf("expected 0 live entries, got %d", n)
	}
}

func TestMemoryStoreMissOnAbsent(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get(context.Background(), "absent"); err != ErrMiss {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestMemoryStoreInvalidateByPredicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	keys := []string{
		"outfit_recommendations:limit:3:user_id:u1",
		"outfit_recommendations:limit:3:user_id:u2",
		"nearby_people:lat:37.775:limit:20:lng:-122.419:radius_km:1",
		"trending_styles:limit:10",
	}
	for _, k := range keys {
		if err := s.Set(ctx, k, []byte("v"), time.Minute); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	removed, err := s.InvalidateByPredicate(ctx, func(key string) bool {
		return strings.Contains(key, "user_id:u1")
	})
	if err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	if _, err := s.Get(ctx, keys[0]); err != ErrMiss {
		t.Fatal("user u1 entry should be gone")
	}
	if _, err := s.Get(ctx, keys[1]); err != nil {
		t.Fatal("user u2 entry should survive")
	}
}

func TestMemoryStoreClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.Set(ctx, "a", []byte("1"), time.Minute)
	_ = s.Set(ctx, "b", []byte("2"), time.Minute)
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n, _ := s.Len(ctx); n != 0 {
		t.Fatalf("expected empty store, got %d entries", n)
	}
}

func TestMemoryStoreDoesNotAliasStoredBytes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	payload := []byte("original")
	_ = s.Set(ctx, "k", payload, time.Minute)
	payload[0] = 'X'

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("stored bytes were aliased: %q", got)
	}
}
