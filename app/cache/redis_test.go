package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	store, err := NewRedis(mr.Addr(), ttl)
	if err != nil {
		t.Fatalf("failed to connect to miniredis: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestRedis_SetGetRoundtrip(t *testing.T) {
	store, _ := newTestRedis(t, time.Hour)

	before := time.Now()
	if err := store.Set("evt_abc", []byte(`{"name":"Rock Show"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entry, err := store.Get("evt_abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry == nil {
		t.Fatal("Expected entry, got nil")
	}

	if string(entry.Payload) != `{"name":"Rock Show"}` {
		t.Errorf("Unexpected payload: %s", entry.Payload)
	}
	if entry.CreatedAt.Before(before.Add(-time.Second)) {
		t.Errorf("CreatedAt too old: %v", entry.CreatedAt)
	}
	if !entry.ExpiresAt.After(entry.CreatedAt) {
		t.Errorf("ExpiresAt %v should be after CreatedAt %v", entry.ExpiresAt, entry.CreatedAt)
	}
}

func TestRedis_GetMissingKey(t *testing.T) {
	store, _ := newTestRedis(t, time.Hour)

	entry, err := store.Get("evt_missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry != nil {
		t.Errorf("Expected nil entry for missing key, got %+v", entry)
	}
}

func TestRedis_GetCorruptEntry(t *testing.T) {
	store, mr := newTestRedis(t, time.Hour)

	mr.Set("evt_corrupt", "not json at all")

	entry, err := store.Get("evt_corrupt")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry != nil {
		t.Errorf("Expected corrupt entry to read as a miss, got %+v", entry)
	}

	// corrupt entry should have been dropped
	if mr.Exists("evt_corrupt") {
		t.Error("Expected corrupt entry to be deleted")
	}
}

func TestRedis_ClearAllOnlyMatchesPrefix(t *testing.T) {
	store, mr := newTestRedis(t, time.Hour)

	if err := store.Set("evt_one", []byte(`1`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("evt_two", []byte(`2`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	mr.Set("other_key", "kept")

	if err := store.ClearAll("evt_"); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	if mr.Exists("evt_one") || mr.Exists("evt_two") {
		t.Error("Expected all evt_ keys to be cleared")
	}
	if !mr.Exists("other_key") {
		t.Error("ClearAll should not touch keys outside the prefix")
	}
}

func TestRedis_SetAppliesTTL(t *testing.T) {
	store, mr := newTestRedis(t, time.Minute)

	if err := store.Set("evt_ttl", []byte(`1`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	ttl := mr.TTL("evt_ttl")
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("Expected TTL in (0, 1m], got %v", ttl)
	}

	// after the TTL elapses the key is gone
	mr.FastForward(2 * time.Minute)
	entry, err := store.Get("evt_ttl")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry != nil {
		t.Error("Expected entry to expire")
	}
}
