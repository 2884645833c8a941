package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/eventfeed/eventfeed/app/cache"
	"github.com/eventfeed/eventfeed/app/feed"
)

func newCachedService(t *testing.T, products ...string) (*Service, *miniredis.Miniredis, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "events.xml")
	writeProducts(t, path, products...)

	reader, err := feed.NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	store, err := cache.NewRedis(mr.Addr(), time.Hour)
	if err != nil {
		t.Fatalf("failed to connect to miniredis: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(reader, store), mr, path
}

func TestCacheKey_ParamOrderIndependent(t *testing.T) {
	a := feed.Params{"orderby": "price", "order": "desc", "country": "brasil"}
	b := feed.Params{"country": "brasil", "order": "desc", "orderby": "price"}

	if cacheKey(feed.OpEvents, a) != cacheKey(feed.OpEvents, b) {
		t.Error("Logically identical queries must share a cache key")
	}
}

func TestCacheKey_DistinguishesOperationAndParams(t *testing.T) {
	params := feed.Params{"country": "brasil"}

	if cacheKey(feed.OpEvents, params) == cacheKey(feed.OpCategories, params) {
		t.Error("Different operations must not share a cache key")
	}
	if cacheKey(feed.OpEvents, params) == cacheKey(feed.OpEvents, feed.Params{}) {
		t.Error("Different parameter sets must not share a cache key")
	}
	if !strings.HasPrefix(cacheKey(feed.OpEvents, params), keyPrefix) {
		t.Errorf("Cache keys must carry the %q namespace prefix", keyPrefix)
	}
}

func TestService_CacheHitSkipsFeedScan(t *testing.T) {
	svc, mr, path := newCachedService(t, product("Show A", "Rock", "Curitiba", "50.00"))

	first := svc.Events(map[string]string{})
	if len(first) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(first))
	}
	if len(mr.Keys()) == 0 {
		t.Fatal("Expected the result to be cached")
	}

	// rewrite the feed but keep its mtime in the past: a cache hit must
	// serve the old payload without touching the file
	writeProducts(t, path,
		product("Show A", "Rock", "Curitiba", "50.00"),
		product("Show B", "Rock", "Curitiba", "60.00"),
	)

	second := svc.Events(map[string]string{})
	if len(second) != 1 {
		t.Errorf("Expected the cached single-event result, got %d events", len(second))
	}
	if second[0].Name != "Show A" || second[0].ID != first[0].ID {
		t.Errorf("Cached payload differs from the original result")
	}
}

func TestService_NewerFeedClearsNamespace(t *testing.T) {
	svc, mr, path := newCachedService(t, product("Show A", "Rock", "Curitiba", "50.00"))

	svc.Events(map[string]string{})
	svc.Categories(map[string]string{})
	if len(mr.Keys()) < 2 {
		t.Fatalf("Expected at least 2 cached entries, got %d", len(mr.Keys()))
	}

	// new feed content with an mtime past the entries' creation time
	writeProducts(t, path,
		product("Show A", "Rock", "Curitiba", "50.00"),
		product("Show B", "Rock", "Curitiba", "60.00"),
	)
	future := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("failed to bump feed mtime: %v", err)
	}

	events := svc.Events(map[string]string{})
	if len(events) != 2 {
		t.Errorf("Expected a fresh scan of the new feed, got %d events", len(events))
	}

	// the categories entry was invalidated along with the whole namespace,
	// so this recomputes from the new feed too
	categories := svc.Categories(map[string]string{})
	if len(categories) != 1 || categories[0].Count != 2 {
		t.Errorf("Expected recomputed category aggregate with count 2, got %+v", categories)
	}
}

func TestService_ExpiredEntryRecomputes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.xml")
	writeProducts(t, path, product("Show A", "Rock", "Curitiba", "50.00"))

	reader, err := feed.NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	// zero TTL: entries are expired the moment they are written
	store, err := cache.NewRedis(mr.Addr(), 0)
	if err != nil {
		t.Fatalf("failed to connect to miniredis: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc := New(reader, store)

	svc.Events(map[string]string{})

	writeProducts(t, path,
		product("Show A", "Rock", "Curitiba", "50.00"),
		product("Show B", "Rock", "Curitiba", "60.00"),
	)

	events := svc.Events(map[string]string{})
	if len(events) != 2 {
		t.Errorf("Expired entry should force a fresh scan, got %d events", len(events))
	}
}

func TestService_EmptyResultsNotCached(t *testing.T) {
	svc, mr, _ := newCachedService(t, product("Show A", "Rock", "Curitiba", "50.00"))

	events := svc.Events(map[string]string{"categoryId": "0000000000000000"})
	if len(events) != 0 {
		t.Fatalf("Expected no events, got %d", len(events))
	}
	if len(mr.Keys()) != 0 {
		t.Errorf("Empty results must not be cached, found keys: %v", mr.Keys())
	}

	if svc.Event(map[string]string{"id": "0000000000000000"}) != nil {
		t.Fatal("Expected absent event")
	}
	if len(mr.Keys()) != 0 {
		t.Errorf("Absent single-entity results must not be cached, found keys: %v", mr.Keys())
	}
}

func TestService_SingleEntityCached(t *testing.T) {
	svc, _, path := newCachedService(t, product("Show A", "Rock", "Curitiba", "50.00"))

	categories := svc.Categories(map[string]string{})
	if len(categories) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(categories))
	}
	id := categories[0].ID

	first := svc.Category(map[string]string{"id": id})
	if first == nil {
		t.Fatal("Expected category")
	}

	// stale-mtime rewrite: a second lookup must come from cache
	writeProducts(t, path)

	second := svc.Category(map[string]string{"id": id})
	if second == nil {
		t.Fatal("Expected cached category after feed emptied")
	}
	if second.Count != first.Count || second.ID != first.ID {
		t.Errorf("Cached category differs: %+v vs %+v", first, second)
	}
}
