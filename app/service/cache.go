package service

import (
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"github.com/eventfeed/eventfeed/app/feed"
	"github.com/eventfeed/eventfeed/app/fingerprint"
)

// keyPrefix namespaces every cache key this service writes. Staleness
// invalidation clears the whole namespace at once.
const keyPrefix = "evt_"

// cacheKey derives the canonical key for one query. url.Values.Encode sorts
// parameter keys, so two queries differing only in parameter order always
// map to the same key.
func cacheKey(op feed.Operation, params feed.Params) string {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	return keyPrefix + fingerprint.Hash(op.String()+values.Encode())
}

// resolveList serves a list-shaped query through the cache: hit returns the
// cached payload, miss computes and stores non-empty results.
func resolveList[T any](s *Service, op feed.Operation, params feed.Params, compute func() []T) []T {
	key := cacheKey(op, params)

	var cached []T
	if s.lookup(key, &cached) {
		return cached
	}

	result := compute()
	if len(result) > 0 {
		s.store(key, result)
	}
	return result
}

// resolveOne is resolveList for single-entity queries; absent results are
// never cached.
func resolveOne[T any](s *Service, op feed.Operation, params feed.Params, compute func() *T) *T {
	key := cacheKey(op, params)

	var cached *T
	if s.lookup(key, &cached) && cached != nil {
		return cached
	}

	result := compute()
	if result != nil {
		s.store(key, result)
	}
	return result
}

// lookup reads an entry and decides whether it is still servable: the entry
// must postdate the feed file's last modification and must not be expired.
// An entry older than the feed means every cached result in the namespace
// was derived from stale data, so the whole namespace is cleared.
func (s *Service) lookup(key string, out any) bool {
	if s.cache == nil {
		return false
	}

	entry, err := s.cache.Get(key)
	if err != nil {
		slog.Warn("Cache lookup failed", "key", key, "error", err)
		return false
	}
	if entry == nil {
		return false
	}

	if !entry.CreatedAt.After(s.reader.ModTime()) {
		slog.Info("Feed file newer than cache entry, clearing namespace", "key", key)
		if err := s.cache.ClearAll(keyPrefix); err != nil {
			slog.Warn("Cache namespace clear failed", "prefix", keyPrefix, "error", err)
		}
		return false
	}

	if !time.Now().Before(entry.ExpiresAt) {
		return false
	}

	if err := json.Unmarshal(entry.Payload, out); err != nil {
		slog.Warn("Cache payload unreadable", "key", key, "error", err)
		return false
	}

	return true
}

func (s *Service) store(key string, result any) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		slog.Warn("Cache payload marshal failed", "key", key, "error", err)
		return
	}

	if err := s.cache.Set(key, payload); err != nil {
		slog.Warn("Cache store failed", "key", key, "error", err)
	}
}
