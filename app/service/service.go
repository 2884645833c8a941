// Package service is the query layer: it whitelists parameters per
// endpoint, orchestrates the cache around feed runs, and applies ordering
// and pagination to list-shaped results.
package service

import (
	"strconv"

	"github.com/eventfeed/eventfeed/app/cache"
	"github.com/eventfeed/eventfeed/app/feed"
)

// Allowed parameter keys per endpoint. Anything else is dropped before the
// parameters reach the reader or the cache key.
var (
	eventsWhitelist     = []string{"orderby", "order", "limit", "offset", "country", "tickets", "categoryId", "cityId"}
	eventWhitelist      = []string{"id", "country", "tickets"}
	categoriesWhitelist = []string{"orderby", "order", "limit", "offset", "country", "tickets", "fields", "cityId"}
	categoryWhitelist   = []string{"id", "orderby", "order", "limit", "offset", "country", "tickets", "fields"}
	citiesWhitelist     = []string{"orderby", "order", "limit", "offset", "country", "tickets", "fields", "categoryId"}
	cityWhitelist       = []string{"id", "orderby", "order", "limit", "offset", "country", "tickets", "fields"}
	highlightsWhitelist = []string{"orderby", "order", "limit", "offset", "country", "tickets", "fields", "cityId"}
)

type Service struct {
	reader *feed.Reader
	cache  cache.Store // nil when caching is disabled
}

func New(reader *feed.Reader, store cache.Store) *Service {
	return &Service{
		reader: reader,
		cache:  store,
	}
}

// Events returns the filtered event list, ordered and paginated.
func (s *Service) Events(raw map[string]string) []feed.Event {
	params := validateParams(raw, eventsWhitelist)

	return resolveList(s, feed.OpEvents, params, func() []feed.Event {
		events := orderBy(s.reader.Events(params), params, eventSortValue)
		return paginate(events, params)
	})
}

// Event returns the first event matching the requested ID, or nil. A
// missing ID parameter is an absent result, not an error.
func (s *Service) Event(raw map[string]string) *feed.Event {
	params := validateParams(raw, eventWhitelist)
	if !params.Has("id") {
		return nil
	}

	return resolveOne(s, feed.OpEvent, params, func() *feed.Event {
		return s.reader.Event(params)
	})
}

// Categories returns category aggregates in first-seen order, ordered and
// paginated.
func (s *Service) Categories(raw map[string]string) []*feed.Group {
	params := validateParams(raw, categoriesWhitelist)

	return resolveList(s, feed.OpCategories, params, func() []*feed.Group {
		groups := orderBy(s.reader.Categories(params), params, groupSortValue)
		return paginate(groups, params)
	})
}

// Category returns the aggregate for one category ID, or nil.
func (s *Service) Category(raw map[string]string) *feed.Group {
	params := validateParams(raw, categoryWhitelist)
	if !params.Has("id") {
		return nil
	}

	return resolveOne(s, feed.OpCategory, params, func() *feed.Group {
		return s.reader.Category(params)
	})
}

// Cities returns city aggregates in first-seen order, ordered and
// paginated.
func (s *Service) Cities(raw map[string]string) []*feed.Group {
	params := validateParams(raw, citiesWhitelist)

	return resolveList(s, feed.OpCities, params, func() []*feed.Group {
		groups := orderBy(s.reader.Cities(params), params, groupSortValue)
		return paginate(groups, params)
	})
}

// City returns the aggregate for one city ID, or nil.
func (s *Service) City(raw map[string]string) *feed.Group {
	params := validateParams(raw, cityWhitelist)
	if !params.Has("id") {
		return nil
	}

	return resolveOne(s, feed.OpCity, params, func() *feed.Group {
		return s.reader.City(params)
	})
}

// Highlights returns per-category highlight records, ordered and paginated.
func (s *Service) Highlights(raw map[string]string) []*feed.Highlight {
	params := validateParams(raw, highlightsWhitelist)

	return resolveList(s, feed.OpHighlights, params, func() []*feed.Highlight {
		highlights := orderBy(s.reader.Highlights(params), params, highlightSortValue)
		return paginate(highlights, params)
	})
}

// validateParams keeps only whitelisted keys and drops limit/offset when
// they are not numeric.
func validateParams(raw map[string]string, allowed []string) feed.Params {
	params := make(feed.Params, len(allowed))
	for _, key := range allowed {
		if value, ok := raw[key]; ok {
			params[key] = value
		}
	}

	for _, key := range []string{"limit", "offset"} {
		if value, ok := params[key]; ok {
			if _, err := strconv.Atoi(value); err != nil {
				delete(params, key)
			}
		}
	}

	return params
}
