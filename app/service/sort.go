package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/eventfeed/eventfeed/app/feed"
)

// sortValue is one comparable field value: numeric fields compare as
// numbers, everything else as strings.
type sortValue struct {
	str   string
	num   float64
	isNum bool
}

func numValue(n float64) sortValue {
	return sortValue{num: n, isNum: true}
}

func strValue(s string) sortValue {
	return sortValue{str: s}
}

// orderBy sorts items by the comma-separated "orderby" fields. The sort is
// stable, so records equal on every key keep their first-seen order, and
// "order=desc" reverses direction across all keys uniformly.
func orderBy[T any](items []T, params feed.Params, value func(T, string) sortValue) []T {
	raw := params.Get("orderby")
	if raw == "" {
		return items
	}

	fields := strings.Split(raw, ",")
	for i, field := range fields {
		fields[i] = strings.TrimSpace(field)
	}
	desc := params.Get("order") == "desc"

	sort.SliceStable(items, func(i, j int) bool {
		for _, field := range fields {
			a, b := value(items[i], field), value(items[j], field)

			var cmp int
			if a.isNum && b.isNum {
				switch {
				case a.num < b.num:
					cmp = -1
				case a.num > b.num:
					cmp = 1
				}
			} else {
				cmp = strings.Compare(a.str, b.str)
			}

			if cmp == 0 {
				continue
			}
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})

	return items
}

// paginate returns the offset/limit window of items. Out-of-range values
// are clamped to the slice bounds; a negative limit yields nothing.
func paginate[T any](items []T, params feed.Params) []T {
	if !params.Has("limit") && !params.Has("offset") {
		return items
	}

	offset := 0
	if value, ok := params["offset"]; ok {
		offset, _ = strconv.Atoi(value)
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(items) {
		offset = len(items)
	}

	end := len(items)
	if value, ok := params["limit"]; ok {
		limit, _ := strconv.Atoi(value)
		if limit < 0 {
			limit = 0
		}
		if offset+limit < end {
			end = offset + limit
		}
	}

	return items[offset:end]
}

func eventSortValue(ev feed.Event, field string) sortValue {
	switch field {
	case "price":
		return numValue(ev.Price)
	case "name":
		return strValue(ev.Name)
	case "category":
		return strValue(ev.Category)
	case "country":
		return strValue(ev.Country)
	case "city":
		return strValue(ev.City)
	case "date":
		return strValue(ev.Date)
	case "id":
		return strValue(ev.ID)
	default:
		return strValue("")
	}
}

func groupSortValue(g *feed.Group, field string) sortValue {
	switch field {
	case "count":
		return numValue(float64(g.Count))
	case "minPrice":
		return numValue(g.MinPrice)
	case "name":
		return strValue(g.Name)
	case "id":
		return strValue(g.ID)
	default:
		return strValue("")
	}
}

func highlightSortValue(h *feed.Highlight, field string) sortValue {
	switch field {
	case "minPrice":
		return numValue(h.MinPrice)
	default:
		return eventSortValue(h.Event, field)
	}
}
