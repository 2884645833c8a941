package feed

import "fmt"

// Operation selects which aggregation strategy a feed run builds. The set is
// closed: dispatch is an exhaustive switch, and an out-of-range value is a
// programming error that panics rather than degrading silently.
type Operation int

const (
	OpEvents Operation = iota
	OpEvent
	OpCategories
	OpCategory
	OpCities
	OpCity
	OpHighlights
)

func (op Operation) String() string {
	switch op {
	case OpEvents:
		return "events"
	case OpEvent:
		return "event"
	case OpCategories:
		return "categories"
	case OpCategory:
		return "category"
	case OpCities:
		return "cities"
	case OpCity:
		return "city"
	case OpHighlights:
		return "highlights"
	default:
		panic(fmt.Sprintf("feed: unknown operation %d", int(op)))
	}
}
