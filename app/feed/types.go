package feed

// Event is one feed record after normalization and identifier derivation.
// The identifiers are FNV-1a fingerprints and are pure functions of their
// inputs: the same category, city or name+date always produces the same ID
// within and across runs. Collisions are accepted, not defended against.
type Event struct {
	Price       float64 `json:"price"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	URL         string  `json:"url"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	Country     string  `json:"country"`
	Stock       string  `json:"stock"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	Date        string  `json:"date"`
	CategoryID  string  `json:"categoryId"`
	CityID      string  `json:"cityId"`
	ID          string  `json:"id"`
}

// Group accumulates events sharing a category or city. Count only grows and
// MinPrice only shrinks as records stream in; NextEvent is fixed at first
// sight and never replaced. Image is only populated on single-entity
// category lookups.
type Group struct {
	Name      string  `json:"name"`
	ID        string  `json:"id"`
	Image     string  `json:"image,omitempty"`
	Count     int     `json:"count"`
	MinPrice  float64 `json:"minPrice"`
	NextEvent *Event  `json:"next_event,omitempty"`
	Events    []Event `json:"events,omitempty"`
}

// Highlight is the earliest event per category that carries a custom image,
// plus a running minimum price. Unlike Group, the minimum ignores zero
// prices once a nonzero price has been seen.
type Highlight struct {
	Event
	MinPrice float64 `json:"minPrice"`
}
