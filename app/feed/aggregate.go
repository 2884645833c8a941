package feed

import (
	"fmt"
	"slices"
)

// output carries the accumulated result of one feed run. Exactly one field
// is populated, matching the operation that produced it.
type output struct {
	events     []Event
	event      *Event
	groups     []*Group
	group      *Group
	highlights []*Highlight
}

// aggregator is one run's accumulation strategy. Implementations are
// created per run and never reused.
type aggregator interface {
	add(ev *Event)
	output() *output
}

func newAggregator(op Operation, params Params) aggregator {
	switch op {
	case OpEvents:
		return &eventList{params: params}
	case OpEvent:
		return &singleEvent{id: params.Get("id")}
	case OpCategories:
		return newGroupList(byCategory, params)
	case OpCategory:
		return newSingleGroup(byCategory, params)
	case OpCities:
		return newGroupList(byCity, params)
	case OpCity:
		return newSingleGroup(byCity, params)
	case OpHighlights:
		return newHighlightList(params)
	default:
		panic(fmt.Sprintf("feed: unknown operation %d", int(op)))
	}
}

// eventList appends every surviving record, optionally narrowed by exact
// categoryId/cityId matches.
type eventList struct {
	params Params
	events []Event
}

func (a *eventList) add(ev *Event) {
	if id, ok := a.params["categoryId"]; ok && id != ev.CategoryID {
		return
	}
	if id, ok := a.params["cityId"]; ok && id != ev.CityID {
		return
	}
	a.events = append(a.events, *ev)
}

func (a *eventList) output() *output {
	return &output{events: a.events}
}

// singleEvent keeps the first record matching the requested ID; later
// matches are ignored.
type singleEvent struct {
	id    string
	event *Event
}

func (a *singleEvent) add(ev *Event) {
	if a.event != nil || ev.ID != a.id {
		return
	}
	match := *ev
	a.event = &match
}

func (a *singleEvent) output() *output {
	return &output{event: a.event}
}

// groupKeyer selects whether aggregates are keyed by category or by
// corrected city name.
type groupKeyer int

const (
	byCategory groupKeyer = iota
	byCity
)

func (k groupKeyer) key(ev *Event) (name, id string) {
	if k == byCity {
		return ev.City, ev.CityID
	}
	return ev.Category, ev.CategoryID
}

// groupList builds aggregates in first-seen key order. The position of a
// group in the output is fixed by the first record carrying its key, a
// property of the single forward pass.
type groupList struct {
	keyer      groupKeyer
	params     Params
	wantNext   bool
	wantEvents bool
	index      map[string]*Group
	groups     []*Group
}

func newGroupList(keyer groupKeyer, params Params) *groupList {
	fields := params.Fields()
	return &groupList{
		keyer:      keyer,
		params:     params,
		wantNext:   slices.Contains(fields, "next_event"),
		wantEvents: slices.Contains(fields, "events"),
		index:      make(map[string]*Group),
	}
}

func (a *groupList) add(ev *Event) {
	// category listings narrow by city and city listings by category
	if a.keyer == byCategory {
		if id, ok := a.params["cityId"]; ok && id != ev.CityID {
			return
		}
	} else {
		if id, ok := a.params["categoryId"]; ok && id != ev.CategoryID {
			return
		}
	}

	name, id := a.keyer.key(ev)

	g, ok := a.index[name]
	if ok {
		g.Count++
		if ev.Price < g.MinPrice {
			g.MinPrice = ev.Price
		}
	} else {
		g = &Group{Name: name, ID: id, Count: 1, MinPrice: ev.Price}
		a.index[name] = g
		a.groups = append(a.groups, g)
	}

	attachFields(g, ev, a.wantNext, a.wantEvents)
}

func (a *groupList) output() *output {
	return &output{groups: a.groups}
}

// singleGroup builds one aggregate scoped to the requested category or city
// ID.
type singleGroup struct {
	keyer      groupKeyer
	id         string
	wantNext   bool
	wantEvents bool
	group      *Group
}

func newSingleGroup(keyer groupKeyer, params Params) *singleGroup {
	fields := params.Fields()
	return &singleGroup{
		keyer:      keyer,
		id:         params.Get("id"),
		wantNext:   slices.Contains(fields, "next_event"),
		wantEvents: slices.Contains(fields, "events"),
	}
}

func (a *singleGroup) add(ev *Event) {
	name, id := a.keyer.key(ev)
	if id != a.id {
		return
	}

	if a.group == nil {
		a.group = &Group{Name: name, ID: id, Count: 1, MinPrice: ev.Price}
		if a.keyer == byCategory {
			a.group.Image = ev.Image
		}
	} else {
		a.group.Count++
		if ev.Price < a.group.MinPrice {
			a.group.MinPrice = ev.Price
		}
	}

	attachFields(a.group, ev, a.wantNext, a.wantEvents)
}

func (a *singleGroup) output() *output {
	return &output{group: a.group}
}

// attachFields applies the "fields" toggles to an aggregate. A record that
// becomes the next_event is not also appended to the member list.
func attachFields(g *Group, ev *Event, wantNext, wantEvents bool) {
	if wantNext && g.NextEvent == nil {
		next := *ev
		g.NextEvent = &next
		return
	}
	if wantEvents {
		g.Events = append(g.Events, *ev)
	}
}
