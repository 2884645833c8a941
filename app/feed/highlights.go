package feed

import "strings"

// customImageMinLen is the admission heuristic for highlights: generic
// placeholder images have short filenames, curated ones do not.
const customImageMinLen = 7

// highlightList keeps the earliest custom-image event per category. The
// seeding record is never replaced; only its minimum price keeps updating.
type highlightList struct {
	params     Params
	index      map[string]*Highlight
	highlights []*Highlight
}

func newHighlightList(params Params) *highlightList {
	return &highlightList{
		params: params,
		index:  make(map[string]*Highlight),
	}
}

func (a *highlightList) add(ev *Event) {
	if id, ok := a.params["cityId"]; ok && id != ev.CityID {
		return
	}

	if !hasCustomImage(ev.Image) {
		return
	}

	h, ok := a.index[ev.Category]
	if !ok {
		h = &Highlight{Event: *ev, MinPrice: ev.Price}
		a.index[ev.Category] = h
		a.highlights = append(a.highlights, h)
		return
	}

	// a zero minimum is a placeholder: the first nonzero price takes over,
	// after that only strictly smaller nonzero prices win
	if h.MinPrice == 0 && ev.Price != 0 {
		h.MinPrice = ev.Price
	}
	if ev.Price < h.MinPrice && ev.Price != 0 {
		h.MinPrice = ev.Price
	}
}

func (a *highlightList) output() *output {
	return &output{highlights: a.highlights}
}

func hasCustomImage(image string) bool {
	segments := strings.Split(image, "/")
	filename := segments[len(segments)-1]
	return len(filename) >= customImageMinLen
}
