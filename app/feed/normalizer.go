package feed

import (
	"strconv"
	"strings"

	"github.com/eventfeed/eventfeed/app/fingerprint"
	"github.com/eventfeed/eventfeed/app/locale"
)

// defaultCountry is the exact raw country text kept when no country
// parameter is supplied. The default is a literal match while an explicit
// country parameter matches fuzzily; the asymmetry is a documented
// default-locale policy, not an accident.
const defaultCountry = "Brasil"

// rawProduct mirrors one <product> node as authored in the feed. All fields
// arrive as text; the feed spells the stock element with a capital S.
type rawProduct struct {
	Price       string `xml:"price"`
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Image       string `xml:"image"`
	URL         string `xml:"url"`
	Currency    string `xml:"currency"`
	Category    string `xml:"category"`
	Country     string `xml:"country"`
	Stock       string `xml:"Stock"`
	City        string `xml:"city"`
	Address     string `xml:"address"`
	Date        string `xml:"date"`
}

// normalize converts a raw product node into an enriched Event, or reports
// false when the record is filtered out or malformed.
func normalize(raw *rawProduct, params Params) (*Event, bool) {
	// name and date feed the event ID; a node missing either is malformed
	// and skipped without aborting the stream
	if raw.Name == "" || raw.Date == "" {
		return nil, false
	}

	price, _ := strconv.ParseFloat(strings.TrimSpace(raw.Price), 64)

	if !matchesCountry(raw.Country, params) {
		return nil, false
	}

	if params.Get("tickets") == "1" && price == 0 {
		return nil, false
	}

	city := locale.FixCity(raw.City)

	ev := &Event{
		Price:       price,
		Name:        raw.Name,
		Description: raw.Description,
		Image:       raw.Image,
		URL:         raw.URL,
		Currency:    raw.Currency,
		Category:    raw.Category,
		Country:     raw.Country,
		Stock:       raw.Stock,
		City:        city,
		Address:     raw.Address,
		Date:        raw.Date,
		CategoryID:  fingerprint.Hash(raw.Category),
		CityID:      fingerprint.Hash(city),
		ID:          fingerprint.Hash(raw.Name + raw.Date),
	}

	return ev, true
}

func matchesCountry(country string, params Params) bool {
	if requested, ok := params["country"]; ok {
		return strings.Contains(locale.Normalize(country), locale.Normalize(requested))
	}
	return country == defaultCountry
}
