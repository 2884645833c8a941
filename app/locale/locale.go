// Package locale handles the Brazilian-Portuguese quirks of the feed:
// city names arrive without diacritics and are corrected against a fixed
// lookup table, and country matching is done on a normalized form so that
// "Brásil", "brasil" and "Brasil" all compare equal.
package locale

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed cities.yml
var citiesYAML []byte

type fixupTable struct {
	Cities map[string]string `yaml:"cities"`
}

var cityFixups map[string]string

func init() {
	var table fixupTable
	if err := yaml.Unmarshal(citiesYAML, &table); err != nil {
		panic(fmt.Sprintf("locale: failed to parse embedded cities.yml: %v", err))
	}
	cityFixups = table.Cities
}

// FixCity returns the diacritic-corrected spelling of a city name.
// Names not present in the lookup table pass through unchanged.
func FixCity(name string) string {
	if fixed, ok := cityFixups[name]; ok {
		return fixed
	}
	return name
}

// Normalize lowercases s, strips combining marks and replaces spaces with
// dashes. Used for the fuzzy country match.
func Normalize(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}

	return strings.ReplaceAll(strings.ToLower(stripped), " ", "-")
}
