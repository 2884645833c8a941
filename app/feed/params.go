package feed

import "strings"

// Params holds the validated query parameters for one fetch. Validation
// (whitelisting, numeric checks) happens in the service layer; the reader
// and aggregators only read from it.
type Params map[string]string

func (p Params) Get(key string) string {
	return p[key]
}

func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Fields returns the comma-separated "fields" parameter as a list.
func (p Params) Fields() []string {
	raw, ok := p["fields"]
	if !ok || raw == "" {
		return nil
	}

	fields := strings.Split(raw, ",")
	for i, field := range fields {
		fields[i] = strings.TrimSpace(field)
	}
	return fields
}
