package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Reader streams the events feed file. It holds no per-run state: every run
// opens the file fresh, walks it node by node and accumulates into a new
// aggregator, so results from one call can never leak into the next.
type Reader struct {
	path string
}

// NewReader validates the feed file path. The file itself may be missing or
// unreadable at this point (runs degrade to empty results), but a path that
// is not an XML file is a configuration error.
func NewReader(path string) (*Reader, error) {
	if !strings.Contains(filepath.Base(path), ".xml") {
		return nil, fmt.Errorf("feed file must be an XML file, got %q", path)
	}
	return &Reader{path: path}, nil
}

func (r *Reader) Path() string {
	return r.path
}

// ModTime returns the feed file's last-modified time, or the zero time when
// the file cannot be stat'ed. Used by the cache layer for staleness checks.
func (r *Reader) ModTime() time.Time {
	info, err := os.Stat(r.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (r *Reader) Events(params Params) []Event {
	return r.run(OpEvents, params).events
}

func (r *Reader) Event(params Params) *Event {
	return r.run(OpEvent, params).event
}

func (r *Reader) Categories(params Params) []*Group {
	return r.run(OpCategories, params).groups
}

func (r *Reader) Category(params Params) *Group {
	return r.run(OpCategory, params).group
}

func (r *Reader) Cities(params Params) []*Group {
	return r.run(OpCities, params).groups
}

func (r *Reader) City(params Params) *Group {
	return r.run(OpCity, params).group
}

func (r *Reader) Highlights(params Params) []*Highlight {
	return r.run(OpHighlights, params).highlights
}

// run makes one forward pass over the feed: decode a product node,
// normalize and filter it, hand the survivor to the operation's aggregator.
// An unopenable or unparsable file yields an empty result, never an error to
// the caller.
func (r *Reader) run(op Operation, params Params) *output {
	agg := newAggregator(op, params)

	f, err := os.Open(r.path)
	if err != nil {
		slog.Warn("Feed file not readable", "path", r.path, "error", err)
		return &output{}
	}
	defer f.Close()

	decoder := xml.NewDecoder(f)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Feed parse failed, discarding partial results", "path", r.path, "error", err)
			return &output{}
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "product" {
			continue
		}

		var raw rawProduct
		if err := decoder.DecodeElement(&raw, &start); err != nil {
			slog.Warn("Feed parse failed, discarding partial results", "path", r.path, "error", err)
			return &output{}
		}

		ev, ok := normalize(&raw, params)
		if !ok {
			continue
		}

		agg.add(ev)
	}

	return agg.output()
}
