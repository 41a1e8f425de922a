package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tabiplan/pkg/utils"
)

// PlaceMarker is the literal label the model must put before the JSON array of place names.
const PlaceMarker = "MAP_SPOTS:"

// MaxMapPlaces caps how many visited places go into the map link.
const MaxMapPlaces = 8

type ExtractionStatus string

const (
	ExtractionOK             ExtractionStatus = "ok"
	ExtractionMarkerNotFound ExtractionStatus = "marker_not_found"
	ExtractionParseFailure   ExtractionStatus = "parse_failure"
)

// Extraction is the outcome of scanning one day's text for the place marker.
// A non-ok status is a degraded result, never a failure of the day.
type Extraction struct {
	Status ExtractionStatus `json:"status"`
	Reason string           `json:"reason,omitempty"`
	Places []string         `json:"places"`
}

func (e Extraction) Err() error {
	switch e.Status {
	case ExtractionMarkerNotFound:
		return utils.ErrMarkerNotFound
	case ExtractionParseFailure:
		return fmt.Errorf("%w: %s", utils.ErrMarkerParseFailure, e.Reason)
	default:
		return nil
	}
}

// ExtractPlaces parses the JSON array following the last marker in text.
// It never panics and never returns an error; deviations yield zero places.
func ExtractPlaces(text string) Extraction {
	idx := strings.LastIndex(text, PlaceMarker)
	if idx < 0 {
		return Extraction{Status: ExtractionMarkerNotFound, Reason: "marker line missing", Places: []string{}}
	}

	tail := utils.StripCodeFences(text[idx+len(PlaceMarker):])
	tail = strings.TrimSpace(tail)
	if !strings.HasPrefix(tail, "[") {
		return Extraction{Status: ExtractionParseFailure, Reason: "no JSON array after marker", Places: []string{}}
	}

	end := utils.FindMatchingBracket(tail, 0)
	if end < 0 {
		return Extraction{Status: ExtractionParseFailure, Reason: "unterminated JSON array", Places: []string{}}
	}

	var raw []string
	if err := json.Unmarshal([]byte(tail[:end+1]), &raw); err != nil {
		return Extraction{Status: ExtractionParseFailure, Reason: err.Error(), Places: []string{}}
	}

	places := make([]string, 0, len(raw))
	for _, name := range raw {
		if name = strings.TrimSpace(name); name != "" {
			places = append(places, name)
		}
	}
	return Extraction{Status: ExtractionOK, Places: places}
}

// StripMarker returns the narrative part of a day's text, without the marker block.
func StripMarker(text string) string {
	idx := strings.LastIndex(text, PlaceMarker)
	if idx < 0 {
		return strings.TrimSpace(text)
	}
	narrative := strings.TrimSpace(text[:idx])
	// drop a fence opener such as ``` or ```json left above the marker
	if nl := strings.LastIndex(narrative, "\n"); strings.HasPrefix(narrative[nl+1:], "```") {
		narrative = narrative[:nl+1]
	}
	return strings.TrimSpace(strings.TrimSuffix(narrative, "```"))
}

// VisitedPlaces is an insertion-ordered set of place names. It only grows.
type VisitedPlaces struct {
	names []string
	seen  map[string]bool
}

func NewVisitedPlaces() *VisitedPlaces {
	return &VisitedPlaces{seen: make(map[string]bool)}
}

func (v *VisitedPlaces) Contains(name string) bool {
	return v.seen[name]
}

// Add appends name unless it is already present. Reports whether it was added.
func (v *VisitedPlaces) Add(name string) bool {
	if v.seen[name] {
		return false
	}
	v.seen[name] = true
	v.names = append(v.names, name)
	return true
}

func (v *VisitedPlaces) Len() int { return len(v.names) }

// Names returns a copy of the places in insertion order.
func (v *VisitedPlaces) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// FoldPlaces adds the names not yet visited and returns those newly added, in order.
// Matching is case-sensitive and exact. When excludeOrigin is set, origin is skipped.
func FoldPlaces(visited *VisitedPlaces, names []string, origin string, excludeOrigin bool) []string {
	added := make([]string, 0, len(names))
	for _, name := range names {
		if excludeOrigin && name == origin {
			continue
		}
		if visited.Add(name) {
			added = append(added, name)
		}
	}
	return added
}

// BuildMapLink joins at most MaxMapPlaces names into a directions URL under baseURL.
func BuildMapLink(baseURL string, places []string) (string, error) {
	if len(places) == 0 {
		return "", utils.ErrNoPlacesExtracted
	}
	if len(places) > MaxMapPlaces {
		places = places[:MaxMapPlaces]
	}

	segments := make([]string, 0, len(places))
	for _, p := range places {
		segments = append(segments, escapeSegment(p))
	}
	return strings.TrimRight(baseURL, "/") + "/dir/" + strings.Join(segments, "/"), nil
}

// escapeSegment percent-encodes everything outside the unreserved set, spaces as %20.
func escapeSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// IsNoPlaces reports whether err means the map link could not be built for lack of places.
func IsNoPlaces(err error) bool {
	return errors.Is(err, utils.ErrNoPlacesExtracted)
}
