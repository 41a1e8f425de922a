package services

import (
	"fmt"
	"strings"
	"time"

	"tabiplan/pkg/utils"
)

// Leg is one origin→destination segment entered by the user.
type Leg struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FormState holds the editable itinerary form for one planning request.
type FormState struct {
	Legs []Leg
}

// NewFormState returns the default form with a single 東京→大阪 leg.
func NewFormState() *FormState {
	return &FormState{Legs: []Leg{{From: "東京", To: "大阪"}}}
}

func (f *FormState) AddLeg(leg Leg) {
	f.Legs = append(f.Legs, leg)
}

// UpdateLeg edits a leg in place.
func (f *FormState) UpdateLeg(i int, leg Leg) error {
	if i < 0 || i >= len(f.Legs) {
		return fmt.Errorf("%w: leg index %d out of range", utils.ErrInvalidInput, i)
	}
	f.Legs[i] = leg
	return nil
}

// RemoveLeg deletes the leg at i. The last remaining leg can't be removed.
func (f *FormState) RemoveLeg(i int) error {
	if i < 0 || i >= len(f.Legs) {
		return fmt.Errorf("%w: leg index %d out of range", utils.ErrInvalidInput, i)
	}
	if len(f.Legs) <= 1 {
		return fmt.Errorf("%w: at least one leg is required", utils.ErrInvalidInput)
	}
	f.Legs = append(f.Legs[:i], f.Legs[i+1:]...)
	return nil
}

// Route is the deduplicated, ordered city sequence derived from the legs.
type Route []string

func (r Route) Start() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

func (r Route) End() string {
	if len(r) == 0 {
		return ""
	}
	return r[len(r)-1]
}

func (r Route) String() string {
	return strings.Join(r, " → ")
}

// NormalizeRoute flattens legs into from/to order and drops later repeats of a city.
func NormalizeRoute(form *FormState) (Route, error) {
	if form == nil {
		return nil, utils.ErrInvalidRoute
	}

	var cities []string
	for _, leg := range form.Legs {
		if from := strings.TrimSpace(leg.From); from != "" {
			cities = append(cities, from)
		}
		if to := strings.TrimSpace(leg.To); to != "" {
			cities = append(cities, to)
		}
	}

	route := Route(dedupePreservingOrder(cities))
	if len(route) < 2 {
		return nil, fmt.Errorf("%w: got %d", utils.ErrInvalidRoute, len(route))
	}
	return route, nil
}

// MaxTripDays bounds a trip; each day costs one generation call.
const MaxTripDays = 31

// TotalDays is the inclusive calendar-day count of the trip.
func TotalDays(start, end time.Time) (int, error) {
	days := utils.CalendarDaysBetween(start, end) + 1
	if days <= 0 {
		return 0, fmt.Errorf("%w: %s to %s", utils.ErrInvalidDateRange, utils.FormatDate(start), utils.FormatDate(end))
	}
	if days > MaxTripDays {
		return 0, fmt.Errorf("%w: %d days exceeds the %d day limit", utils.ErrInvalidDateRange, days, MaxTripDays)
	}
	return days, nil
}

func dedupePreservingOrder(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
