package services

import (
	"strings"
	"sync"
)

const (
	ModePlane      = "飛行機"
	ModeShinkansen = "新幹線"
	ModeBus        = "バス"
	ModeCar        = "車"
)

const genericTravelTime = "数時間程度（目安）"

type TravelTimeEstimate struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Mode     string `json:"mode,omitempty"`
	Duration string `json:"duration"`
	Exact    bool   `json:"exact"`
}

// TravelTimeEntry is one row of the static table.
type TravelTimeEntry struct {
	From     string `toml:"from" csv:"from"`
	To       string `toml:"to" csv:"to"`
	Mode     string `toml:"mode" csv:"mode"`
	Duration string `toml:"duration" csv:"duration"`
}

// --------- table keyed by (mode, A, B) ---------

type pairKey struct {
	Mode string
	A    string
	B    string
}

type TravelTimeServiceInterface interface {
	Estimate(start, end string, modes []string) TravelTimeEstimate
	Len() int
}

type TravelTimeTable struct {
	mu    sync.RWMutex
	store map[pairKey]string
}

// NewTravelTimeTable returns a table holding the built-in entries plus extra,
// where extra overrides built-ins for the same pair and mode.
func NewTravelTimeTable(extra ...TravelTimeEntry) *TravelTimeTable {
	t := &TravelTimeTable{store: make(map[pairKey]string)}
	for _, e := range builtinTravelTimes {
		t.set(e)
	}
	for _, e := range extra {
		t.set(e)
	}
	return t
}

// set stores e for both directions.
func (t *TravelTimeTable) set(e TravelTimeEntry) {
	from, to, mode := strings.TrimSpace(e.From), strings.TrimSpace(e.To), strings.TrimSpace(e.Mode)
	dur := strings.TrimSpace(e.Duration)
	if from == "" || to == "" || mode == "" || dur == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store[pairKey{Mode: mode, A: from, B: to}] = dur
	t.store[pairKey{Mode: mode, A: to, B: from}] = dur
}

func (t *TravelTimeTable) lookup(k pairKey) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.store[k]
	return v, ok
}

func (t *TravelTimeTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.store)
}

// Estimate tries each mode in the caller's order and returns the first table hit.
// On a miss it falls back to a generic estimate naming the first mode, or an
// unlabeled one when no mode is selected.
func (t *TravelTimeTable) Estimate(start, end string, modes []string) TravelTimeEstimate {
	est := TravelTimeEstimate{Start: start, End: end}

	for _, mode := range modes {
		if d, ok := t.lookup(pairKey{Mode: mode, A: start, B: end}); ok {
			est.Mode = mode
			est.Duration = d
			est.Exact = true
			return est
		}
	}

	if len(modes) > 0 {
		est.Mode = modes[0]
		est.Duration = modes[0] + "で" + genericTravelTime
		return est
	}
	est.Duration = genericTravelTime
	return est
}

var builtinTravelTimes = []TravelTimeEntry{
	{From: "東京", To: "大阪", Mode: ModeShinkansen, Duration: "約2時間30分"},
	{From: "東京", To: "大阪", Mode: ModePlane, Duration: "約1時間10分"},
	{From: "東京", To: "大阪", Mode: ModeBus, Duration: "約8時間"},
	{From: "東京", To: "大阪", Mode: ModeCar, Duration: "約6時間"},
	{From: "東京", To: "京都", Mode: ModeShinkansen, Duration: "約2時間15分"},
	{From: "東京", To: "京都", Mode: ModeBus, Duration: "約7時間30分"},
	{From: "東京", To: "京都", Mode: ModeCar, Duration: "約5時間30分"},
	{From: "東京", To: "名古屋", Mode: ModeShinkansen, Duration: "約1時間40分"},
	{From: "東京", To: "名古屋", Mode: ModeBus, Duration: "約5時間30分"},
	{From: "東京", To: "名古屋", Mode: ModeCar, Duration: "約4時間"},
	{From: "東京", To: "福岡", Mode: ModePlane, Duration: "約2時間"},
	{From: "東京", To: "福岡", Mode: ModeShinkansen, Duration: "約5時間"},
	{From: "東京", To: "札幌", Mode: ModePlane, Duration: "約1時間40分"},
	{From: "東京", To: "那覇", Mode: ModePlane, Duration: "約2時間40分"},
	{From: "大阪", To: "京都", Mode: ModeCar, Duration: "約1時間"},
	{From: "大阪", To: "福岡", Mode: ModeShinkansen, Duration: "約2時間30分"},
	{From: "大阪", To: "福岡", Mode: ModePlane, Duration: "約1時間15分"},
}
