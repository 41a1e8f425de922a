package response_models

const (
	EventSummary  = "summary"
	EventDayStart = "day_start"
	EventFragment = "fragment"
	EventDayDone  = "day_done"
	EventComplete = "complete"
	EventError    = "error"
)

// StreamMessage is one WebSocket frame. SSE uses Type as the event name and Payload as data.
type StreamMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type SummaryEvent struct {
	Conditions ConditionsSummary `json:"conditions"`
	Currency   CurrencyResponse  `json:"currency"`
}

type DayStartEvent struct {
	DayNumber int    `json:"day_number"`
	Date      string `json:"date"`
}

type FragmentEvent struct {
	DayNumber int    `json:"day_number"`
	Text      string `json:"text"`
}

type CompleteEvent struct {
	Visited   []string `json:"visited"`
	MapURL    string   `json:"map_url,omitempty"`
	MapNotice string   `json:"map_notice,omitempty"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}
