package controllers

import (
	"time"

	"tabiplan/internal/models/response_models"
	"tabiplan/internal/services"
	"tabiplan/pkg/utils"
)

// eventObserver turns plan progress into stream messages for the SSE and WebSocket transports.
type eventObserver struct {
	emit    func(event string, payload interface{})
	started bool
}

func (o *eventObserver) OnStart(s services.PlanSummary) {
	o.started = true
	o.emit(response_models.EventSummary, response_models.SummaryEvent{
		Conditions: s.Response(),
		Currency:   services.CurrencyResponse(s.Currency),
	})
}

func (o *eventObserver) OnDayStart(dayIndex int, date time.Time) {
	o.emit(response_models.EventDayStart, response_models.DayStartEvent{
		DayNumber: dayIndex + 1,
		Date:      utils.FormatDate(date),
	})
}

func (o *eventObserver) OnFragment(dayIndex int, fragment string) {
	o.emit(response_models.EventFragment, response_models.FragmentEvent{
		DayNumber: dayIndex + 1,
		Text:      fragment,
	})
}

func (o *eventObserver) OnDayDone(day services.DayPlan) {
	o.emit(response_models.EventDayDone, day.Response())
}

func (o *eventObserver) complete(res *services.ItineraryResult) {
	o.emit(response_models.EventComplete, response_models.CompleteEvent{
		Visited:   append([]string{}, res.Visited...),
		MapURL:    res.MapURL,
		MapNotice: res.MapNotice,
	})
}

func (o *eventObserver) fail(message string) {
	o.emit(response_models.EventError, response_models.ErrorEvent{Message: message})
}
