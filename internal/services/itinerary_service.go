package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"go.uber.org/zap"
	"tabiplan/internal/models/request_models"
	"tabiplan/internal/models/response_models"
	"tabiplan/pkg/utils"
)

const noPlacesNotice = "地図に表示できる場所が抽出されませんでした"

// PlanSummary is what is known about a trip before the first day is generated.
type PlanSummary struct {
	Route      Route
	Params     TripParameters
	Currency   ConversionResult
	TravelTime TravelTimeEstimate
}

// DayPlan is one generated day. It is not modified after OnDayDone.
type DayPlan struct {
	DayIndex   int
	DayNumber  int
	Date       time.Time
	Text       string
	Narrative  string
	Places     []string
	Extraction Extraction
	Error      string
}

type ItineraryResult struct {
	Summary   PlanSummary
	Days      []DayPlan
	Visited   []string
	MapURL    string
	MapNotice string
}

// PlanObserver receives progress while a plan is generated. Calls happen on the
// goroutine running Plan, in order: OnStart, then per day OnDayStart, OnFragment*, OnDayDone.
type PlanObserver interface {
	OnStart(summary PlanSummary)
	OnDayStart(dayIndex int, date time.Time)
	OnFragment(dayIndex int, fragment string)
	OnDayDone(day DayPlan)
}

type NopObserver struct{}

func (NopObserver) OnStart(PlanSummary) {}
func (NopObserver) OnDayStart(int, time.Time) {}
func (NopObserver) OnFragment(int, string) {}
func (NopObserver) OnDayDone(DayPlan) {}

type ItineraryServiceInterface interface {
	Plan(ctx context.Context, req request_models.ItineraryRequest, observer PlanObserver) (*ItineraryResult, error)
	Validate(req request_models.ItineraryRequest) (*response_models.ValidationResponse, error)
}

type ItineraryConfig struct {
	Generation    utils.GenerationOptions
	MapsBaseURL   string
	ExcludeOrigin bool
}

type ItineraryService struct {
	generator  utils.TextGeneratorInterface
	currency   CurrencyServiceInterface
	travelTime TravelTimeServiceInterface
	cfg        ItineraryConfig
	logger     *zap.Logger
}

func NewItineraryService(
	generator utils.TextGeneratorInterface,
	currency CurrencyServiceInterface,
	travelTime TravelTimeServiceInterface,
	cfg ItineraryConfig,
	logger *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		generator:  generator,
		currency:   currency,
		travelTime: travelTime,
		cfg:        cfg,
		logger:     logger.With(zap.String("component", "itinerary")),
	}
}

func (s *ItineraryService) Validate(req request_models.ItineraryRequest) (*response_models.ValidationResponse, error) {
	route, params, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	tt := s.travelTime.Estimate(route.Start(), route.End(), params.TransportModes)
	return &response_models.ValidationResponse{
		Route:      route,
		TotalDays:  params.TotalDays,
		StartDate:  utils.FormatDate(params.StartDate),
		EndDate:    utils.FormatDate(params.EndDate),
		TravelTime: TravelTimeResponse(tt),
	}, nil
}

// Plan generates the whole trip day by day. Invalid input fails before any
// external call. A failing day is recorded on its DayPlan and the loop moves on;
// only context cancellation aborts the run.
func (s *ItineraryService) Plan(ctx context.Context, req request_models.ItineraryRequest, observer PlanObserver) (*ItineraryResult, error) {
	if observer == nil {
		observer = NopObserver{}
	}

	route, params, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	conv, err := s.currency.Convert(ctx, params.BudgetJPY, params.DisplayCurrency)
	if err != nil {
		return nil, err
	}

	summary := PlanSummary{
		Route:      route,
		Params:     params,
		Currency:   conv,
		TravelTime: s.travelTime.Estimate(route.Start(), route.End(), params.TransportModes),
	}
	observer.OnStart(summary)

	log := s.logger.With(zap.String("route", route.String()), zap.Int("total_days", params.TotalDays))
	log.Info("plan started", zap.String("provider", s.generator.Provider()))

	visited := NewVisitedPlaces()
	days := make([]DayPlan, 0, params.TotalDays)
	for i := 0; i < params.TotalDays; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		day, err := s.generateDay(ctx, i, summary, visited, observer)
		if err != nil {
			return nil, err
		}
		if day.Error != "" {
			log.Warn("day generation failed", zap.Int("day", day.DayNumber), zap.String("error", day.Error))
		} else if day.Extraction.Status != ExtractionOK {
			log.Info("no places extracted for day",
				zap.Int("day", day.DayNumber),
				zap.String("status", string(day.Extraction.Status)),
				zap.Error(day.Extraction.Err()))
		}

		days = append(days, day)
		observer.OnDayDone(day)
	}

	result := &ItineraryResult{
		Summary: summary,
		Days:    days,
		Visited: visited.Names(),
	}
	mapURL, err := BuildMapLink(s.cfg.MapsBaseURL, result.Visited)
	switch {
	case err == nil:
		result.MapURL = mapURL
	case IsNoPlaces(err):
		result.MapNotice = noPlacesNotice
	default:
		return nil, err
	}

	log.Info("plan finished", zap.Int("visited", len(result.Visited)))
	return result, nil
}

func (s *ItineraryService) generateDay(ctx context.Context, i int, summary PlanSummary, visited *VisitedPlaces, observer PlanObserver) (DayPlan, error) {
	params := summary.Params
	day := DayPlan{
		DayIndex:  i,
		DayNumber: i + 1,
		Date:      params.DayDate(i),
		Places:    []string{},
	}
	observer.OnDayStart(i, day.Date)

	prompt, err := BuildDayPrompt(DayPromptInput{
		DayIndex:   i,
		Route:      summary.Route,
		Params:     params,
		Budget:     summary.Currency.Display(),
		TravelTime: summary.TravelTime,
		Visited:    visited.Names(),
	})
	if err != nil {
		return day, err
	}

	seq := s.generator.Generate(ctx, prompt, s.cfg.Generation)
	text, genErr := utils.Collect(forwardFragments(seq, func(f string) { observer.OnFragment(i, f) }))
	day.Text = text

	if genErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return day, ctxErr
		}
		day.Error = fmt.Errorf("%w: day %d: %v", utils.ErrGenerationFailure, day.DayNumber, genErr).Error()
		day.Narrative = StripMarker(day.Text)
		day.Extraction = Extraction{Status: ExtractionMarkerNotFound, Reason: "generation failed", Places: []string{}}
		return day, nil
	}

	day.Narrative = StripMarker(day.Text)
	day.Extraction = ExtractPlaces(day.Text)
	day.Places = FoldPlaces(visited, day.Extraction.Places, summary.Route.Start(), params.ExcludeOrigin)
	return day, nil
}

// forwardFragments hands each fragment of seq to fn before passing it on.
func forwardFragments(seq iter.Seq2[string, error], fn func(string)) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for fragment, err := range seq {
			if err == nil {
				fn(fragment)
			}
			if !yield(fragment, err) {
				return
			}
		}
	}
}

func (s *ItineraryService) prepare(req request_models.ItineraryRequest) (Route, TripParameters, error) {
	form := &FormState{Legs: make([]Leg, 0, len(req.Legs))}
	for _, l := range req.Legs {
		form.AddLeg(Leg{From: l.From, To: l.To})
	}
	route, err := NormalizeRoute(form)
	if err != nil {
		return nil, TripParameters{}, err
	}

	start, err := utils.ParseDateJST(req.StartDate)
	if err != nil {
		return nil, TripParameters{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", utils.ErrInvalidInput)
	}
	end, err := utils.ParseDateJST(req.EndDate)
	if err != nil {
		return nil, TripParameters{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", utils.ErrInvalidInput)
	}

	currency, err := NormalizeCurrency(req.Currency)
	if err != nil {
		return nil, TripParameters{}, err
	}

	excludeOrigin := s.cfg.ExcludeOrigin
	if req.ExcludeOrigin != nil {
		excludeOrigin = *req.ExcludeOrigin
	}

	params, err := NewTripParameters(start, end, req.Age, req.BudgetJPY,
		BudgetStance(req.BudgetStance), Weather(req.Weather), cleanModes(req.Transport), currency, excludeOrigin)
	if err != nil {
		return nil, TripParameters{}, err
	}
	return route, params, nil
}

func cleanModes(modes []string) []string {
	out := make([]string, 0, len(modes))
	for _, m := range modes {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// IsValidationError reports whether err was caused by the request rather than a dependency.
func IsValidationError(err error) bool {
	return errors.Is(err, utils.ErrInvalidInput) ||
		errors.Is(err, utils.ErrInvalidRoute) ||
		errors.Is(err, utils.ErrInvalidDateRange) ||
		errors.Is(err, utils.ErrUnsupportedCurrency)
}

func TravelTimeResponse(tt TravelTimeEstimate) response_models.TravelTimeResponse {
	return response_models.TravelTimeResponse{
		From:     tt.Start,
		To:       tt.End,
		Mode:     tt.Mode,
		Duration: tt.Duration,
		Exact:    tt.Exact,
	}
}

func CurrencyResponse(r ConversionResult) response_models.CurrencyResponse {
	return response_models.CurrencyResponse{
		From:      r.From,
		To:        r.To,
		Available: r.Available,
		Rate:      r.Rate,
		AmountJPY: r.AmountJPY,
		Converted: r.Converted,
		Display:   r.Display(),
		Reason:    r.Reason,
	}
}

func (s PlanSummary) Response() response_models.ConditionsSummary {
	p := s.Params
	return response_models.ConditionsSummary{
		Route:        s.Route.String(),
		Cities:       append([]string(nil), s.Route...),
		StartDate:    utils.FormatDate(p.StartDate),
		EndDate:      utils.FormatDate(p.EndDate),
		TotalDays:    p.TotalDays,
		Age:          p.Age,
		Budget:       s.Currency.Display(),
		BudgetJPY:    p.BudgetJPY,
		BudgetStance: p.BudgetStance.Label(),
		Transport:    append([]string{}, p.TransportModes...),
		Weather:      p.Weather.Label(),
		TravelTime:   travelTimeText(s.TravelTime),
	}
}

func (d DayPlan) Response() response_models.DayPlanResponse {
	return response_models.DayPlanResponse{
		DayNumber: d.DayNumber,
		Date:      utils.FormatDate(d.Date),
		Text:      d.Text,
		Narrative: d.Narrative,
		Places:    append([]string{}, d.Places...),
		Extraction: response_models.ExtractionResponse{
			Status: string(d.Extraction.Status),
			Reason: d.Extraction.Reason,
		},
		Error: d.Error,
	}
}

func (r *ItineraryResult) Response() response_models.ItineraryResponse {
	days := make([]response_models.DayPlanResponse, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, d.Response())
	}
	return response_models.ItineraryResponse{
		Conditions: r.Summary.Response(),
		Currency:   CurrencyResponse(r.Summary.Currency),
		Days:       days,
		Visited:    append([]string{}, r.Visited...),
		MapURL:     r.MapURL,
		MapNotice:  r.MapNotice,
	}
}
