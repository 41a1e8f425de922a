package services

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"tabiplan/internal/models/request_models"
	"tabiplan/pkg/utils"
)

// scriptedGenerator answers the n-th Generate call with replies[n], split into fragments.
type scriptedGenerator struct {
	replies []reply
	prompts []string
}

type reply struct {
	fragments []string
	err       error
}

func (g *scriptedGenerator) Provider() string { return "scripted" }
func (g *scriptedGenerator) Close() error     { return nil }

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string, opts utils.GenerationOptions) iter.Seq2[string, error] {
	n := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	return func(yield func(string, error) bool) {
		if n >= len(g.replies) {
			yield("", errors.New("no scripted reply"))
			return
		}
		r := g.replies[n]
		for _, f := range r.fragments {
			if !yield(f, nil) {
				return
			}
		}
		if r.err != nil {
			yield("", r.err)
		}
	}
}

type stubCurrency struct {
	calls int
	res   ConversionResult
}

func (s *stubCurrency) Convert(ctx context.Context, amountJPY int, currency string) (ConversionResult, error) {
	s.calls++
	r := s.res
	r.AmountJPY = amountJPY
	r.To = currency
	return r, nil
}

type recordingObserver struct {
	events    []string
	fragments map[int][]string
}

func (o *recordingObserver) OnStart(s PlanSummary) { o.events = append(o.events, "start") }
func (o *recordingObserver) OnDayStart(i int, _ time.Time) {
	o.events = append(o.events, "day_start")
}
func (o *recordingObserver) OnFragment(i int, f string) {
	if o.fragments == nil {
		o.fragments = map[int][]string{}
	}
	o.fragments[i] = append(o.fragments[i], f)
}
func (o *recordingObserver) OnDayDone(d DayPlan) { o.events = append(o.events, "day_done") }

func newTestItineraryService(gen utils.TextGeneratorInterface, cur CurrencyServiceInterface) ItineraryServiceInterface {
	return NewItineraryService(gen, cur, NewTravelTimeTable(), ItineraryConfig{
		MapsBaseURL: "https://www.google.com/maps",
	}, zap.NewNop())
}

func tokyoOsakaRequest(start, end string) request_models.ItineraryRequest {
	return request_models.ItineraryRequest{
		Legs:      []request_models.LegRequest{{From: "東京", To: "大阪"}},
		StartDate: start,
		EndDate:   end,
		Age:       30,
		BudgetJPY: 50000,
		Weather:   "sunny",
		Transport: []string{ModeShinkansen},
		Currency:  "USD",
	}
}

func TestPlanTwoDays(t *testing.T) {
	gen := &scriptedGenerator{replies: []reply{
		{fragments: []string{"朝は浅草寺へ。", "午後に新幹線で大阪へ。\n", "MAP_SPOTS:\n", `["浅草寺", "大阪城"]`}},
		{fragments: []string{"道頓堀を散策。\nMAP_SPOTS:\n", `["大阪城", "道頓堀"]`}},
	}}
	cur := &stubCurrency{res: ConversionResult{From: "JPY", Available: true, Rate: 0.0064, Converted: 320}}
	obs := &recordingObserver{}

	res, err := newTestItineraryService(gen, cur).Plan(context.Background(), tokyoOsakaRequest("2024-05-01", "2024-05-02"), obs)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	if len(res.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(res.Days))
	}
	if got := strings.Join(res.Days[0].Places, ","); got != "浅草寺,大阪城" {
		t.Errorf("day 1 places = %s", got)
	}
	if got := strings.Join(res.Days[1].Places, ","); got != "道頓堀" {
		t.Errorf("day 2 places = %s", got)
	}
	if got := strings.Join(res.Visited, ","); got != "浅草寺,大阪城,道頓堀" {
		t.Errorf("visited = %s", got)
	}
	want := "https://www.google.com/maps/dir/" + strings.Join([]string{
		"%E6%B5%85%E8%8D%89%E5%AF%BA", "%E5%A4%A7%E9%98%AA%E5%9F%8E", "%E9%81%93%E9%A0%93%E5%A0%80",
	}, "/")
	if res.MapURL != want {
		t.Errorf("map url = %s, want %s", res.MapURL, want)
	}
	if res.Days[0].Narrative != "朝は浅草寺へ。午後に新幹線で大阪へ。" {
		t.Errorf("narrative = %q", res.Days[0].Narrative)
	}
	if res.Days[1].Date.Format(utils.DateLayout) != "2024-05-02" {
		t.Errorf("day 2 date = %v", res.Days[1].Date)
	}

	if len(gen.prompts) != 2 {
		t.Fatalf("generate calls = %d", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "東京から大阪へ移動する日です") || !strings.Contains(gen.prompts[0], "50000円（約 320 USD）") {
		t.Errorf("day 1 prompt:\n%s", gen.prompts[0])
	}
	if !strings.Contains(gen.prompts[1], "すでに大阪に滞在しています") || !strings.Contains(gen.prompts[1], "浅草寺、大阪城") {
		t.Errorf("day 2 prompt should carry stay rule and visited places:\n%s", gen.prompts[1])
	}

	if got := strings.Join(obs.events, ","); got != "start,day_start,day_done,day_start,day_done" {
		t.Errorf("observer events = %s", got)
	}
	if len(obs.fragments[0]) != 4 || len(obs.fragments[1]) != 2 {
		t.Errorf("fragments = %v", obs.fragments)
	}
}

func TestPlanDegradedDays(t *testing.T) {
	gen := &scriptedGenerator{replies: []reply{
		{fragments: []string{"途中まで"}, err: errors.New("stream reset")},
		{fragments: []string{"MAP_SPOTS: [\"京都駅\", "}},
		{fragments: []string{"マーカーなしの本文"}},
	}}
	cur := &stubCurrency{res: ConversionResult{From: "JPY"}}

	res, err := newTestItineraryService(gen, cur).Plan(context.Background(), tokyoOsakaRequest("2024-05-01", "2024-05-03"), nil)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(res.Days) != 3 {
		t.Fatalf("days = %d, want 3", len(res.Days))
	}

	d1 := res.Days[0]
	if d1.Error == "" || !strings.Contains(d1.Error, "stream reset") {
		t.Errorf("day 1 error = %q", d1.Error)
	}
	if d1.Text != "途中まで" {
		t.Errorf("day 1 partial text = %q", d1.Text)
	}
	if res.Days[1].Extraction.Status != ExtractionParseFailure {
		t.Errorf("day 2 status = %s", res.Days[1].Extraction.Status)
	}
	if res.Days[2].Extraction.Status != ExtractionMarkerNotFound {
		t.Errorf("day 3 status = %s", res.Days[2].Extraction.Status)
	}
	if res.MapURL != "" || res.MapNotice == "" {
		t.Errorf("map url = %q notice = %q", res.MapURL, res.MapNotice)
	}
	if !strings.Contains(gen.prompts[0], "予算: 50000円\n") {
		t.Errorf("unavailable rate should show JPY only:\n%s", gen.prompts[0])
	}
}

func TestPlanLogsExtractionError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	gen := &scriptedGenerator{replies: []reply{
		{fragments: []string{"マーカーなし", "の本文"}},
	}}
	obs := &recordingObserver{}
	svc := NewItineraryService(gen, &stubCurrency{}, NewTravelTimeTable(), ItineraryConfig{
		MapsBaseURL: "https://www.google.com/maps",
	}, zap.New(core))

	res, err := svc.Plan(context.Background(), tokyoOsakaRequest("2024-05-01", "2024-05-01"), obs)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if res.Days[0].Text != "マーカーなしの本文" || len(obs.fragments[0]) != 2 {
		t.Fatalf("text = %q fragments = %v", res.Days[0].Text, obs.fragments[0])
	}

	entries := logs.FilterMessage("no places extracted for day").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	logged, ok := entries[0].ContextMap()["error"].(string)
	if !ok || !strings.Contains(logged, utils.ErrMarkerNotFound.Error()) {
		t.Fatalf("logged error = %v", entries[0].ContextMap()["error"])
	}
}

func TestPlanExcludeOrigin(t *testing.T) {
	gen := &scriptedGenerator{replies: []reply{
		{fragments: []string{"MAP_SPOTS: [\"東京\", \"大阪城\"]"}},
	}}
	req := tokyoOsakaRequest("2024-05-01", "2024-05-01")
	yes := true
	req.ExcludeOrigin = &yes

	res, err := newTestItineraryService(gen, &stubCurrency{}).Plan(context.Background(), req, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(res.Visited, ","); got != "大阪城" {
		t.Fatalf("visited = %s", got)
	}
}

func TestPlanMapLinkCapped(t *testing.T) {
	gen := &scriptedGenerator{replies: []reply{
		{fragments: []string{`MAP_SPOTS: ["a","b","c","d","e"]`}},
		{fragments: []string{`MAP_SPOTS: ["f","g","h","i","j"]`}},
	}}
	res, err := newTestItineraryService(gen, &stubCurrency{}).Plan(context.Background(), tokyoOsakaRequest("2024-05-01", "2024-05-02"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Visited) != 10 {
		t.Fatalf("visited = %v", res.Visited)
	}
	if res.MapURL != "https://www.google.com/maps/dir/a/b/c/d/e/f/g/h" {
		t.Fatalf("map url = %s", res.MapURL)
	}
}

func TestPlanValidationBeforeCalls(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*request_models.ItineraryRequest)
		want error
	}{
		{"single city", func(r *request_models.ItineraryRequest) {
			r.Legs = []request_models.LegRequest{{From: "東京", To: "東京"}}
		}, utils.ErrInvalidRoute},
		{"end before start", func(r *request_models.ItineraryRequest) { r.EndDate = "2024-04-30" }, utils.ErrInvalidDateRange},
		{"trip too long", func(r *request_models.ItineraryRequest) { r.EndDate = "2024-06-01" }, utils.ErrInvalidDateRange},
		{"bad date", func(r *request_models.ItineraryRequest) { r.StartDate = "05/01/2024" }, utils.ErrInvalidInput},
		{"currency", func(r *request_models.ItineraryRequest) { r.Currency = "XYZ" }, utils.ErrUnsupportedCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &scriptedGenerator{}
			cur := &stubCurrency{}
			req := tokyoOsakaRequest("2024-05-01", "2024-05-02")
			tt.mut(&req)

			_, err := newTestItineraryService(gen, cur).Plan(context.Background(), req, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !IsValidationError(err) {
				t.Fatalf("%v should classify as validation error", err)
			}
			if len(gen.prompts) != 0 || cur.calls != 0 {
				t.Fatalf("external calls made: generate=%d currency=%d", len(gen.prompts), cur.calls)
			}
		})
	}
}

func TestPlanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &scriptedGenerator{replies: []reply{
		{fragments: []string{"MAP_SPOTS: [\"大阪城\"]"}},
		{fragments: []string{"never"}},
	}}
	obs := &cancelOnDayDone{cancel: cancel}

	_, err := newTestItineraryService(gen, &stubCurrency{}).Plan(ctx, tokyoOsakaRequest("2024-05-01", "2024-05-02"), obs)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("generate calls = %d, want 1", len(gen.prompts))
	}
}

type cancelOnDayDone struct {
	NopObserver
	cancel context.CancelFunc
}

func (c *cancelOnDayDone) OnDayDone(DayPlan) { c.cancel() }

func TestValidate(t *testing.T) {
	svc := newTestItineraryService(&scriptedGenerator{}, &stubCurrency{})
	req := tokyoOsakaRequest("2024-05-01", "2024-05-03")
	req.Legs = append(req.Legs, request_models.LegRequest{From: "大阪", To: "京都"})

	res, err := svc.Validate(req)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(res.Route, ",") != "東京,大阪,京都" || res.TotalDays != 3 {
		t.Fatalf("unexpected validation %+v", res)
	}
	if res.TravelTime.From != "東京" || res.TravelTime.To != "京都" {
		t.Fatalf("travel time endpoints = %+v", res.TravelTime)
	}
}

func TestValidateRejectsCenturySpan(t *testing.T) {
	svc := newTestItineraryService(&scriptedGenerator{}, &stubCurrency{})
	res, err := svc.Validate(tokyoOsakaRequest("2000-01-01", "9999-12-31"))
	if !errors.Is(err, utils.ErrInvalidDateRange) {
		t.Fatalf("err = %v, want ErrInvalidDateRange", err)
	}
	if res != nil {
		t.Fatalf("unexpected validation %+v", res)
	}
}
