package services

import (
	"strings"
	"testing"

	"tabiplan/pkg/utils"
)

func mustParams(t *testing.T, start, end string, age int, modes []string) TripParameters {
	t.Helper()
	s, err := utils.ParseDateJST(start)
	if err != nil {
		t.Fatal(err)
	}
	e, err := utils.ParseDateJST(end)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewTripParameters(s, e, age, 50000, BudgetNegative, WeatherRainy, modes, "USD", false)
	if err != nil {
		t.Fatalf("NewTripParameters: %v", err)
	}
	return p
}

func TestBuildDayPromptStayRule(t *testing.T) {
	params := mustParams(t, "2024-05-01", "2024-05-02", 30, []string{ModeShinkansen, ModePlane})
	if params.TotalDays != 2 {
		t.Fatalf("TotalDays = %d, want 2", params.TotalDays)
	}
	route := Route{"東京", "大阪"}
	tt := NewTravelTimeTable().Estimate(route.Start(), route.End(), params.TransportModes)

	day1, err := BuildDayPrompt(DayPromptInput{DayIndex: 0, Route: route, Params: params, Budget: "50000円", TravelTime: tt})
	if err != nil {
		t.Fatalf("day 1: %v", err)
	}
	for _, want := range []string{"1日目（2024-05-01）", "東京から大阪へ移動する日です", "新幹線で約2時間30分", "なし"} {
		if !strings.Contains(day1, want) {
			t.Errorf("day 1 prompt missing %q:\n%s", want, day1)
		}
	}
	if strings.Contains(day1, "すでに大阪に滞在") {
		t.Error("day 1 prompt must not carry the stay rule")
	}

	day2, err := BuildDayPrompt(DayPromptInput{DayIndex: 1, Route: route, Params: params, Budget: "50000円", TravelTime: tt, Visited: []string{"浅草寺", "大阪城"}})
	if err != nil {
		t.Fatalf("day 2: %v", err)
	}
	for _, want := range []string{"2日目（2024-05-02）", "すでに大阪に滞在しています", "都市間の移動には触れないでください", "浅草寺、大阪城"} {
		if !strings.Contains(day2, want) {
			t.Errorf("day 2 prompt missing %q:\n%s", want, day2)
		}
	}
	if strings.Contains(day2, "東京から大阪へ移動") {
		t.Error("day 2 prompt must not instruct inter-city travel")
	}
}

func TestBuildDayPromptFields(t *testing.T) {
	params := mustParams(t, "2024-05-01", "2024-05-03", 18, nil)
	route := Route{"東京", "京都"}
	tt := NewTravelTimeTable().Estimate(route.Start(), route.End(), nil)

	prompt, err := BuildDayPrompt(DayPromptInput{DayIndex: 0, Route: route, Params: params, Budget: "50000円（約 320.5 USD）", TravelTime: tt})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"3日間の旅行",
		"年齢: 18歳",
		"予算: 50000円（約 320.5 USD）",
		"ネガティブ（節約重視）",
		"移動手段: 指定なし",
		"天気: 雨",
		"屋内中心",
		"600文字以上",
		"お酒・飲酒に関する提案はしない",
		"移動時間の目安: 数時間程度（目安）",
		"MAP_SPOTS:\n[",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	adult := mustParams(t, "2024-05-01", "2024-05-03", 20, nil)
	prompt, err = BuildDayPrompt(DayPromptInput{DayIndex: 0, Route: route, Params: adult, Budget: "0円", TravelTime: tt})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(prompt, "飲酒") {
		t.Error("adult prompt must not carry the alcohol restriction")
	}
}

func TestBuildDayPromptDeterministic(t *testing.T) {
	params := mustParams(t, "2024-05-01", "2024-05-05", 40, []string{ModeCar})
	in := DayPromptInput{DayIndex: 2, Route: Route{"東京", "大阪"}, Params: params, Budget: "1円", Visited: []string{"a"}}
	a, _ := BuildDayPrompt(in)
	b, _ := BuildDayPrompt(in)
	if a != b {
		t.Fatal("prompt rendering is not deterministic")
	}
	if !strings.Contains(a, "3日目（2024-05-03）") {
		t.Fatalf("unexpected day header:\n%s", a)
	}
}

func TestMinCharsForTrip(t *testing.T) {
	tests := []struct{ days, want int }{
		{1, 800}, {2, 800}, {3, 600}, {4, 600}, {5, 400}, {7, 400}, {8, 300}, {30, 300},
	}
	prev := 1 << 30
	for _, tt := range tests {
		got := MinCharsForTrip(tt.days)
		if got != tt.want {
			t.Errorf("MinCharsForTrip(%d) = %d, want %d", tt.days, got, tt.want)
		}
		if got > prev {
			t.Errorf("MinCharsForTrip(%d) increased", tt.days)
		}
		prev = got
	}
}

func TestNewTripParametersValidation(t *testing.T) {
	s, _ := utils.ParseDateJST("2024-05-02")
	e, _ := utils.ParseDateJST("2024-05-01")

	if _, err := NewTripParameters(s, e, 30, 0, "", "", nil, "", false); err == nil {
		t.Fatal("expected date range error")
	}
	if _, err := NewTripParameters(e, s, -1, 0, "", "", nil, "", false); err == nil {
		t.Fatal("expected age error")
	}
	if _, err := NewTripParameters(e, s, 30, -5, "", "", nil, "", false); err == nil {
		t.Fatal("expected budget error")
	}
	if _, err := NewTripParameters(e, s, 30, 0, "lavish", "", nil, "", false); err == nil {
		t.Fatal("expected stance error")
	}
	if _, err := NewTripParameters(e, s, 30, 0, "", "snowy", nil, "", false); err == nil {
		t.Fatal("expected weather error")
	}

	p, err := NewTripParameters(e, s, 30, 0, "", "", nil, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if p.BudgetStance != BudgetOverall || p.Weather != WeatherSunny {
		t.Fatalf("defaults = %s/%s", p.BudgetStance, p.Weather)
	}
}
