package services

import (
	"fmt"
	"strings"
	"text/template"

	"tabiplan/pkg/utils"
)

// dayPromptFields is the full field set of the per-day instruction template.
type dayPromptFields struct {
	DayNumber int
	Date      string
	StayRule  string
	MinChars  int
	Budget    string
	Weather   string
	Transport string
	Age       int

	TotalDays    int
	Route        string
	BudgetStance string
	WeatherRule  string
	Visited      string
	AlcoholRule  string
	Marker       string
}

var dayPromptTemplate = template.Must(template.New("day").Parse(`あなたは優秀な旅行プランナーです。
{{.TotalDays}}日間の旅行のうち、{{.DayNumber}}日目（{{.Date}}）のプランだけを作成してください。

【条件】
- 移動ルート: {{.Route}}
- 本日の移動: {{.StayRule}}
- 年齢: {{.Age}}歳
- 予算: {{.Budget}}
- 予算方針: {{.BudgetStance}}
- 移動手段: {{.Transport}}
- 天気: {{.Weather}}
- これまでに訪れた場所（繰り返さないこと）: {{.Visited}}

【ルール】
- {{.WeatherRule}}
- 実在する地名・施設名を使う
- {{.MinChars}}文字以上で、時間帯ごとに具体的に書く
{{- if .AlcoholRule}}
- {{.AlcoholRule}}
{{- end}}

【出力形式】
本文のあと、最後に次の形式で本日訪れる場所をJSON配列で出力してください。
{{.Marker}}
["場所1", "場所2"]
`))

// DayPromptInput is the per-day context handed to BuildDayPrompt.
type DayPromptInput struct {
	DayIndex   int
	Route      Route
	Params     TripParameters
	Budget     string
	TravelTime TravelTimeEstimate
	Visited    []string
}

// BuildDayPrompt renders the instruction block for one day.
func BuildDayPrompt(in DayPromptInput) (string, error) {
	fields := dayPromptFields{
		DayNumber: in.DayIndex + 1,
		Date:      utils.FormatDate(in.Params.DayDate(in.DayIndex)),
		StayRule:  stayRule(in.DayIndex, in.Route, in.TravelTime),
		MinChars:  MinCharsForTrip(in.Params.TotalDays),
		Budget:    in.Budget,
		Weather:   in.Params.Weather.Label(),
		Transport: transportText(in.Params.TransportModes),
		Age:       in.Params.Age,

		TotalDays:    in.Params.TotalDays,
		Route:        in.Route.String(),
		BudgetStance: in.Params.BudgetStance.Label(),
		WeatherRule:  in.Params.Weather.Rule(),
		Visited:      visitedText(in.Visited),
		Marker:       PlaceMarker,
	}
	if in.Params.Age < 20 {
		fields.AlcoholRule = "20歳未満のため、お酒・飲酒に関する提案はしない"
	}

	var sb strings.Builder
	if err := dayPromptTemplate.Execute(&sb, fields); err != nil {
		return "", fmt.Errorf("render day %d prompt: %w", in.DayIndex+1, err)
	}
	return sb.String(), nil
}

// MinCharsForTrip lowers the per-day length requirement as the trip gets longer.
func MinCharsForTrip(totalDays int) int {
	switch {
	case totalDays <= 2:
		return 800
	case totalDays <= 4:
		return 600
	case totalDays <= 7:
		return 400
	default:
		return 300
	}
}

func stayRule(dayIndex int, route Route, tt TravelTimeEstimate) string {
	if dayIndex == 0 {
		return fmt.Sprintf("%sから%sへ移動する日です（移動時間の目安: %s）。移動時間を考慮したプランにしてください",
			route.Start(), route.End(), travelTimeText(tt))
	}
	return fmt.Sprintf("すでに%sに滞在しています。都市間の移動には触れないでください", route.End())
}

func travelTimeText(tt TravelTimeEstimate) string {
	if tt.Exact {
		return tt.Mode + "で" + tt.Duration
	}
	return tt.Duration
}

func transportText(modes []string) string {
	if len(modes) == 0 {
		return "指定なし"
	}
	return strings.Join(modes, "、")
}

func visitedText(visited []string) string {
	if len(visited) == 0 {
		return "なし"
	}
	return strings.Join(visited, "、")
}
