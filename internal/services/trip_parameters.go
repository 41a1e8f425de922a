package services

import (
	"fmt"
	"time"

	"tabiplan/pkg/utils"
)

type BudgetStance string

const (
	BudgetPositive BudgetStance = "positive"
	BudgetNegative BudgetStance = "negative"
	BudgetOverall  BudgetStance = "overall"
)

func (b BudgetStance) Label() string {
	switch b {
	case BudgetPositive:
		return "ポジティブ（余裕あり）"
	case BudgetNegative:
		return "ネガティブ（節約重視）"
	default:
		return "全体"
	}
}

func (b BudgetStance) Valid() bool {
	return b == BudgetPositive || b == BudgetNegative || b == BudgetOverall
}

type Weather string

const (
	WeatherSunny Weather = "sunny"
	WeatherRainy Weather = "rainy"
)

func (w Weather) Label() string {
	if w == WeatherRainy {
		return "雨"
	}
	return "晴れ"
}

func (w Weather) Rule() string {
	if w == WeatherRainy {
		return "雨なので屋内中心のプランにする"
	}
	return "晴れなので屋外中心のプランにする"
}

func (w Weather) Valid() bool {
	return w == WeatherSunny || w == WeatherRainy
}

// TripParameters is the immutable snapshot of the form taken when planning starts.
type TripParameters struct {
	StartDate       time.Time
	EndDate         time.Time
	TotalDays       int
	Age             int
	BudgetJPY       int
	BudgetStance    BudgetStance
	Weather         Weather
	TransportModes  []string
	DisplayCurrency string
	ExcludeOrigin   bool
}

// NewTripParameters validates the raw values and derives the day count.
func NewTripParameters(start, end time.Time, age, budgetJPY int, stance BudgetStance, weather Weather,
	modes []string, currency string, excludeOrigin bool) (TripParameters, error) {

	if age < 0 || age > 120 {
		return TripParameters{}, fmt.Errorf("%w: age must be between 0 and 120", utils.ErrInvalidInput)
	}
	if budgetJPY < 0 {
		return TripParameters{}, fmt.Errorf("%w: budget must not be negative", utils.ErrInvalidInput)
	}
	if stance == "" {
		stance = BudgetOverall
	}
	if !stance.Valid() {
		return TripParameters{}, fmt.Errorf("%w: unknown budget stance %q", utils.ErrInvalidInput, stance)
	}
	if weather == "" {
		weather = WeatherSunny
	}
	if !weather.Valid() {
		return TripParameters{}, fmt.Errorf("%w: unknown weather %q", utils.ErrInvalidInput, weather)
	}

	start, end = utils.DateOnly(start), utils.DateOnly(end)
	days, err := TotalDays(start, end)
	if err != nil {
		return TripParameters{}, err
	}

	return TripParameters{
		StartDate:       start,
		EndDate:         end,
		TotalDays:       days,
		Age:             age,
		BudgetJPY:       budgetJPY,
		BudgetStance:    stance,
		Weather:         weather,
		TransportModes:  append([]string(nil), modes...),
		DisplayCurrency: currency,
		ExcludeOrigin:   excludeOrigin,
	}, nil
}

// DayDate is the calendar date of the given 0-based day index.
func (p TripParameters) DayDate(dayIndex int) time.Time {
	return p.StartDate.AddDate(0, 0, dayIndex)
}
