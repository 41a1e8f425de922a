package request_models

type LegRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ItineraryRequest is the search form submitted to the planner.
// Dates are calendar dates in YYYY-MM-DD, interpreted in Japan time.
type ItineraryRequest struct {
	Legs          []LegRequest `json:"legs" binding:"required,min=1,dive"`
	StartDate     string       `json:"start_date" binding:"required"`
	EndDate       string       `json:"end_date" binding:"required"`
	Age           int          `json:"age" binding:"min=0,max=120"`
	BudgetJPY     int          `json:"budget_jpy" binding:"min=0"`
	BudgetStance  string       `json:"budget_stance" binding:"omitempty,oneof=positive negative overall"`
	Weather       string       `json:"weather" binding:"omitempty,oneof=sunny rainy"`
	Transport     []string     `json:"transport"`
	Currency      string       `json:"currency"`
	ExcludeOrigin *bool        `json:"exclude_origin"`
}

type TravelTimeQuery struct {
	From  string   `form:"from" binding:"required"`
	To    string   `form:"to" binding:"required"`
	Modes []string `form:"mode"`
}

type ExchangeRateQuery struct {
	Currency string `form:"currency"`
	Amount   int    `form:"amount" binding:"min=0"`
}
