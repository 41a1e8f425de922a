package response_models

// ConditionsSummary echoes the search conditions the plan was generated with.
type ConditionsSummary struct {
	Route        string   `json:"route"`
	Cities       []string `json:"cities"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	TotalDays    int      `json:"total_days"`
	Age          int      `json:"age"`
	Budget       string   `json:"budget"`
	BudgetJPY    int      `json:"budget_jpy"`
	BudgetStance string   `json:"budget_stance"`
	Transport    []string `json:"transport"`
	Weather      string   `json:"weather"`
	TravelTime   string   `json:"travel_time"`
}

type CurrencyResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Available bool    `json:"available"`
	Rate      float64 `json:"rate,omitempty"`
	AmountJPY int     `json:"amount_jpy"`
	Converted float64 `json:"converted,omitempty"`
	Display   string  `json:"display"`
	Reason    string  `json:"reason,omitempty"`
}

type ExtractionResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type DayPlanResponse struct {
	DayNumber  int                `json:"day_number"`
	Date       string             `json:"date"`
	Text       string             `json:"text"`
	Narrative  string             `json:"narrative"`
	Places     []string           `json:"places"`
	Extraction ExtractionResponse `json:"extraction"`
	Error      string             `json:"error,omitempty"`
}

type ItineraryResponse struct {
	Conditions ConditionsSummary `json:"conditions"`
	Currency   CurrencyResponse  `json:"currency"`
	Days       []DayPlanResponse `json:"days"`
	Visited    []string          `json:"visited"`
	MapURL     string            `json:"map_url,omitempty"`
	MapNotice  string            `json:"map_notice,omitempty"`
}

type ValidationResponse struct {
	Route      []string           `json:"route"`
	TotalDays  int                `json:"total_days"`
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	TravelTime TravelTimeResponse `json:"travel_time"`
}

type TravelTimeResponse struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Mode     string `json:"mode,omitempty"`
	Duration string `json:"duration"`
	Exact    bool   `json:"exact"`
}
