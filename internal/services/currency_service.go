package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	mem "tabiplan/pkg/memcache"
	"tabiplan/pkg/utils"
)

const BaseCurrency = "JPY"

// SupportedCurrencies are the display currencies offered for the budget.
var SupportedCurrencies = []string{"USD", "EUR", "KRW", "CNY", "GBP"}

// ConversionResult reports a budget conversion. When Available is false the
// budget is shown in JPY and Reason says why.
type ConversionResult struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Available bool    `json:"available"`
	Rate      float64 `json:"rate,omitempty"`
	AmountJPY int     `json:"amount_jpy"`
	Converted float64 `json:"converted,omitempty"`
	Cached    bool    `json:"cached,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// Display renders the budget the way the plan summary shows it.
func (r ConversionResult) Display() string {
	if !r.Available {
		return fmt.Sprintf("%d円", r.AmountJPY)
	}
	return fmt.Sprintf("%d円（約 %s %s）", r.AmountJPY, formatAmount(r.Converted), r.To)
}

type CurrencyServiceInterface interface {
	Convert(ctx context.Context, amountJPY int, currency string) (ConversionResult, error)
}

type CurrencyService struct {
	HTTP    *http.Client
	BaseURL string
	Cache   mem.RateStore
	TTL     time.Duration
	logger  *zap.Logger
}

func NewCurrencyService(baseURL string, timeout, ttl time.Duration, cache mem.RateStore, logger *zap.Logger) *CurrencyService {
	return &CurrencyService{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Cache:   cache,
		TTL:     ttl,
		logger:  logger.With(zap.String("component", "currency")),
	}
}

// NormalizeCurrency upper-cases code and checks it against SupportedCurrencies.
// An empty code selects the first supported currency.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return SupportedCurrencies[0], nil
	}
	for _, c := range SupportedCurrencies {
		if c == code {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %s", utils.ErrUnsupportedCurrency, code)
}

// Convert converts amountJPY into currency. Lookup failures never surface as errors;
// they produce an unavailable result. Only an unsupported currency is an error.
func (s *CurrencyService) Convert(ctx context.Context, amountJPY int, currency string) (ConversionResult, error) {
	code, err := NormalizeCurrency(currency)
	if err != nil {
		return ConversionResult{}, err
	}

	res := ConversionResult{From: BaseCurrency, To: code, AmountJPY: amountJPY}

	rate, cached, err := s.rate(ctx, code)
	if err != nil {
		s.logger.Warn("exchange rate lookup failed, showing JPY",
			zap.String("currency", code), zap.Error(err))
		res.Reason = err.Error()
		return res, nil
	}

	res.Available = true
	res.Rate = rate
	res.Cached = cached
	res.Converted = math.Round(float64(amountJPY)*rate*100) / 100
	return res, nil
}

func (s *CurrencyService) rate(ctx context.Context, code string) (float64, bool, error) {
	pair := BaseCurrency + ":" + code
	if s.Cache != nil {
		if r, ok := s.Cache.Get(ctx, pair); ok {
			return r, true, nil
		}
	}

	r, err := s.fetchRate(ctx, code)
	if err != nil {
		return 0, false, err
	}
	if s.Cache != nil && s.TTL > 0 {
		s.Cache.Set(ctx, pair, r, s.TTL)
	}
	return r, false, nil
}

func (s *CurrencyService) fetchRate(ctx context.Context, code string) (float64, error) {
	q := url.Values{}
	q.Set("from", BaseCurrency)
	q.Set("to", code)
	reqURL := s.BaseURL + "/latest?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: creating request: %v", utils.ErrExchangeRateUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrExchangeRateUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return 0, fmt.Errorf("%w: bad status %s", utils.ErrExchangeRateUnavailable, resp.Status)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: decode: %v", utils.ErrExchangeRateUnavailable, err)
	}
	r, ok := payload.Rates[code]
	if !ok || r <= 0 {
		return 0, fmt.Errorf("%w: no rate for %s", utils.ErrExchangeRateUnavailable, code)
	}
	return r, nil
}

func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
