package utils

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidRoute            = errors.New("route needs at least 2 distinct cities")
	ErrInvalidDateRange        = errors.New("end date must not be before start date")
	ErrUnsupportedCurrency     = errors.New("unsupported display currency")
	ErrExchangeRateUnavailable = errors.New("exchange rate unavailable")
	ErrMarkerNotFound          = errors.New("place marker not found")
	ErrMarkerParseFailure      = errors.New("place marker is not a JSON string array")
	ErrGenerationFailure       = errors.New("text generation failed")
	ErrNoPlacesExtracted       = errors.New("no places extracted")
	ErrInvalidPage             = errors.New("invalid page parameter")
	ErrInvalidPageSize         = errors.New("invalid page size parameter")
	ErrDatabaseError           = errors.New("database error")
)
