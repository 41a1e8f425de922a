package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabiplan/internal/config"
	"tabiplan/internal/services"
	"tabiplan/pkg/utils"
)

var Module = fx.Provide(provideItineraryService)

func provideItineraryService(
	cfg *config.Config,
	generator utils.TextGeneratorInterface,
	opts utils.GenerationOptions,
	currency services.CurrencyServiceInterface,
	travelTimes services.TravelTimeServiceInterface,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(generator, currency, travelTimes, services.ItineraryConfig{
		Generation:    opts,
		MapsBaseURL:   cfg.MapsBaseURL,
		ExcludeOrigin: cfg.MapExcludeOrigin,
	}, logger)
}
