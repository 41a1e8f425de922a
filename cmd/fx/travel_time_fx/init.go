package travel_time_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabiplan/internal/config"
	"tabiplan/internal/services"
)

var Module = fx.Provide(provideTravelTimeTable)

// provideTravelTimeTable loads TRAVEL_TIME_TABLE_FILE on top of the built-in table.
func provideTravelTimeTable(cfg *config.Config, logger *zap.Logger) (services.TravelTimeServiceInterface, error) {
	if cfg.TravelTimeTableFile == "" {
		return services.NewTravelTimeTable(), nil
	}

	entries, err := services.LoadTravelTimeEntries(cfg.TravelTimeTableFile)
	if err != nil {
		return nil, err
	}
	table := services.NewTravelTimeTable(entries...)
	logger.Info("travel time table loaded",
		zap.String("file", cfg.TravelTimeTableFile),
		zap.Int("file_entries", len(entries)),
		zap.Int("pairs", table.Len()))
	return table, nil
}
