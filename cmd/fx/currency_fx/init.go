package currency_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabiplan/internal/config"
	"tabiplan/internal/services"
	mem "tabiplan/pkg/memcache"
)

var Module = fx.Provide(provideCurrencyService)

func provideCurrencyService(cfg *config.Config, cache mem.RateStore, logger *zap.Logger) services.CurrencyServiceInterface {
	return services.NewCurrencyService(cfg.ExchangeAPIURL, cfg.ExchangeTimeout, cfg.ExchangeCacheTTL, cache, logger)
}
