package memcache_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabiplan/internal/cache"
	"tabiplan/internal/config"
	mem "tabiplan/pkg/memcache"
)

var Module = fx.Provide(provideRateStore)

// provideRateStore shares rates through Redis when enabled, otherwise keeps them in process.
func provideRateStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (mem.RateStore, error) {
	if !cfg.RedisEnabled {
		return mem.NewMemoryRates(), nil
	}

	rates, err := cache.NewRedisRates(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(rates.Close))
	logger.Info("exchange rates cached in redis", zap.String("addr", cfg.RedisAddr))
	return rates, nil
}
