package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"tabiplan/cmd/fx/config_fx"
	"tabiplan/cmd/fx/controllers_fx"
	"tabiplan/cmd/fx/currency_fx"
	"tabiplan/cmd/fx/db_fx"
	"tabiplan/cmd/fx/feedback_fx"
	"tabiplan/cmd/fx/itinerary_fx"
	"tabiplan/cmd/fx/llm_fx"
	"tabiplan/cmd/fx/memcache_fx"
	"tabiplan/cmd/fx/travel_time_fx"
	"tabiplan/internal/api/controllers"
	"tabiplan/internal/config"
	"tabiplan/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		db_fx.Module,
		memcache_fx.Module,
		llm_fx.Module,
		currency_fx.Module,
		travel_time_fx.Module,
		itinerary_fx.Module,
		feedback_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	itineraryController *controllers.ItineraryController,
	travelTimeController *controllers.TravelTimeController,
	exchangeRateController *controllers.ExchangeRateController,
	feedbackController *controllers.FeedbackController,
	healthController *controllers.HealthController) *gin.Engine {

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, itineraryController, travelTimeController, exchangeRateController, feedbackController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	travelTimeController *controllers.TravelTimeController,
	exchangeRateController *controllers.ExchangeRateController,
	feedbackController *controllers.FeedbackController,
	healthController *controllers.HealthController) {

	r.GET("/health", healthController.Health)

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.POST("", itineraryController.CreateItinerary)
	itineraryGroup.POST("/stream", itineraryController.StreamItinerary)
	itineraryGroup.POST("/validate", itineraryController.ValidateItinerary)
	itineraryGroup.GET("/ws", itineraryController.ServeWebSocket)

	r.GET("/travel-times", travelTimeController.GetTravelTime)
	r.GET("/exchange-rates", exchangeRateController.GetExchangeRate)

	feedbackGroup := r.Group("/feedback")
	feedbackGroup.POST("", feedbackController.AddFeedback)
	feedbackGroup.GET("", feedbackController.ListFeedback)
}
