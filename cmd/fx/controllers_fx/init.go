package controllers_fx

import (
	"go.uber.org/fx"
	"tabiplan/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewTravelTimeController),
	fx.Provide(controllers.NewExchangeRateController),
	fx.Provide(controllers.NewFeedbackController),
	fx.Provide(controllers.NewHealthController))
