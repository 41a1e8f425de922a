package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"tabiplan/internal/models/request_models"
	"tabiplan/internal/services"
	"tabiplan/pkg/utils"
)

type ExchangeRateController struct {
	currency services.CurrencyServiceInterface
	logger   *zap.Logger
}

func NewExchangeRateController(currency services.CurrencyServiceInterface, logger *zap.Logger) *ExchangeRateController {
	return &ExchangeRateController{currency: currency, logger: logger}
}

// GetExchangeRate godoc
// @Summary Convert a JPY amount
// @Description Returns available=false with a reason when the rate cannot be fetched
// @Tags ExchangeRate
// @Param currency query string false "USD, EUR, KRW, CNY or GBP" default(USD)
// @Param amount query int false "Amount in JPY" default(0)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /exchange-rates [get]
func (e *ExchangeRateController) GetExchangeRate(c *gin.Context) {
	var q request_models.ExchangeRateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	res, err := e.currency.Convert(c.Request.Context(), q.Amount, q.Currency)
	if err != nil {
		utils.HandleServiceError(c, e.logger, err)
		return
	}

	utils.RespondSuccess(c, services.CurrencyResponse(res), "Exchange rate fetched")
}
