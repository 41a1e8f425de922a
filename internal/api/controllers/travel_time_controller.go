package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tabiplan/internal/models/request_models"
	"tabiplan/internal/services"
	"tabiplan/pkg/utils"
)

type TravelTimeController struct {
	travelTimes services.TravelTimeServiceInterface
}

func NewTravelTimeController(travelTimes services.TravelTimeServiceInterface) *TravelTimeController {
	return &TravelTimeController{travelTimes: travelTimes}
}

// GetTravelTime godoc
// @Summary Look up a travel-time estimate
// @Description Tries each mode in order against the static table and falls back to a rough estimate
// @Tags TravelTime
// @Param from query string true "Origin city"
// @Param to query string true "Destination city"
// @Param mode query []string false "Transport modes in priority order"
// @Success 200 {object} utils.APIResponse
// @Router /travel-times [get]
func (t *TravelTimeController) GetTravelTime(c *gin.Context) {
	var q request_models.TravelTimeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "from and to are required")
		return
	}

	est := t.travelTimes.Estimate(q.From, q.To, q.Modes)
	utils.RespondSuccess(c, services.TravelTimeResponse(est), "Travel time estimated")
}
