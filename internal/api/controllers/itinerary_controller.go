package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"tabiplan/internal/models/request_models"
	"tabiplan/internal/services"
	"tabiplan/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	logger           *zap.Logger
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, logger *zap.Logger) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// CreateItinerary godoc
// @Summary Generate a travel plan
// @Description Generates every day of the trip and returns the whole plan at once
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.ItineraryRequest true "Search conditions"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries [post]
func (i *ItineraryController) CreateItinerary(c *gin.Context) {
	var req request_models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	res, err := i.itineraryService.Plan(c.Request.Context(), req, nil)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, res.Response(), "Travel plan created successfully")
}

// StreamItinerary godoc
// @Summary Generate a travel plan as Server-Sent Events
// @Description Emits summary, day_start, fragment, day_done, complete and error events
// @Tags Itinerary
// @Accept json
// @Produce text/event-stream
// @Param request body request_models.ItineraryRequest true "Search conditions"
// @Router /itineraries/stream [post]
func (i *ItineraryController) StreamItinerary(c *gin.Context) {
	var req request_models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	obs := &eventObserver{}
	obs.emit = func(event string, payload interface{}) {
		c.SSEvent(event, payload)
		c.Writer.Flush()
	}
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	res, err := i.itineraryService.Plan(c.Request.Context(), req, obs)
	if err != nil {
		if !obs.started {
			utils.HandleServiceError(c, i.logger, err)
			return
		}
		i.logger.Warn("plan stream aborted",
			zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		if c.Request.Context().Err() == nil {
			obs.fail(err.Error())
		}
		return
	}
	obs.complete(res)
}

// ValidateItinerary godoc
// @Summary Validate search conditions
// @Description Normalizes the route and date range without generating anything
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.ItineraryRequest true "Search conditions"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries/validate [post]
func (i *ItineraryController) ValidateItinerary(c *gin.Context) {
	var req request_models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	res, err := i.itineraryService.Validate(req)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, res, "Conditions are valid")
}
