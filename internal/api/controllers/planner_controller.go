package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backpackbuddy/internal/models/request_models"
	"backpackbuddy/internal/services"
	"backpackbuddy/pkg/utils"
)

type PlannerController struct {
	plannerService services.PlannerServiceInterface
	packingService services.PackingServiceInterface
}

func NewPlannerController(
	plannerService services.PlannerServiceInterface,
	packingService services.PackingServiceInterface,
) *PlannerController {
	return &PlannerController{
		plannerService: plannerService,
		packingService: packingService,
	}
}

// GenerateItineraryHandler returns the itinerary mapping (or the
// extraction error marker) verbatim, as the frontend consumes it
// without an envelope.
func (p *PlannerController) GenerateItineraryHandler(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := p.plannerService.GenerateItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (p *PlannerController) GeneratePackingListHandler(c *gin.Context) {
	var req request_models.ItineraryData
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := p.packingService.GeneratePackingList(c.Request.Context(), req.Itinerary)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (p *PlannerController) ReplanDayHandler(c *gin.Context) {
	var req request_models.ReplanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Day < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Day must be greater than 0")
		return
	}

	replanned := p.plannerService.ReplanDay(c.Request.Context(), req.Itinerary, req.Day, req.Condition)
	c.JSON(http.StatusOK, replanned)
}
