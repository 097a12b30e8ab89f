package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backpackbuddy/internal/models/request_models"
	"backpackbuddy/pkg/utils"
)

type PDFController struct{}

func NewPDFController() *PDFController {
	return &PDFController{}
}

func (p *PDFController) DownloadItineraryPDFHandler(c *gin.Context) {
	var req request_models.ItineraryData
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	pdfBytes, err := utils.CreateItineraryPDF(req.Itinerary)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to generate PDF: "+err.Error())
		return
	}

	c.Header("Content-Disposition", "attachment; filename=BackpackBuddy_Itinerary.pdf")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
