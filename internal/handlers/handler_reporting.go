package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/dto"
)

// reportingHandler serves the composed report endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	reserveService   portssvc.ReserveSvcFacade
}

func newReportingHandler(rps portssvc.ReportingSvcFacade, rs portssvc.ReserveSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rps, reserveService: rs}
}

// registerReportingRoutes registers the dashboard and party views.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, reserveService portssvc.ReserveSvcFacade) {
	h := newReportingHandler(reportingService, reserveService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getDashboard)
	}
	rg.GET("/parties/:id/summary", h.getPartySummary)
}

// getDashboard godoc
// @Summary Overview report
// @Description Realized profit over the window, current positions, total reserve value and per-account balances
// @Tags reports
// @Produce  json
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	var params dto.ReportWindowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.reportingService.Dashboard(c.Request.Context(), params.DateFrom, params.DateTo)
	if err != nil {
		respondError(c, err)
		return
	}

	_, sales, err := h.reserveService.RealizedProfit(c.Request.Context(), params.DateFrom, params.DateTo)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.DashboardResponse{
		RealizedProfit:    summary.RealizedProfit,
		TotalReserveValue: summary.TotalReserveValue,
		Positions:         make([]dto.PositionResponse, len(summary.Positions)),
		AccountBalances:   summary.AccountBalances,
		RealizedSales:     sales,
	}
	for i, p := range summary.Positions {
		resp.Positions[i] = dto.ToPositionResponse(p)
	}
	c.JSON(http.StatusOK, resp)
}

// getPartySummary godoc
// @Summary Party summary
// @Description Paid/received split and net position for one vendor or agent
// @Tags reports
// @Produce  json
// @Param   id path string true "Party ID"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.PartySummaryResponse
// @Failure 404 {object} map[string]string "Party not found"
// @Security BearerAuth
// @Router /parties/{id}/summary [get]
func (h *reportingHandler) getPartySummary(c *gin.Context) {
	var params dto.ReportWindowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.reportingService.PartySummary(c.Request.Context(), c.Param("id"), params.DateFrom, params.DateTo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPartySummaryResponse(summary))
}
