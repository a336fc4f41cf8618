package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/dto"
)

// reserveHandler serves the derived currency-position views.
type reserveHandler struct {
	reserveService portssvc.ReserveSvcFacade
}

func newReserveHandler(rs portssvc.ReserveSvcFacade) *reserveHandler {
	return &reserveHandler{reserveService: rs}
}

// registerReserveRoutes registers the exchange-ledger projections.
func registerReserveRoutes(rg *gin.RouterGroup, reserveService portssvc.ReserveSvcFacade) {
	h := newReserveHandler(reserveService)

	reserves := rg.Group("/reserves")
	{
		reserves.GET("", h.listPositions)
		reserves.GET("/:currencyCode", h.getPosition)
	}
}

// listPositions godoc
// @Summary List currency positions
// @Description Every held currency with quantity, weighted-average cost and reference valuation
// @Tags reserves
// @Produce  json
// @Success 200 {object} dto.ReserveListResponse
// @Security BearerAuth
// @Router /reserves [get]
func (h *reserveHandler) listPositions(c *gin.Context) {
	positions, err := h.reserveService.Positions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReserveListResponse(positions))
}

// getPosition godoc
// @Summary Get one currency position
// @Tags reserves
// @Produce  json
// @Param   currencyCode path string true "Currency code"
// @Success 200 {object} dto.PositionResponse
// @Failure 404 {object} map[string]string "No reserve events for this currency"
// @Security BearerAuth
// @Router /reserves/{currencyCode} [get]
func (h *reserveHandler) getPosition(c *gin.Context) {
	code := strings.ToUpper(c.Param("currencyCode"))

	position, err := h.reserveService.Position(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPositionResponse(*position))
}
