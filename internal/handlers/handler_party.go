package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/dto"
)

// partyHandler serves the counterparty registry reads.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

func newPartyHandler(ps portssvc.PartySvcFacade) *partyHandler {
	return &partyHandler{partyService: ps}
}

// registerPartyRoutes registers the party registry lookups. The party summary
// report lives with the reporting routes.
func registerPartyRoutes(rg *gin.RouterGroup, partyService portssvc.PartySvcFacade) {
	h := newPartyHandler(partyService)

	parties := rg.Group("/parties")
	{
		parties.GET("", h.listParties)
		parties.GET("/:id", h.getParty)
	}
}

// listParties godoc
// @Summary List vendors and agents
// @Tags parties
// @Produce  json
// @Param   kind query string false "Party kind (VENDOR or AGENT)"
// @Param   page query int false "Page number"
// @Param   pageSize query int false "Page size"
// @Success 200 {object} dto.ListPartiesResponse
// @Failure 400 {object} map[string]string "Unknown party kind"
// @Security BearerAuth
// @Router /parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	var params dto.ListPartiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	page := params.Normalize()

	parties, err := h.partyService.ListParties(c.Request.Context(), params.Kind, page.PageSize, page.Offset())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ListPartiesResponse{Parties: make([]dto.PartyResponse, len(parties))}
	for i := range parties {
		resp.Parties[i] = dto.ToPartyResponse(&parties[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getParty godoc
// @Summary Get a party by ID
// @Tags parties
// @Produce  json
// @Param   id path string true "Party ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} map[string]string "Party not found"
// @Security BearerAuth
// @Router /parties/{id} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	party, err := h.partyService.GetPartyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}
