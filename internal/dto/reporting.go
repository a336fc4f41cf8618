package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/core/domain"
)

// ReportWindowParams is the optional date window of the reporting endpoints.
type ReportWindowParams struct {
	DateFrom *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// DashboardResponse is the overview aggregate.
type DashboardResponse struct {
	RealizedProfit    decimal.Decimal          `json:"realizedProfit"`
	TotalReserveValue decimal.Decimal          `json:"totalReserveValue"`
	Positions         []PositionResponse       `json:"positions"`
	AccountBalances   []domain.AccountBalance  `json:"accountBalances"`
	RealizedSales     []domain.RealizedSale    `json:"realizedSales,omitempty"`
}

// PartySummaryResponse is the paid/due split for one vendor or agent.
type PartySummaryResponse struct {
	PartyID       string          `json:"partyID"`
	PartyName     string          `json:"partyName"`
	Kind          string          `json:"kind"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	TotalReceived decimal.Decimal `json:"totalReceived"`
	TotalCharges  decimal.Decimal `json:"totalCharges"`
	NetPosition   decimal.Decimal `json:"netPosition"`
}

// ToPartySummaryResponse converts the domain summary.
func ToPartySummaryResponse(s *domain.PartySummary) PartySummaryResponse {
	return PartySummaryResponse{
		PartyID:       s.PartyID,
		PartyName:     s.PartyName,
		Kind:          string(s.Kind),
		TotalPaid:     s.TotalPaid,
		TotalReceived: s.TotalReceived,
		TotalCharges:  s.TotalCharges,
		NetPosition:   s.NetPosition,
	}
}
