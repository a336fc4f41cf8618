package dto

import (
	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/core/domain"
)

// PositionResponse is one currency position with its derived valuation.
type PositionResponse struct {
	CurrencyCode        string          `json:"currencyCode"`
	QuantityOnHand      decimal.Decimal `json:"quantityOnHand"`
	CostBasisTotal      decimal.Decimal `json:"costBasisTotal"`
	WeightedAverageCost decimal.Decimal `json:"weightedAverageCost"`
	LastBuyRate         decimal.Decimal `json:"lastBuyRate"`
	LastSellRate        decimal.Decimal `json:"lastSellRate"`
	CurrentReserveValue decimal.Decimal `json:"currentReserveValue"`
}

// ReserveListResponse lists all positions plus the aggregate value.
type ReserveListResponse struct {
	Positions         []PositionResponse `json:"positions"`
	TotalReserveValue decimal.Decimal    `json:"totalReserveValue"`
}

// ToPositionResponse converts a derived position.
func ToPositionResponse(p domain.CurrencyPosition) PositionResponse {
	return PositionResponse{
		CurrencyCode:        p.CurrencyCode,
		QuantityOnHand:      p.QuantityOnHand,
		CostBasisTotal:      p.CostBasisTotal,
		WeightedAverageCost: p.WeightedAverageCost,
		LastBuyRate:         p.LastBuyRate,
		LastSellRate:        p.LastSellRate,
		CurrentReserveValue: p.ReserveValue(),
	}
}

// ToReserveListResponse converts positions and totals their value.
func ToReserveListResponse(positions []domain.CurrencyPosition) ReserveListResponse {
	out := ReserveListResponse{
		Positions:         make([]PositionResponse, len(positions)),
		TotalReserveValue: decimal.Zero,
	}
	for i, p := range positions {
		out.Positions[i] = ToPositionResponse(p)
		out.TotalReserveValue = out.TotalReserveValue.Add(out.Positions[i].CurrentReserveValue)
	}
	return out
}
