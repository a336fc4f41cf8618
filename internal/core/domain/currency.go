package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyPosition is the derived state of one held foreign currency. It is
// never persisted; every query recomputes it from the exchange-ledger events.
type CurrencyPosition struct {
	CurrencyCode        string          `json:"currencyCode"`
	QuantityOnHand      decimal.Decimal `json:"quantityOnHand"`
	CostBasisTotal      decimal.Decimal `json:"costBasisTotal"`
	WeightedAverageCost decimal.Decimal `json:"weightedAverageCost"`
	LastBuyRate         decimal.Decimal `json:"lastBuyRate"`
	LastSellRate        decimal.Decimal `json:"lastSellRate"`
}

// ReferenceRate returns the rate used to value the position: the last sell
// rate when one exists, else the weighted average cost, else zero. Every
// dashboard that surfaces reserve value applies this same fallback order.
func (p CurrencyPosition) ReferenceRate() decimal.Decimal {
	if p.LastSellRate.IsPositive() {
		return p.LastSellRate
	}
	if p.WeightedAverageCost.IsPositive() {
		return p.WeightedAverageCost
	}
	return decimal.Zero
}

// ReserveValue is the current value of the position in base currency.
func (p CurrencyPosition) ReserveValue() decimal.Decimal {
	return p.QuantityOnHand.Mul(p.ReferenceRate())
}

// RealizedSale records the profit or loss recognized by one sell event.
type RealizedSale struct {
	TxnID        string          `json:"txnID"`
	CurrencyCode string          `json:"currencyCode"`
	Quantity     decimal.Decimal `json:"quantity"`
	SellRate     decimal.Decimal `json:"sellRate"`
	CostRemoved  decimal.Decimal `json:"costRemoved"` // quantity x average cost at time of sale
	Profit       decimal.Decimal `json:"profit"`      // quantity x rate - costRemoved
	TxnDate      time.Time       `json:"txnDate"`
}
