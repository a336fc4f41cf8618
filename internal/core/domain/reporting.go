package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivitySummary is the signed breakdown of an account's activity over a
// filter. It is always computed over the exact same filter as the statement
// listing it accompanies.
type ActivitySummary struct {
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalTransferIn  decimal.Decimal `json:"totalTransferIn"`
	TotalTransferOut decimal.Decimal `json:"totalTransferOut"`
	TotalCharges     decimal.Decimal `json:"totalCharges"`    // fees borne by this account
	TotalAdjustment  decimal.Decimal `json:"totalAdjustment"` // signed
}

// NetChange is the summary folded into a single signed delta.
func (s ActivitySummary) NetChange() decimal.Decimal {
	return s.TotalCredit.
		Sub(s.TotalDebit).
		Add(s.TotalTransferIn).
		Sub(s.TotalTransferOut).
		Sub(s.TotalCharges).
		Add(s.TotalAdjustment)
}

// PartySummary is the paid/received split for a vendor or agent, derived with
// the same sign rules as the account ledger but keyed by party id.
type PartySummary struct {
	PartyID       string          `json:"partyID"`
	PartyName     string          `json:"partyName"`
	Kind          PartyKind       `json:"kind"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`     // money paid out to the party
	TotalReceived decimal.Decimal `json:"totalReceived"` // money received from the party
	TotalCharges  decimal.Decimal `json:"totalCharges"`
	NetPosition   decimal.Decimal `json:"netPosition"` // received - paid - charges
}

// AccountBalance pairs an account with its derived balance for dashboards.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Kind      AccountKind     `json:"kind"`
	Balance   decimal.Decimal `json:"balance"`
}

// DashboardSummary aggregates ledger and reserve output for the overview page.
type DashboardSummary struct {
	From              *time.Time         `json:"from,omitempty"`
	To                *time.Time         `json:"to,omitempty"`
	RealizedProfit    decimal.Decimal    `json:"realizedProfit"`
	TotalReserveValue decimal.Decimal    `json:"totalReserveValue"`
	Positions         []CurrencyPosition `json:"positions"`
	AccountBalances   []AccountBalance   `json:"accountBalances"`
}
