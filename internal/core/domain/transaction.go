package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a monetary movement record.
type TransactionKind string

const (
	KindCredit     TransactionKind = "CREDIT"
	KindDebit      TransactionKind = "DEBIT"
	KindTransfer   TransactionKind = "TRANSFER"
	KindAdjustment TransactionKind = "ADJUSTMENT"
)

// ReserveAction is the exchange-ledger sub-kind of a currency-reserve event.
// A BUY is recorded as a DEBIT (base currency leaves the till), a SELL as a
// CREDIT, and an ADJUST as an ADJUSTMENT; the pairing is enforced at write time.
type ReserveAction string

const (
	ReserveBuy    ReserveAction = "BUY"
	ReserveSell   ReserveAction = "SELL"
	ReserveAdjust ReserveAction = "ADJUST"
)

// AdjustDirection marks whether an adjustment increases or decreases the balance
// or held quantity it targets.
type AdjustDirection string

const (
	AdjustIncrease AdjustDirection = "INCREASE"
	AdjustDecrease AdjustDirection = "DECREASE"
)

// Transaction is a single immutable monetary movement. Once written, the
// ledger-relevant fields never change; voiding flips IsActive to false and the
// record drops out of every derived computation.
type Transaction struct {
	TxnID  string          `json:"txnID"`
	Kind   TransactionKind `json:"kind"`
	Amount decimal.Decimal `json:"amount"` // face value moved, strictly positive
	Charge decimal.Decimal `json:"charge"` // fee borne by the paying side, >= 0

	TargetAccountID string `json:"targetAccountID,omitempty"` // credit/debit/adjustment
	FromAccountID   string `json:"fromAccountID,omitempty"`   // transfer sender
	ToAccountID     string `json:"toAccountID,omitempty"`     // transfer receiver
	PartyID         string `json:"partyID,omitempty"`         // optional vendor/agent link

	// Currency-reserve fields, present only for exchange-ledger events.
	CurrencyCode  string          `json:"currencyCode,omitempty"`
	ReserveAction ReserveAction   `json:"reserveAction,omitempty"`
	Quantity      decimal.Decimal `json:"quantity,omitempty"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate,omitempty"`

	Direction AdjustDirection `json:"direction,omitempty"` // adjustments only

	TxnDate       time.Time `json:"txnDate"` // business date
	Notes         string    `json:"notes,omitempty"`
	Category      string    `json:"category,omitempty"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	IsActive      bool      `json:"isActive"`
	AuditFields
}

// IsReserveEvent reports whether the transaction belongs to the exchange ledger.
func (t Transaction) IsReserveEvent() bool {
	return t.CurrencyCode != ""
}

// Touches reports whether the transaction affects the given account.
func (t Transaction) Touches(accountID string) bool {
	if accountID == "" {
		return false
	}
	return t.TargetAccountID == accountID || t.FromAccountID == accountID || t.ToAccountID == accountID
}
