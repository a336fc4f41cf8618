package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row shape. Optional references are
// pointers so NULL columns round-trip cleanly.
type Transaction struct {
	TxnID           string
	Kind            string
	Amount          decimal.Decimal
	Charge          decimal.Decimal
	TargetAccountID *string
	FromAccountID   *string
	ToAccountID     *string
	PartyID         *string
	CurrencyCode    *string
	ReserveAction   *string
	Quantity        *decimal.Decimal
	ExchangeRate    *decimal.Decimal
	Direction       *string
	TxnDate         time.Time
	Notes           string
	Category        string
	PaymentMethod   string
	IsActive        bool
	AuditFields
}
