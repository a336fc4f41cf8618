package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind describes where the money physically sits.
type AccountKind string

const (
	AccountBank   AccountKind = "BANK"
	AccountCash   AccountKind = "CASH"
	AccountMobile AccountKind = "MOBILE"
	AccountCheque AccountKind = "CHEQUE"
	AccountOther  AccountKind = "OTHER"
)

// Account is a money holding place. Its current balance is never stored; it is
// always derived by folding the transaction log over the opening balance, so a
// cached number can never diverge from the log.
type Account struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	Kind           AccountKind     `json:"kind"`
	CurrencyCode   string          `json:"currencyCode"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Description    string          `json:"description,omitempty"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
