package models

import "github.com/shopspring/decimal"

// Account is the accounts table row shape.
type Account struct {
	AccountID      string
	Name           string
	Kind           string
	CurrencyCode   string
	OpeningBalance decimal.Decimal
	Description    string
	IsActive       bool
	AuditFields
}
