package dto

import (
	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	"github.com/zamzamtravels/erp_backend/internal/utils/pagination"
)

// CreateAccountRequest creates a registry entry for a money holding place.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	Kind           string          `json:"kind" binding:"required,oneof=BANK CASH MOBILE CHEQUE OTHER"`
	CurrencyCode   string          `json:"currencyCode" binding:"required,currencycode"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Description    string          `json:"description"`
}

// AccountResponse is the account registry read shape. Balance is present only
// on detail endpoints that derive it.
type AccountResponse struct {
	AccountID      string           `json:"accountID"`
	Name           string           `json:"name"`
	Kind           string           `json:"kind"`
	CurrencyCode   string           `json:"currencyCode"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	Description    string           `json:"description,omitempty"`
	IsActive       bool             `json:"isActive"`
	Balance        *decimal.Decimal `json:"balance,omitempty"`
}

// ListAccountsResponse wraps the account list.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ListAccountsParams carries list pagination.
type ListAccountsParams struct {
	pagination.Params
}

// ToAccountResponse converts a domain account without a derived balance.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		Name:           a.Name,
		Kind:           string(a.Kind),
		CurrencyCode:   a.CurrencyCode,
		OpeningBalance: a.OpeningBalance,
		Description:    a.Description,
		IsActive:       a.IsActive,
	}
}

// ToAccountResponseWithBalance attaches the derived balance.
func ToAccountResponseWithBalance(a *domain.Account, balance decimal.Decimal) AccountResponse {
	resp := ToAccountResponse(a)
	resp.Balance = &balance
	return resp
}
