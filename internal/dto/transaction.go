package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	"github.com/zamzamtravels/erp_backend/internal/utils/ledgermath"
)

// CreateTransactionRequest is the write-API shape for every movement kind.
//
// Older clients of the ERP send the same facts under different names
// (accountId for targetAccountId, fee for charge, qty/rate for the reserve
// pair). Normalize maps those once at the boundary so nothing downstream
// ever re-guesses field names.
type CreateTransactionRequest struct {
	Kind   string          `json:"kind" binding:"required,oneof=CREDIT DEBIT TRANSFER ADJUSTMENT"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Charge decimal.Decimal `json:"charge"`

	TargetAccountID string `json:"targetAccountId"`
	FromAccountID   string `json:"fromAccountId"`
	ToAccountID     string `json:"toAccountId"`
	PartyID         string `json:"partyId"`

	CurrencyCode  string          `json:"currencyCode" binding:"omitempty,currencycode"`
	ReserveAction string          `json:"reserveAction"`
	Quantity      decimal.Decimal `json:"quantity"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`

	Direction string `json:"direction"`

	Date          *time.Time `json:"date"`
	Notes         string     `json:"notes"`
	Category      string     `json:"category"`
	PaymentMethod string     `json:"paymentMethod"`

	// Legacy aliases, consumed by Normalize and ignored afterwards.
	AccountID string          `json:"accountId"`
	Fee       decimal.Decimal `json:"fee"`
	Qty       decimal.Decimal `json:"qty"`
	Rate      decimal.Decimal `json:"rate"`
}

// Normalize folds the legacy aliases into the canonical fields and applies
// defaults (charge 0, business date now).
func (r CreateTransactionRequest) Normalize(now time.Time) CreateTransactionRequest {
	if r.TargetAccountID == "" {
		r.TargetAccountID = r.AccountID
	}
	if r.Charge.IsZero() && !r.Fee.IsZero() {
		r.Charge = r.Fee
	}
	if r.Quantity.IsZero() && !r.Qty.IsZero() {
		r.Quantity = r.Qty
	}
	if r.ExchangeRate.IsZero() && !r.Rate.IsZero() {
		r.ExchangeRate = r.Rate
	}
	if r.Date == nil {
		r.Date = &now
	}
	r.AccountID = ""
	r.Fee = decimal.Zero
	r.Qty = decimal.Zero
	r.Rate = decimal.Zero
	return r
}

// TransactionResponse is the read shape of one stored movement.
type TransactionResponse struct {
	TxnID           string          `json:"txnID"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Charge          decimal.Decimal `json:"charge"`
	TargetAccountID string          `json:"targetAccountID,omitempty"`
	FromAccountID   string          `json:"fromAccountID,omitempty"`
	ToAccountID     string          `json:"toAccountID,omitempty"`
	PartyID         string          `json:"partyID,omitempty"`
	CurrencyCode    string          `json:"currencyCode,omitempty"`
	ReserveAction   string          `json:"reserveAction,omitempty"`
	Quantity        decimal.Decimal `json:"quantity,omitempty"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate,omitempty"`
	Direction       string          `json:"direction,omitempty"`
	TxnDate         time.Time       `json:"txnDate"`
	Notes           string          `json:"notes,omitempty"`
	Category        string          `json:"category,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// StatementEntry is a transaction viewed from one account's perspective,
// with the display-only derived fields. None of these are persisted.
type StatementEntry struct {
	TransactionResponse
	IsTransfer    bool            `json:"isTransfer"`
	IsSender      bool            `json:"isSender"`
	DisplayAmount decimal.Decimal `json:"displayAmount"`
	ChargeBorne   decimal.Decimal `json:"chargeBorne"`
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TxnID:           t.TxnID,
		Kind:            string(t.Kind),
		Amount:          t.Amount,
		Charge:          t.Charge,
		TargetAccountID: t.TargetAccountID,
		FromAccountID:   t.FromAccountID,
		ToAccountID:     t.ToAccountID,
		PartyID:         t.PartyID,
		CurrencyCode:    t.CurrencyCode,
		ReserveAction:   string(t.ReserveAction),
		Quantity:        t.Quantity,
		ExchangeRate:    t.ExchangeRate,
		Direction:       string(t.Direction),
		TxnDate:         t.TxnDate,
		Notes:           t.Notes,
		Category:        t.Category,
		PaymentMethod:   t.PaymentMethod,
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt,
	}
}

// ToStatementEntry decorates a transaction with the derived fields for the
// given account's view.
func ToStatementEntry(t *domain.Transaction, accountID string) StatementEntry {
	return StatementEntry{
		TransactionResponse: ToTransactionResponse(t),
		IsTransfer:          t.Kind == domain.KindTransfer,
		IsSender:            ledgermath.IsSender(*t, accountID),
		DisplayAmount:       ledgermath.DisplayAmount(*t, accountID),
		ChargeBorne:         ledgermath.ChargeBorneBy(*t, accountID),
	}
}
