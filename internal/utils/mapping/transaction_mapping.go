package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	"github.com/zamzamtravels/erp_backend/internal/models"
)

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func decPtr(d decimal.Decimal) *decimal.Decimal {
	if d.IsZero() {
		return nil
	}
	return &d
}

func decVal(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

// ToModelTransaction converts a domain Transaction to its row shape.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TxnID:           d.TxnID,
		Kind:            string(d.Kind),
		Amount:          d.Amount,
		Charge:          d.Charge,
		TargetAccountID: strPtr(d.TargetAccountID),
		FromAccountID:   strPtr(d.FromAccountID),
		ToAccountID:     strPtr(d.ToAccountID),
		PartyID:         strPtr(d.PartyID),
		CurrencyCode:    strPtr(d.CurrencyCode),
		ReserveAction:   strPtr(string(d.ReserveAction)),
		Quantity:        decPtr(d.Quantity),
		ExchangeRate:    decPtr(d.ExchangeRate),
		Direction:       strPtr(string(d.Direction)),
		TxnDate:         d.TxnDate,
		Notes:           d.Notes,
		Category:        d.Category,
		PaymentMethod:   d.PaymentMethod,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a row back to the domain shape.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TxnID:           m.TxnID,
		Kind:            domain.TransactionKind(m.Kind),
		Amount:          m.Amount,
		Charge:          m.Charge,
		TargetAccountID: strVal(m.TargetAccountID),
		FromAccountID:   strVal(m.FromAccountID),
		ToAccountID:     strVal(m.ToAccountID),
		PartyID:         strVal(m.PartyID),
		CurrencyCode:    strVal(m.CurrencyCode),
		ReserveAction:   domain.ReserveAction(strVal(m.ReserveAction)),
		Quantity:        decVal(m.Quantity),
		ExchangeRate:    decVal(m.ExchangeRate),
		Direction:       domain.AdjustDirection(strVal(m.Direction)),
		TxnDate:         m.TxnDate,
		Notes:           m.Notes,
		Category:        m.Category,
		PaymentMethod:   m.PaymentMethod,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of rows to domain transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
