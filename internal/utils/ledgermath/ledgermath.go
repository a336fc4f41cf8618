package ledgermath

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/core/domain"
)

// SignedContribution returns the delta a transaction applies to the given
// account's balance. This is the single place the sign convention lives; the
// SQL aggregates in the repository mirror it and both are covered by the same
// test vectors.
//
// CREDIT to target          -> +amount
// DEBIT to target           -> -amount - charge
// TRANSFER, account sends   -> -amount - charge
// TRANSFER, account receives-> +amount
// ADJUSTMENT to target      -> +amount (INCREASE) / -amount (DECREASE)
//
// The fee always falls on whichever side initiates the outgoing movement; the
// receiving side of a transfer never pays it.
func SignedContribution(txn domain.Transaction, accountID string) (decimal.Decimal, error) {
	if !txn.Touches(accountID) {
		return decimal.Zero, nil
	}

	switch txn.Kind {
	case domain.KindCredit:
		return txn.Amount, nil
	case domain.KindDebit:
		return txn.Amount.Add(txn.Charge).Neg(), nil
	case domain.KindTransfer:
		if txn.FromAccountID == accountID {
			return txn.Amount.Add(txn.Charge).Neg(), nil
		}
		return txn.Amount, nil
	case domain.KindAdjustment:
		if txn.Direction == domain.AdjustDecrease {
			return txn.Amount.Neg(), nil
		}
		return txn.Amount, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction kind %q on transaction %s", txn.Kind, txn.TxnID)
	}
}

// ChargeBorneBy returns the fee the given account pays on this transaction:
// the charge value when the account is the paying side, zero otherwise.
func ChargeBorneBy(txn domain.Transaction, accountID string) decimal.Decimal {
	switch txn.Kind {
	case domain.KindDebit:
		if txn.TargetAccountID == accountID {
			return txn.Charge
		}
	case domain.KindTransfer:
		if txn.FromAccountID == accountID {
			return txn.Charge
		}
	}
	return decimal.Zero
}

// DisplayAmount is the face value as shown from the account's perspective:
// negative when money leaves it.
func DisplayAmount(txn domain.Transaction, accountID string) decimal.Decimal {
	switch txn.Kind {
	case domain.KindDebit:
		return txn.Amount.Neg()
	case domain.KindTransfer:
		if txn.FromAccountID == accountID {
			return txn.Amount.Neg()
		}
		return txn.Amount
	case domain.KindAdjustment:
		if txn.Direction == domain.AdjustDecrease {
			return txn.Amount.Neg()
		}
	}
	return txn.Amount
}

// IsSender reports whether the account is the paying side of a transfer.
func IsSender(txn domain.Transaction, accountID string) bool {
	return txn.Kind == domain.KindTransfer && txn.FromAccountID == accountID
}
