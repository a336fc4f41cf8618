package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/core/domain"
)

// TransactionFilter selects a subset of the log. The same filter value is
// passed to both the listing and the summary queries of one request so the
// two can never diverge.
type TransactionFilter struct {
	AccountID  string
	PartyID    string
	Kind       domain.TransactionKind // zero value means all kinds
	DateFrom   *time.Time
	DateTo     *time.Time
	ActiveOnly bool
}

// TransactionRepository is the single write path into the log plus the
// read-side projections the services fold over.
type TransactionRepository interface {
	// SaveTransaction appends one immutable record. Single-row insert;
	// atomic at the document level.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveReserveTransaction appends one exchange-ledger event. The on-hand
	// quantity is re-checked and the row inserted inside a single database
	// transaction, serialized per currency, so two concurrent sells cannot
	// both pass the stock guard. Returns ErrInsufficientReserve when a sell
	// or downward adjustment exceeds what is on hand at commit time.
	SaveReserveTransaction(ctx context.Context, txn domain.Transaction) error

	// FindTransactionByID fetches one record, active or not.
	FindTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error)

	// DeactivateTransaction voids a record; the only mutation ever applied.
	DeactivateTransaction(ctx context.Context, txnID, userID string, at time.Time) error

	// ListAccountTransactions returns the page of transactions touching the
	// filter's account, ordered txn_date desc, created_at desc, txn_id desc,
	// plus the total number of matching rows.
	ListAccountTransactions(ctx context.Context, f TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error)

	// SummarizeAccountActivity computes the signed per-direction totals for
	// the filter's account, database-side, over exactly the filtered subset.
	SummarizeAccountActivity(ctx context.Context, f TransactionFilter) (*domain.ActivitySummary, error)

	// SumSignedContributions folds the full active log into the account's
	// balance delta (excluding the opening balance), database-side.
	SumSignedContributions(ctx context.Context, accountID string) (decimal.Decimal, error)

	// SummarizePartyActivity computes paid/received/charge totals for the
	// filter's party with the same sign rules as the account summary.
	SummarizePartyActivity(ctx context.Context, f TransactionFilter) (*domain.PartySummary, error)

	// ListReserveEvents returns active exchange-ledger events, all currencies
	// or one, ordered txn_date asc, created_at asc, txn_id asc so the
	// weighted-average fold is reproducible.
	ListReserveEvents(ctx context.Context, currencyCode string) ([]domain.Transaction, error)
}
