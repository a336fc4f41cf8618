package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/apperrors"
	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	portsrepo "github.com/zamzamtravels/erp_backend/internal/core/ports/repositories"
	"github.com/zamzamtravels/erp_backend/internal/models"
	"github.com/zamzamtravels/erp_backend/internal/utils/mapping"
)

const txnColumns = `txn_id, kind, amount, charge, target_account_id, from_account_id, to_account_id, party_id, currency_code, reserve_action, quantity, exchange_rate, direction, txn_date, notes, category, payment_method, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates the repository for the transaction log.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// pgxExecutor is satisfied by both *pgxpool.Pool and pgx.Tx, so the insert
// can run standalone or inside the guarded reserve transaction.
type pgxExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// SaveTransaction appends one record. The log is append-mostly: the only later
// mutation allowed is the void flag, applied by DeactivateTransaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return insertTransaction(ctx, r.Pool, mapping.ToModelTransaction(txn))
}

// SaveReserveTransaction appends one exchange-ledger event with the stock
// guard re-applied at write time. Writers of one currency take a per-currency
// advisory lock, so the quantity fold below and the insert are serialized;
// without this, two concurrent sells could both read enough stock and drive
// the derived position negative.
func (r *PgxTransactionRepository) SaveReserveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, txn.CurrencyCode); err != nil {
		return fmt.Errorf("failed to lock %s reserve: %w", txn.CurrencyCode, err)
	}

	removesStock := txn.ReserveAction == domain.ReserveSell ||
		(txn.ReserveAction == domain.ReserveAdjust && txn.Direction == domain.AdjustDecrease)
	if removesStock {
		query := `
			SELECT COALESCE(SUM(
				CASE
					WHEN reserve_action = 'BUY' THEN quantity
					WHEN reserve_action = 'SELL' THEN -quantity
					WHEN reserve_action = 'ADJUST' AND direction = 'DECREASE' THEN -quantity
					WHEN reserve_action = 'ADJUST' THEN quantity
					ELSE 0
				END), 0)
			FROM transactions
			WHERE is_active = TRUE AND currency_code = $1;
		`
		var onHand decimal.Decimal
		if err := tx.QueryRow(ctx, query, txn.CurrencyCode).Scan(&onHand); err != nil {
			return fmt.Errorf("failed to fold on-hand quantity for %s: %w", txn.CurrencyCode, err)
		}
		if txn.Quantity.GreaterThan(onHand) {
			return fmt.Errorf("%w: cannot remove %s %s, only %s on hand",
				apperrors.ErrInsufficientReserve, txn.Quantity, txn.CurrencyCode, onHand)
		}
	}

	if err := insertTransaction(ctx, tx, mapping.ToModelTransaction(txn)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertTransaction(ctx context.Context, q pgxExecutor, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + txnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := q.Exec(ctx, query,
		m.TxnID,
		m.Kind,
		m.Amount,
		m.Charge,
		m.TargetAccountID,
		m.FromAccountID,
		m.ToAccountID,
		m.PartyID,
		m.CurrencyCode,
		m.ReserveAction,
		m.Quantity,
		m.ExchangeRate,
		m.Direction,
		m.TxnDate,
		m.Notes,
		m.Category,
		m.PaymentMethod,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TxnID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TxnID, err)
	}
	return nil
}

// FindTransactionByID fetches one record, active or not.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM transactions WHERE txn_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, txnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", txnID, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// DeactivateTransaction flips the void flag, the only mutation the log allows.
func (r *PgxTransactionRepository) DeactivateTransaction(ctx context.Context, txnID, userID string, at time.Time) error {
	query := `
		UPDATE transactions
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE txn_id = $1 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, txnID, at, userID)
	if err != nil {
		return fmt.Errorf("failed to void transaction %s: %w", txnID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: active transaction %s", apperrors.ErrNotFound, txnID)
	}
	return nil
}

// ListAccountTransactions returns the filtered page, newest first, plus the
// total count over the same filter.
func (r *PgxTransactionRepository) ListAccountTransactions(ctx context.Context, f portsrepo.TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where, args := buildTxnWhere(f)

	countQuery := `SELECT COUNT(*) FROM transactions ` + where + `;`
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT `+txnColumns+`
		FROM transactions
		%s
		ORDER BY txn_date DESC, created_at DESC, txn_id DESC
		LIMIT $%d OFFSET $%d;
	`, where, len(args)+1, len(args)+2)

	rows, err := r.Pool.Query(ctx, listQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(ms), total, nil
}

// SummarizeAccountActivity aggregates the signed per-direction totals
// database-side, over exactly the same WHERE clause the listing uses.
func (r *PgxTransactionRepository) SummarizeAccountActivity(ctx context.Context, f portsrepo.TransactionFilter) (*domain.ActivitySummary, error) {
	if f.AccountID == "" {
		return nil, fmt.Errorf("%w: account id is required for activity summary", apperrors.ErrValidation)
	}

	where, args := buildTxnWhere(f)

	// $1 is always the account id (buildTxnWhere puts it first).
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'CREDIT' AND target_account_id = $1), 0) AS total_credit,
			COALESCE(SUM(amount) FILTER (WHERE kind = 'DEBIT' AND target_account_id = $1), 0) AS total_debit,
			COALESCE(SUM(amount) FILTER (WHERE kind = 'TRANSFER' AND to_account_id = $1), 0) AS total_transfer_in,
			COALESCE(SUM(amount) FILTER (WHERE kind = 'TRANSFER' AND from_account_id = $1), 0) AS total_transfer_out,
			COALESCE(SUM(charge) FILTER (WHERE (kind = 'DEBIT' AND target_account_id = $1) OR (kind = 'TRANSFER' AND from_account_id = $1)), 0) AS total_charges,
			COALESCE(SUM(CASE WHEN direction = 'DECREASE' THEN -amount ELSE amount END) FILTER (WHERE kind = 'ADJUSTMENT' AND target_account_id = $1), 0) AS total_adjustment
		FROM transactions ` + where + `;`

	var s domain.ActivitySummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&s.TotalCredit,
		&s.TotalDebit,
		&s.TotalTransferIn,
		&s.TotalTransferOut,
		&s.TotalCharges,
		&s.TotalAdjustment,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize activity for account %s: %w", f.AccountID, err)
	}
	return &s, nil
}

// SumSignedContributions folds the full active log into the account's balance
// delta with a single CASE expression mirroring the statement sign rules.
func (r *PgxTransactionRepository) SumSignedContributions(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE
				WHEN kind = 'CREDIT' AND target_account_id = $1 THEN amount
				WHEN kind = 'DEBIT' AND target_account_id = $1 THEN -(amount + charge)
				WHEN kind = 'TRANSFER' AND from_account_id = $1 THEN -(amount + charge)
				WHEN kind = 'TRANSFER' AND to_account_id = $1 THEN amount
				WHEN kind = 'ADJUSTMENT' AND target_account_id = $1 THEN
					CASE WHEN direction = 'DECREASE' THEN -amount ELSE amount END
				ELSE 0
			END), 0)
		FROM transactions
		WHERE is_active = TRUE
		  AND (target_account_id = $1 OR from_account_id = $1 OR to_account_id = $1);
	`
	var delta decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&delta); err != nil {
		return decimal.Zero, fmt.Errorf("failed to fold contributions for account %s: %w", accountID, err)
	}
	return delta, nil
}

// SummarizePartyActivity computes the paid/received split for one party.
// Debits pay the party, credits receive from it; charges ride on the debits.
func (r *PgxTransactionRepository) SummarizePartyActivity(ctx context.Context, f portsrepo.TransactionFilter) (*domain.PartySummary, error) {
	if f.PartyID == "" {
		return nil, fmt.Errorf("%w: party id is required for party summary", apperrors.ErrValidation)
	}

	where, args := buildTxnWhere(f)

	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'DEBIT'), 0) AS total_paid,
			COALESCE(SUM(amount) FILTER (WHERE kind = 'CREDIT'), 0) AS total_received,
			COALESCE(SUM(charge), 0) AS total_charges
		FROM transactions ` + where + `;`

	s := domain.PartySummary{PartyID: f.PartyID}
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&s.TotalPaid,
		&s.TotalReceived,
		&s.TotalCharges,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize activity for party %s: %w", f.PartyID, err)
	}
	s.NetPosition = s.TotalReceived.Sub(s.TotalPaid).Sub(s.TotalCharges)
	return &s, nil
}

// ListReserveEvents returns active exchange-ledger events in fold order.
func (r *PgxTransactionRepository) ListReserveEvents(ctx context.Context, currencyCode string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + txnColumns + `
		FROM transactions
		WHERE is_active = TRUE AND currency_code IS NOT NULL
	`
	args := []any{}
	if currencyCode != "" {
		query += ` AND currency_code = $1`
		args = append(args, currencyCode)
	}
	query += ` ORDER BY txn_date ASC, created_at ASC, txn_id ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reserve events: %w", err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reserve event row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reserve event rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// buildTxnWhere renders a TransactionFilter into a WHERE clause. When an
// account id is present it is always $1, which the summary query relies on.
func buildTxnWhere(f portsrepo.TransactionFilter) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.AccountID != "" {
		p := arg(f.AccountID)
		conds = append(conds, fmt.Sprintf("(target_account_id = %s OR from_account_id = %s OR to_account_id = %s)", p, p, p))
	}
	if f.PartyID != "" {
		conds = append(conds, "party_id = "+arg(f.PartyID))
	}
	if f.Kind != "" {
		conds = append(conds, "kind = "+arg(string(f.Kind)))
	}
	if f.DateFrom != nil {
		conds = append(conds, "txn_date >= "+arg(*f.DateFrom))
	}
	if f.DateTo != nil {
		conds = append(conds, "txn_date <= "+arg(*f.DateTo))
	}
	if f.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// scanTransaction reads one row into the model shape. Works for both QueryRow
// and rows iteration through the pgx.Row interface.
func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TxnID,
		&m.Kind,
		&m.Amount,
		&m.Charge,
		&m.TargetAccountID,
		&m.FromAccountID,
		&m.ToAccountID,
		&m.PartyID,
		&m.CurrencyCode,
		&m.ReserveAction,
		&m.Quantity,
		&m.ExchangeRate,
		&m.Direction,
		&m.TxnDate,
		&m.Notes,
		&m.Category,
		&m.PaymentMethod,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
