package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/apperrors"
	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	portsrepo "github.com/zamzamtravels/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/dto"
	"github.com/zamzamtravels/erp_backend/internal/middleware"
	"github.com/zamzamtravels/erp_backend/internal/utils/pagination"
)

var validKinds = map[domain.TransactionKind]bool{
	domain.KindCredit:     true,
	domain.KindDebit:      true,
	domain.KindTransfer:   true,
	domain.KindAdjustment: true,
}

// ledgerService is a pure read-time projection over the transaction log.
// There is no cached balance anywhere; every call folds the log again.
type ledgerService struct {
	txnRepo     portsrepo.TransactionRepository
	accountRepo portsrepo.AccountRepository
}

// NewLedgerService creates the account-ledger projection service.
func NewLedgerService(txnRepo portsrepo.TransactionRepository, accountRepo portsrepo.AccountRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{txnRepo: txnRepo, accountRepo: accountRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetBalance derives the account balance: opening balance plus the signed
// fold over every active transaction touching the account.
func (s *ledgerService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	delta, err := s.txnRepo.SumSignedContributions(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fold balance for account %s: %w", accountID, err)
	}
	return account.OpeningBalance.Add(delta), nil
}

// GetStatement returns the filtered, paginated statement together with a
// summary computed over the identical filter. The filter value is built once
// and handed to both queries, which is what keeps the two consistent.
func (s *ledgerService) GetStatement(ctx context.Context, accountID string, params dto.StatementParams) (*dto.StatementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateDateRange(params.DateFrom, params.DateTo); err != nil {
		return nil, err
	}
	if params.Kind != "" && !validKinds[domain.TransactionKind(params.Kind)] {
		return nil, fmt.Errorf("%w: unknown kind filter %q", apperrors.ErrValidation, params.Kind)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch account for statement", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	page := params.Params.Normalize()

	filter := portsrepo.TransactionFilter{
		AccountID:  accountID,
		Kind:       domain.TransactionKind(params.Kind),
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
		ActiveOnly: true,
	}

	txns, total, err := s.txnRepo.ListAccountTransactions(ctx, filter, page.PageSize, page.Offset())
	if err != nil {
		logger.Error("Failed to list statement transactions", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	summary, err := s.txnRepo.SummarizeAccountActivity(ctx, filter)
	if err != nil {
		logger.Error("Failed to summarize statement activity", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to summarize activity: %w", err)
	}

	delta, err := s.txnRepo.SumSignedContributions(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fold balance for account %s: %w", accountID, err)
	}

	items := make([]dto.StatementEntry, len(txns))
	for i := range txns {
		items[i] = dto.ToStatementEntry(&txns[i], accountID)
	}

	resp := &dto.StatementResponse{
		AccountID:  accountID,
		Balance:    account.OpeningBalance.Add(delta),
		Items:      items,
		Pagination: pagination.NewMeta(page, total),
		Summary:    dto.ToSummaryResponse(summary),
	}

	logger.Debug("Statement derived", slog.String("account_id", accountID), slog.Int("items", len(items)), slog.Int64("total", total))
	return resp, nil
}

// SummarizeParty computes the paid/received split for a vendor/agent with the
// same sign rules as the account fold, keyed by party id. Display metadata is
// filled in by the reporting layer.
func (s *ledgerService) SummarizeParty(ctx context.Context, partyID string, from, to *time.Time) (*domain.PartySummary, error) {
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}

	filter := portsrepo.TransactionFilter{
		PartyID:    partyID,
		DateFrom:   from,
		DateTo:     to,
		ActiveOnly: true,
	}
	summary, err := s.txnRepo.SummarizePartyActivity(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize party %s: %w", partyID, err)
	}
	return summary, nil
}

func validateDateRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return fmt.Errorf("%w: invalid date range, from is after to", apperrors.ErrValidation)
	}
	return nil
}
