package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/apperrors"
	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	portsrepo "github.com/zamzamtravels/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/dto"
	"github.com/zamzamtravels/erp_backend/internal/middleware"
)

var (
	ErrSameTransferEndpoints = errors.New("transfer endpoints must differ")
	ErrMissingTarget         = errors.New("target account is required")
	ErrReservePairing        = errors.New("reserve action does not match transaction kind")
)

// transactionService is the single write path into the transaction log.
// Everything it persists is immutable afterwards; validation happens here,
// before anything touches the database, so a rejected request never leaves
// partial state behind.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepository
	accountRepo portsrepo.AccountRepository
	reserveSvc  portssvc.ReserveSvcFacade
}

// NewTransactionService creates the write-path service.
func NewTransactionService(txnRepo portsrepo.TransactionRepository, accountRepo portsrepo.AccountRepository, reserveSvc portssvc.ReserveSvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		reserveSvc:  reserveSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates, normalizes and appends one movement record.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	req = req.Normalize(now)

	txn := domain.Transaction{
		TxnID:           uuid.NewString(),
		Kind:            domain.TransactionKind(req.Kind),
		Amount:          req.Amount,
		Charge:          req.Charge,
		TargetAccountID: req.TargetAccountID,
		FromAccountID:   req.FromAccountID,
		ToAccountID:     req.ToAccountID,
		PartyID:         req.PartyID,
		CurrencyCode:    req.CurrencyCode,
		ReserveAction:   domain.ReserveAction(req.ReserveAction),
		Quantity:        req.Quantity,
		ExchangeRate:    req.ExchangeRate,
		Direction:       domain.AdjustDirection(req.Direction),
		TxnDate:         *req.Date,
		Notes:           req.Notes,
		Category:        req.Category,
		PaymentMethod:   req.PaymentMethod,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.validate(ctx, &txn); err != nil {
		logger.Warn("Transaction rejected", slog.String("kind", string(txn.Kind)), slog.String("error", err.Error()))
		return nil, err
	}

	// Reserve events go through the guarded save: the stock check above is a
	// fast fail, but only the write-time re-check inside one database
	// transaction closes the window between two concurrent sells.
	save := s.txnRepo.SaveTransaction
	if txn.IsReserveEvent() {
		save = s.txnRepo.SaveReserveTransaction
	}
	if err := save(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("txn_id", txn.TxnID))
		if errors.Is(err, apperrors.ErrInsufficientReserve) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction recorded", slog.String("txn_id", txn.TxnID), slog.String("kind", string(txn.Kind)))
	return &txn, nil
}

func (s *transactionService) validate(ctx context.Context, txn *domain.Transaction) error {
	if !txn.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, txn.Amount)
	}
	if txn.Charge.IsNegative() {
		return fmt.Errorf("%w: charge must not be negative, got %s", apperrors.ErrValidation, txn.Charge)
	}

	switch txn.Kind {
	case domain.KindCredit, domain.KindDebit:
		if txn.TargetAccountID == "" {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrMissingTarget)
		}
		if err := s.requireActiveAccount(ctx, txn.TargetAccountID); err != nil {
			return err
		}
	case domain.KindTransfer:
		if txn.FromAccountID == "" || txn.ToAccountID == "" {
			return fmt.Errorf("%w: transfer requires both endpoints", apperrors.ErrValidation)
		}
		if txn.FromAccountID == txn.ToAccountID {
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrSameTransferEndpoints)
		}
		if err := s.requireActiveAccount(ctx, txn.FromAccountID); err != nil {
			return err
		}
		if err := s.requireActiveAccount(ctx, txn.ToAccountID); err != nil {
			return err
		}
	case domain.KindAdjustment:
		if txn.TargetAccountID == "" && txn.CurrencyCode == "" {
			return fmt.Errorf("%w: adjustment requires a target account or currency", apperrors.ErrValidation)
		}
		if txn.Direction == "" {
			txn.Direction = domain.AdjustIncrease
		}
		if txn.Direction != domain.AdjustIncrease && txn.Direction != domain.AdjustDecrease {
			return fmt.Errorf("%w: unknown adjustment direction %q", apperrors.ErrValidation, txn.Direction)
		}
		if txn.TargetAccountID != "" {
			if err := s.requireActiveAccount(ctx, txn.TargetAccountID); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, txn.Kind)
	}

	if txn.IsReserveEvent() {
		return s.validateReserveEvent(ctx, txn)
	}
	if txn.ReserveAction != "" || !txn.Quantity.IsZero() || !txn.ExchangeRate.IsZero() {
		return fmt.Errorf("%w: reserve fields require a currency code", apperrors.ErrValidation)
	}
	return nil
}

// validateReserveEvent enforces the exchange-ledger pairing (BUY records as
// DEBIT, SELL as CREDIT, ADJUST as ADJUSTMENT) and the sell guard: a sell or
// downward adjustment may never exceed what is currently on hand.
func (s *transactionService) validateReserveEvent(ctx context.Context, txn *domain.Transaction) error {
	wantKind := map[domain.ReserveAction]domain.TransactionKind{
		domain.ReserveBuy:    domain.KindDebit,
		domain.ReserveSell:   domain.KindCredit,
		domain.ReserveAdjust: domain.KindAdjustment,
	}
	expected, ok := wantKind[txn.ReserveAction]
	if !ok {
		return fmt.Errorf("%w: unknown reserve action %q", apperrors.ErrValidation, txn.ReserveAction)
	}
	if txn.Kind != expected {
		return fmt.Errorf("%w: %s (%s must be recorded as %s)", apperrors.ErrValidation, ErrReservePairing, txn.ReserveAction, expected)
	}

	if !txn.Quantity.IsPositive() {
		return fmt.Errorf("%w: reserve event quantity must be positive", apperrors.ErrValidation)
	}
	if txn.ReserveAction != domain.ReserveAdjust && !txn.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: reserve event exchange rate must be positive", apperrors.ErrValidation)
	}

	needsStock := txn.ReserveAction == domain.ReserveSell ||
		(txn.ReserveAction == domain.ReserveAdjust && txn.Direction == domain.AdjustDecrease)
	if !needsStock {
		return nil
	}

	onHand := decimal.Zero
	position, err := s.reserveSvc.Position(ctx, txn.CurrencyCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to derive reserve position for %s: %w", txn.CurrencyCode, err)
		}
		// no events yet: position is empty, not an error
	} else {
		onHand = position.QuantityOnHand
	}

	if txn.Quantity.GreaterThan(onHand) {
		return fmt.Errorf("%w: cannot sell %s %s, only %s on hand",
			apperrors.ErrInsufficientReserve, txn.Quantity, txn.CurrencyCode, onHand)
	}
	return nil
}

func (s *transactionService) requireActiveAccount(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}
	return nil
}

// GetTransactionByID fetches one record, voided or not.
func (s *transactionService) GetTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	txn, err := s.txnRepo.FindTransactionByID(ctx, txnID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction", slog.String("error", err.Error()), slog.String("txn_id", txnID))
		}
		return nil, err
	}
	return txn, nil
}

// VoidTransaction flips IsActive off. A voided reserve buy must not leave the
// position short of quantity that later sells already consumed.
func (s *transactionService) VoidTransaction(ctx context.Context, txnID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, txnID)
	if err != nil {
		return err
	}
	if !txn.IsActive {
		return fmt.Errorf("%w: transaction %s is already void", apperrors.ErrConflict, txnID)
	}

	if txn.ReserveAction == domain.ReserveBuy {
		position, err := s.reserveSvc.Position(ctx, txn.CurrencyCode)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to derive reserve position for %s: %w", txn.CurrencyCode, err)
		}
		if position != nil && position.QuantityOnHand.LessThan(txn.Quantity) {
			return fmt.Errorf("%w: voiding buy %s would drive the %s reserve negative",
				apperrors.ErrConflict, txnID, txn.CurrencyCode)
		}
	}

	if err := s.txnRepo.DeactivateTransaction(ctx, txnID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to void transaction", slog.String("error", err.Error()), slog.String("txn_id", txnID))
		return err
	}
	logger.Info("Transaction voided", slog.String("txn_id", txnID))
	return nil
}
