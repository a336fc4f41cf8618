package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zamzamtravels/erp_backend/internal/apperrors"
	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	portsrepo "github.com/zamzamtravels/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/dto"
	"github.com/zamzamtravels/erp_backend/internal/middleware"
)

// accountService manages the account registry. It never touches balances;
// those belong to the ledger projection.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates the account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new money holding place.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		Kind:           domain.AccountKind(req.Kind),
		CurrencyCode:   strings.ToUpper(req.CurrencyCode),
		OpeningBalance: req.OpeningBalance,
		Description:    req.Description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if account.Name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("kind", string(account.Kind)))
	return &account, nil
}

// GetAccountByID fetches one registry entry.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts returns a page of registry entries.
func (s *accountService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// DeactivateAccount soft-deletes a registry entry. Its history stays in the
// log; only new transactions against it are refused.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
