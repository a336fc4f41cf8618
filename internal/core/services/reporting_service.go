package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	portsrepo "github.com/zamzamtravels/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/middleware"
)

// reportingService composes the ledger and reserve projections into report
// shapes. It adds no arithmetic of its own beyond summing already-derived
// figures, so every number it returns can be traced back to one of the two
// underlying folds.
type reportingService struct {
	ledgerSvc   portssvc.LedgerSvcFacade
	reserveSvc  portssvc.ReserveSvcFacade
	accountRepo portsrepo.AccountRepository
	partyRepo   portsrepo.PartyRepository
}

// NewReportingService creates the reporting facade.
func NewReportingService(ledgerSvc portssvc.LedgerSvcFacade, reserveSvc portssvc.ReserveSvcFacade, accountRepo portsrepo.AccountRepository, partyRepo portsrepo.PartyRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		ledgerSvc:   ledgerSvc,
		reserveSvc:  reserveSvc,
		accountRepo: accountRepo,
		partyRepo:   partyRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Dashboard assembles realized profit, current positions with their reference
// valuation, and the derived balance of every active account.
func (s *reportingService) Dashboard(ctx context.Context, from, to *time.Time) (*domain.DashboardSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	realized, _, err := s.reserveSvc.RealizedProfit(ctx, from, to)
	if err != nil {
		return nil, err
	}

	positions, err := s.reserveSvc.Positions(ctx)
	if err != nil {
		return nil, err
	}

	totalReserve := decimal.Zero
	for _, p := range positions {
		totalReserve = totalReserve.Add(p.ReserveValue())
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, 0, 0)
	if err != nil {
		logger.Error("Failed to list accounts for dashboard", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	balances := make([]domain.AccountBalance, 0, len(accounts))
	for i := range accounts {
		if !accounts[i].IsActive {
			continue
		}
		balance, err := s.ledgerSvc.GetBalance(ctx, accounts[i].AccountID)
		if err != nil {
			return nil, err
		}
		balances = append(balances, domain.AccountBalance{
			AccountID: accounts[i].AccountID,
			Name:      accounts[i].Name,
			Kind:      accounts[i].Kind,
			Balance:   balance,
		})
	}

	return &domain.DashboardSummary{
		From:              from,
		To:                to,
		RealizedProfit:    realized,
		TotalReserveValue: totalReserve,
		Positions:         positions,
		AccountBalances:   balances,
	}, nil
}

// PartySummary resolves the party and attaches its display metadata to the
// ledger-derived totals.
func (s *reportingService) PartySummary(ctx context.Context, partyID string, from, to *time.Time) (*domain.PartySummary, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	summary, err := s.ledgerSvc.SummarizeParty(ctx, partyID, from, to)
	if err != nil {
		return nil, err
	}

	summary.PartyID = party.PartyID
	summary.PartyName = party.Name
	summary.Kind = party.Kind
	return summary, nil
}
