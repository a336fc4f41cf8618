package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	"github.com/zamzamtravels/erp_backend/internal/dto"
)

// TransactionSvcFacade is the only write path into the transaction log.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error)
	VoidTransaction(ctx context.Context, txnID, userID string) error
}

// LedgerSvcFacade derives balances and statements from the log.
type LedgerSvcFacade interface {
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	GetStatement(ctx context.Context, accountID string, params dto.StatementParams) (*dto.StatementResponse, error)
	SummarizeParty(ctx context.Context, partyID string, from, to *time.Time) (*domain.PartySummary, error)
}

// ReserveSvcFacade derives per-currency positions and realized P&L.
type ReserveSvcFacade interface {
	Positions(ctx context.Context) ([]domain.CurrencyPosition, error)
	Position(ctx context.Context, currencyCode string) (*domain.CurrencyPosition, error)
	RealizedProfit(ctx context.Context, from, to *time.Time) (decimal.Decimal, []domain.RealizedSale, error)
}

// ReportingSvcFacade composes ledger and reserve output; it performs no
// arithmetic of its own beyond summation of already-derived figures.
type ReportingSvcFacade interface {
	Dashboard(ctx context.Context, from, to *time.Time) (*domain.DashboardSummary, error)
	PartySummary(ctx context.Context, partyID string, from, to *time.Time) (*domain.PartySummary, error)
}

// AccountSvcFacade manages the account registry boundary.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID, userID string) error
}

// PartySvcFacade reads the vendor/agent registry.
type PartySvcFacade interface {
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	ListParties(ctx context.Context, kind string, limit, offset int) ([]domain.Party, error)
}

// AuthSvcFacade is the minimal login surface.
type AuthSvcFacade interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResponse, error)
}

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	Txn       TransactionSvcFacade
	Ledger    LedgerSvcFacade
	Reserve   ReserveSvcFacade
	Reporting ReportingSvcFacade
	Account   AccountSvcFacade
	Party     PartySvcFacade
	Auth      AuthSvcFacade
}
