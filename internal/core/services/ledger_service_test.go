package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zamzamtravels/erp_backend/internal/apperrors"
	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	portsrepo "github.com/zamzamtravels/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/core/services"
	"github.com/zamzamtravels/erp_backend/internal/dto"
	"github.com/zamzamtravels/erp_backend/internal/utils/pagination"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.LedgerSvcFacade
	account         domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLedgerService(suite.mockTxnRepo, suite.mockAccountRepo)

	suite.account = domain.Account{
		AccountID:      uuid.NewString(),
		Name:           "Main Bank",
		Kind:           domain.AccountBank,
		CurrencyCode:   "BDT",
		OpeningBalance: decimal.NewFromInt(5000),
		IsActive:       true,
	}
}

func (suite *LedgerServiceTestSuite) TestGetBalance_FoldsOverOpeningBalance() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("SumSignedContributions", ctx, suite.account.AccountID).Return(decimal.NewFromInt(-210), nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.account.AccountID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(4790)))
}

func (suite *LedgerServiceTestSuite) TestGetBalance_AccountNotFound() {
	ctx := context.Background()
	missing := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", ctx, missing).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetBalance(ctx, missing)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestGetStatement_SummaryUsesIdenticalFilter() {
	ctx := context.Background()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	params := dto.StatementParams{
		DateFrom: &from,
		DateTo:   &to,
		Kind:     "DEBIT",
		Params:   pagination.Params{Page: 2, PageSize: 10},
	}

	wantFilter := portsrepo.TransactionFilter{
		AccountID:  suite.account.AccountID,
		Kind:       domain.KindDebit,
		DateFrom:   &from,
		DateTo:     &to,
		ActiveOnly: true,
	}

	txns := []domain.Transaction{{
		TxnID:           uuid.NewString(),
		Kind:            domain.KindDebit,
		Amount:          decimal.NewFromInt(200),
		Charge:          decimal.NewFromInt(10),
		TargetAccountID: suite.account.AccountID,
		TxnDate:         from.AddDate(0, 0, 5),
		IsActive:        true,
	}}
	summary := &domain.ActivitySummary{
		TotalDebit:   decimal.NewFromInt(200),
		TotalCharges: decimal.NewFromInt(10),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("ListAccountTransactions", ctx, wantFilter, 10, 10).Return(txns, int64(15), nil).Once()
	suite.mockTxnRepo.On("SummarizeAccountActivity", ctx, wantFilter).Return(summary, nil).Once()
	suite.mockTxnRepo.On("SumSignedContributions", ctx, suite.account.AccountID).Return(decimal.NewFromInt(-210), nil).Once()

	resp, err := suite.service.GetStatement(ctx, suite.account.AccountID, params)

	suite.Require().NoError(err)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(4790)))
	suite.Require().Len(resp.Items, 1)
	suite.Equal(2, resp.Pagination.Page)
	suite.Equal(int64(15), resp.Pagination.TotalItems)
	suite.Equal(2, resp.Pagination.TotalPages)
	suite.True(resp.Summary.NetChange.Equal(decimal.NewFromInt(-210)))
	// both queries received the exact same filter value
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetStatement_ClampsPagination() {
	ctx := context.Background()
	params := dto.StatementParams{
		Params: pagination.Params{Page: -3, PageSize: 9999},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("ListAccountTransactions", ctx, mock.AnythingOfType("repositories.TransactionFilter"), pagination.MaxPageSize, 0).
		Return([]domain.Transaction{}, int64(0), nil).Once()
	suite.mockTxnRepo.On("SummarizeAccountActivity", ctx, mock.AnythingOfType("repositories.TransactionFilter")).
		Return(&domain.ActivitySummary{}, nil).Once()
	suite.mockTxnRepo.On("SumSignedContributions", ctx, suite.account.AccountID).Return(decimal.Zero, nil).Once()

	resp, err := suite.service.GetStatement(ctx, suite.account.AccountID, params)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Pagination.Page)
	suite.Equal(pagination.MaxPageSize, resp.Pagination.PageSize)
}

func (suite *LedgerServiceTestSuite) TestGetStatement_UnknownKindRejected() {
	ctx := context.Background()
	params := dto.StatementParams{Kind: "WITHDRAWAL"}

	_, err := suite.service.GetStatement(ctx, suite.account.AccountID, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetStatement_InvalidDateRange() {
	ctx := context.Background()
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	params := dto.StatementParams{DateFrom: &from, DateTo: &to}

	_, err := suite.service.GetStatement(ctx, suite.account.AccountID, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestSummarizeParty_PassesWindow() {
	ctx := context.Background()
	partyID := uuid.NewString()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	wantFilter := portsrepo.TransactionFilter{
		PartyID:    partyID,
		DateFrom:   &from,
		ActiveOnly: true,
	}
	summary := &domain.PartySummary{
		PartyID:       partyID,
		TotalPaid:     decimal.NewFromInt(1000),
		TotalReceived: decimal.NewFromInt(400),
		TotalCharges:  decimal.NewFromInt(50),
		NetPosition:   decimal.NewFromInt(-650),
	}
	suite.mockTxnRepo.On("SummarizePartyActivity", ctx, wantFilter).Return(summary, nil).Once()

	got, err := suite.service.SummarizeParty(ctx, partyID, &from, nil)

	suite.Require().NoError(err)
	suite.True(got.NetPosition.Equal(decimal.NewFromInt(-650)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
