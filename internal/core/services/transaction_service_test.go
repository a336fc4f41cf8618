package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zamzamtravels/erp_backend/internal/apperrors"
	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/core/services"
	"github.com/zamzamtravels/erp_backend/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	mockReserveSvc  *MockReserveService
	service         portssvc.TransactionSvcFacade
	userID          string
	account         domain.Account
	otherAccount    domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockReserveSvc = new(MockReserveService)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockReserveSvc)

	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:    uuid.NewString(),
		Name:         "Main Bank",
		Kind:         domain.AccountBank,
		CurrencyCode: "BDT",
		IsActive:     true,
	}
	suite.otherAccount = domain.Account{
		AccountID:    uuid.NewString(),
		Name:         "Office Cash",
		Kind:         domain.AccountCash,
		CurrencyCode: "BDT",
		IsActive:     true,
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CreditSuccess() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Kind:            "CREDIT",
		Amount:          decimal.NewFromInt(1000),
		TargetAccountID: suite.account.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TxnID)
	suite.Equal(domain.KindCredit, txn.Kind)
	suite.True(txn.IsActive)
	suite.Equal(suite.userID, txn.CreatedBy)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_LegacyAliasesNormalized() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Kind:      "DEBIT",
		Amount:    decimal.NewFromInt(500),
		AccountID: suite.account.AccountID,
		Fee:       decimal.NewFromInt(20),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TargetAccountID == suite.account.AccountID && t.Charge.Equal(decimal.NewFromInt(20))
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.account.AccountID, txn.TargetAccountID)
	suite.True(txn.Charge.Equal(decimal.NewFromInt(20)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferSameEndpointsRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Kind:          "TRANSFER",
		Amount:        decimal.NewFromInt(100),
		FromAccountID: suite.account.AccountID,
		ToAccountID:   suite.account.AccountID,
	}

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Kind:            "CREDIT",
		Amount:          decimal.Zero,
		TargetAccountID: suite.account.AccountID,
	}

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccountRejected() {
	ctx := context.Background()
	inactive := suite.account
	inactive.IsActive = false
	req := dto.CreateTransactionRequest{
		Kind:            "CREDIT",
		Amount:          decimal.NewFromInt(100),
		TargetAccountID: inactive.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, inactive.AccountID).Return(&inactive, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ReservePairingEnforced() {
	ctx := context.Background()
	// a buy must be recorded as DEBIT; CREDIT should be rejected
	req := dto.CreateTransactionRequest{
		Kind:            "CREDIT",
		Amount:          decimal.NewFromInt(11000),
		TargetAccountID: suite.account.AccountID,
		CurrencyCode:    "USD",
		ReserveAction:   "BUY",
		Quantity:        decimal.NewFromInt(100),
		ExchangeRate:    decimal.NewFromInt(110),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_OversellRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Kind:            "CREDIT",
		Amount:          decimal.NewFromInt(11500),
		TargetAccountID: suite.account.AccountID,
		CurrencyCode:    "USD",
		ReserveAction:   "SELL",
		Quantity:        decimal.NewFromInt(100),
		ExchangeRate:    decimal.NewFromInt(115),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockReserveSvc.On("Position", ctx, "USD").Return(&domain.CurrencyPosition{
		CurrencyCode:   "USD",
		QuantityOnHand: decimal.NewFromInt(70),
	}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientReserve)
	suite.Nil(txn)
	// nothing persisted: the rejected sell leaves no partial state
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveReserveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ConcurrentSellCaughtAtWriteTime() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Kind:            "CREDIT",
		Amount:          decimal.NewFromInt(9200),
		TargetAccountID: suite.account.AccountID,
		CurrencyCode:    "USD",
		ReserveAction:   "SELL",
		Quantity:        decimal.NewFromInt(80),
		ExchangeRate:    decimal.NewFromInt(115),
	}

	// the pre-check sees enough stock, but another sell lands first and the
	// guarded save rejects at commit time
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockReserveSvc.On("Position", ctx, "USD").Return(&domain.CurrencyPosition{
		CurrencyCode:   "USD",
		QuantityOnHand: decimal.NewFromInt(100),
	}, nil).Once()
	suite.mockTxnRepo.On("SaveReserveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(fmt.Errorf("%w: cannot remove 80 USD, only 20 on hand", apperrors.ErrInsufficientReserve)).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientReserve)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SellWithNoHistoryRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Kind:            "CREDIT",
		Amount:          decimal.NewFromInt(115),
		TargetAccountID: suite.account.AccountID,
		CurrencyCode:    "SAR",
		ReserveAction:   "SELL",
		Quantity:        decimal.NewFromInt(1),
		ExchangeRate:    decimal.NewFromInt(115),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockReserveSvc.On("Position", ctx, "SAR").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientReserve)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ReserveBuySuccess() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Kind:            "DEBIT",
		Amount:          decimal.NewFromInt(11000),
		TargetAccountID: suite.account.AccountID,
		CurrencyCode:    "USD",
		ReserveAction:   "BUY",
		Quantity:        decimal.NewFromInt(100),
		ExchangeRate:    decimal.NewFromInt(110),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("SaveReserveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReserveBuy, txn.ReserveAction)
	suite.True(txn.IsReserveEvent())
	// reserve events always take the guarded save path
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_AlreadyVoidConflicts() {
	ctx := context.Background()
	voided := domain.Transaction{
		TxnID:    uuid.NewString(),
		Kind:     domain.KindCredit,
		Amount:   decimal.NewFromInt(100),
		IsActive: false,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, voided.TxnID).Return(&voided, nil).Once()

	err := suite.service.VoidTransaction(ctx, voided.TxnID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_BuyGuardedByRemainingStock() {
	ctx := context.Background()
	buy := domain.Transaction{
		TxnID:         uuid.NewString(),
		Kind:          domain.KindDebit,
		Amount:        decimal.NewFromInt(11000),
		CurrencyCode:  "USD",
		ReserveAction: domain.ReserveBuy,
		Quantity:      decimal.NewFromInt(100),
		IsActive:      true,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, buy.TxnID).Return(&buy, nil).Once()
	suite.mockReserveSvc.On("Position", ctx, "USD").Return(&domain.CurrencyPosition{
		CurrencyCode:   "USD",
		QuantityOnHand: decimal.NewFromInt(70),
	}, nil).Once()

	err := suite.service.VoidTransaction(ctx, buy.TxnID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeactivateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_Success() {
	ctx := context.Background()
	txn := domain.Transaction{
		TxnID:    uuid.NewString(),
		Kind:     domain.KindCredit,
		Amount:   decimal.NewFromInt(100),
		IsActive: true,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TxnID).Return(&txn, nil).Once()
	suite.mockTxnRepo.On("DeactivateTransaction", ctx, txn.TxnID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.VoidTransaction(ctx, txn.TxnID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
