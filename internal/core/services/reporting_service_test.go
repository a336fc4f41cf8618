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
	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/core/services"
	"github.com/zamzamtravels/erp_backend/internal/dto"
)

// MockLedgerService mocks the ledger facade for reporting tests.
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) GetStatement(ctx context.Context, accountID string, params dto.StatementParams) (*dto.StatementResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatementResponse), args.Error(1)
}

func (m *MockLedgerService) SummarizeParty(ctx context.Context, partyID string, from, to *time.Time) (*domain.PartySummary, error) {
	args := m.Called(ctx, partyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartySummary), args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockLedgerSvc   *MockLedgerService
	mockReserveSvc  *MockReserveService
	mockAccountRepo *MockAccountRepository
	mockPartyRepo   *MockPartyRepository
	service         portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockReserveSvc = new(MockReserveService)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewReportingService(suite.mockLedgerSvc, suite.mockReserveSvc, suite.mockAccountRepo, suite.mockPartyRepo)
}

func (suite *ReportingServiceTestSuite) TestDashboard_ComposesProjections() {
	ctx := context.Background()

	positions := []domain.CurrencyPosition{
		{
			CurrencyCode:        "USD",
			QuantityOnHand:      decimal.NewFromInt(70),
			CostBasisTotal:      decimal.NewFromInt(7700),
			WeightedAverageCost: decimal.NewFromInt(110),
			LastSellRate:        decimal.NewFromInt(115),
		},
	}
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Name: "Main Bank", Kind: domain.AccountBank, IsActive: true},
		{AccountID: uuid.NewString(), Name: "Closed", Kind: domain.AccountCash, IsActive: false},
	}

	suite.mockReserveSvc.On("RealizedProfit", ctx, (*time.Time)(nil), (*time.Time)(nil)).
		Return(decimal.NewFromInt(350), []domain.RealizedSale{}, nil).Once()
	suite.mockReserveSvc.On("Positions", ctx).Return(positions, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, 0, 0).Return(accounts, nil).Once()
	suite.mockLedgerSvc.On("GetBalance", ctx, accounts[0].AccountID).Return(decimal.NewFromInt(4790), nil).Once()

	summary, err := suite.service.Dashboard(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.True(summary.RealizedProfit.Equal(decimal.NewFromInt(350)))
	// reference rate is the last sell rate: 70 x 115
	suite.True(summary.TotalReserveValue.Equal(decimal.NewFromInt(8050)))
	// inactive accounts are skipped
	suite.Require().Len(summary.AccountBalances, 1)
	suite.True(summary.AccountBalances[0].Balance.Equal(decimal.NewFromInt(4790)))
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestPartySummary_AttachesPartyMetadata() {
	ctx := context.Background()
	party := domain.Party{
		PartyID: uuid.NewString(),
		Kind:    domain.PartyVendor,
		Name:    "Saudi Hotel Vendor",
	}
	totals := &domain.PartySummary{
		PartyID:       party.PartyID,
		TotalPaid:     decimal.NewFromInt(1000),
		TotalReceived: decimal.NewFromInt(400),
		TotalCharges:  decimal.NewFromInt(50),
		NetPosition:   decimal.NewFromInt(-650),
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, party.PartyID).Return(&party, nil).Once()
	suite.mockLedgerSvc.On("SummarizeParty", ctx, party.PartyID, (*time.Time)(nil), (*time.Time)(nil)).Return(totals, nil).Once()

	summary, err := suite.service.PartySummary(ctx, party.PartyID, nil, nil)

	suite.Require().NoError(err)
	suite.Equal("Saudi Hotel Vendor", summary.PartyName)
	suite.Equal(domain.PartyVendor, summary.Kind)
	suite.True(summary.NetPosition.Equal(decimal.NewFromInt(-650)))
}

func (suite *ReportingServiceTestSuite) TestPartySummary_UnknownParty() {
	ctx := context.Background()
	missing := uuid.NewString()
	suite.mockPartyRepo.On("FindPartyByID", ctx, missing).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PartySummary(ctx, missing, nil, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "SummarizeParty", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
