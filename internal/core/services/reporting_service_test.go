package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetSalesSummary(ctx context.Context, from *time.Time, to *time.Time) (*domain.SummaryReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SummaryReport), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlySales(ctx context.Context, year int) ([]domain.MonthlySalesReport, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlySalesReport), args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockTreasuryRepo  *MockTreasuryRepository
	mockTxnRepo       *MockTransactionRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockTreasuryRepo = new(MockTreasuryRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockTreasuryRepo, suite.mockTxnRepo)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestGetSummary_FillsTreasuryBalance() {
	ctx := context.Background()
	balance := decimal.RequireFromString("29250.00")

	suite.mockReportingRepo.On("GetSalesSummary", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(&domain.SummaryReport{
		SalesCount:             3,
		TotalUnitPriceVolume:   decimal.RequireFromString("3000000.00"),
		TotalCompanyCommission: decimal.RequireFromString("150000.00"),
		TotalNetCompanyIncome:  decimal.RequireFromString("87750.00"),
		TransactionCount:       3,
	}, nil).Once()
	suite.mockTreasuryRepo.On("GetOrCreateTreasury", ctx).Return(&domain.Treasury{CurrentBalance: balance}, nil).Once()
	suite.mockTxnRepo.On("SumTransactionAmounts", ctx).Return(balance, nil).Once()

	summary, err := suite.service.GetSummary(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.Equal(int64(3), summary.SalesCount)
	suite.True(summary.CurrentBalance.Equal(balance))
	suite.mockReportingRepo.AssertExpectations(suite.T())
	suite.mockTreasuryRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetSummary_SurvivesLedgerDrift() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetSalesSummary", ctx, (*time.Time)(nil), (*time.Time)(nil)).
		Return(&domain.SummaryReport{}, nil).Once()
	suite.mockTreasuryRepo.On("GetOrCreateTreasury", ctx).
		Return(&domain.Treasury{CurrentBalance: decimal.RequireFromString("100.00")}, nil).Once()
	// The sum disagrees with the balance; the report still comes back, the
	// drift is only logged.
	suite.mockTxnRepo.On("SumTransactionAmounts", ctx).
		Return(decimal.RequireFromString("90.00"), nil).Once()

	summary, err := suite.service.GetSummary(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.True(summary.CurrentBalance.Equal(decimal.RequireFromString("100.00")))
}

func (suite *ReportingServiceTestSuite) TestGetMonthlySales_DefaultsToCurrentYear() {
	ctx := context.Background()
	currentYear := time.Now().Year()

	suite.mockReportingRepo.On("GetMonthlySales", ctx, currentYear).
		Return([]domain.MonthlySalesReport{}, nil).Once()

	_, err := suite.service.GetMonthlySales(ctx, 0)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetMonthlySales_ExplicitYear() {
	ctx := context.Background()
	reports := []domain.MonthlySalesReport{
		{Month: "2025-01", SalesCount: 2, NetCompanyIncome: decimal.RequireFromString("58500.00")},
		{Month: "2025-03", SalesCount: 1, NetCompanyIncome: decimal.RequireFromString("-750.00")},
	}
	suite.mockReportingRepo.On("GetMonthlySales", ctx, 2025).Return(reports, nil).Once()

	got, err := suite.service.GetMonthlySales(ctx, 2025)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.Equal("2025-01", got[0].Month)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
