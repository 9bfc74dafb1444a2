package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/internal/core/services"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
)

// --- Mock RatesRepository ---
type MockRatesRepository struct {
	mock.Mock
}

func (m *MockRatesRepository) SaveRates(ctx context.Context, rates domain.PropertyTypeRates) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockRatesRepository) FindRatesByPropertyType(ctx context.Context, propertyType string) (*domain.PropertyTypeRates, error) {
	args := m.Called(ctx, propertyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PropertyTypeRates), args.Error(1)
}

func (m *MockRatesRepository) ListRates(ctx context.Context) ([]domain.PropertyTypeRates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PropertyTypeRates), args.Error(1)
}

func (m *MockRatesRepository) UpdateRates(ctx context.Context, rates domain.PropertyTypeRates) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockRatesRepository) DeleteRates(ctx context.Context, propertyType string) error {
	args := m.Called(ctx, propertyType)
	return args.Error(0)
}

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockRatesRepository
	service  portssvc.RateSvcFacade
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRatesRepository)
	suite.service = services.NewRateService(suite.mockRepo)
}

func storedApartmentRates() *domain.PropertyTypeRates {
	return &domain.PropertyTypeRates{
		RatesID:      uuid.NewString(),
		PropertyType: "apartment",
		Rates: domain.RateSet{
			CompanyCommissionRate: decimal.RequireFromString("0.05"),
			VATRate:               decimal.RequireFromString("0.14"),
			SalesTaxRate:          decimal.RequireFromString("0.05"),
			AnnualTaxRate:         decimal.RequireFromString("0.225"),
		},
		AuditFields: domain.AuditFields{CreatedAt: time.Now()},
	}
}

// --- Test Cases ---

func (suite *RateServiceTestSuite) TestResolveRates_UsesStoredBundle() {
	ctx := context.Background()
	suite.mockRepo.On("FindRatesByPropertyType", ctx, "apartment").Return(storedApartmentRates(), nil).Once()

	rates, err := suite.service.ResolveRates(ctx, "apartment", nil)

	suite.Require().NoError(err)
	suite.True(rates.CompanyCommissionRate.Equal(decimal.RequireFromString("0.05")))
	suite.True(rates.VATRate.Equal(decimal.RequireFromString("0.14")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestResolveRates_OverridesWinFieldByField() {
	ctx := context.Background()
	suite.mockRepo.On("FindRatesByPropertyType", ctx, "apartment").Return(storedApartmentRates(), nil).Once()

	customVAT := decimal.RequireFromString("0.10")
	rates, err := suite.service.ResolveRates(ctx, "apartment", &dto.RateOverrides{VATRate: &customVAT})

	suite.Require().NoError(err)
	suite.True(rates.VATRate.Equal(customVAT), "overridden field must win")
	suite.True(rates.CompanyCommissionRate.Equal(decimal.RequireFromString("0.05")),
		"untouched fields must keep the stored value")
	suite.True(rates.AnnualTaxRate.Equal(decimal.RequireFromString("0.225")))
}

func (suite *RateServiceTestSuite) TestResolveRates_MissingPropertyType() {
	ctx := context.Background()
	suite.mockRepo.On("FindRatesByPropertyType", ctx, "castle").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveRates(ctx, "castle", nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateNotFound)
}

func (suite *RateServiceTestSuite) TestResolveRates_EmptyPropertyTypeFallsBackToDefaults() {
	ctx := context.Background()

	commission := decimal.RequireFromString("0.05")
	rates, err := suite.service.ResolveRates(ctx, "", &dto.RateOverrides{CompanyCommissionRate: &commission})

	suite.Require().NoError(err)
	suite.True(rates.CompanyCommissionRate.Equal(commission))
	// The documented defaults fill the unspecified fields.
	suite.True(rates.VATRate.Equal(decimal.RequireFromString("0.14")))
	suite.True(rates.SalesTaxRate.Equal(decimal.RequireFromString("0.05")))
	suite.True(rates.AnnualTaxRate.Equal(decimal.RequireFromString("0.225")))
	suite.True(rates.SalesManagerCommission.Equal(decimal.RequireFromString("0.003")))
	suite.True(rates.SalespersonCommissionRate.IsZero())
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRatesByPropertyType", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestCreateRates_FillsDefaults() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateRatesRequest{
		PropertyType:          "shop",
		CompanyCommissionRate: decimal.RequireFromString("0.07"),
	}

	suite.mockRepo.On("SaveRates", ctx, mock.MatchedBy(func(b domain.PropertyTypeRates) bool {
		return b.PropertyType == "shop" &&
			b.Rates.CompanyCommissionRate.Equal(decimal.RequireFromString("0.07")) &&
			b.Rates.VATRate.Equal(decimal.RequireFromString("0.14")) &&
			b.Rates.AnnualTaxRate.Equal(decimal.RequireFromString("0.225")) &&
			b.CreatedBy == creatorUserID
	})).Return(nil).Once()

	bundle, err := suite.service.CreateRates(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(bundle)
	suite.NotEmpty(bundle.RatesID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestCreateRates_Duplicate() {
	ctx := context.Background()
	req := dto.CreateRatesRequest{
		PropertyType:          "apartment",
		CompanyCommissionRate: decimal.RequireFromString("0.05"),
	}

	suite.mockRepo.On("SaveRates", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	bundle, err := suite.service.CreateRates(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(bundle)
}

func (suite *RateServiceTestSuite) TestUpdateRates_AppliesChanges() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	suite.mockRepo.On("FindRatesByPropertyType", ctx, "apartment").Return(storedApartmentRates(), nil).Once()

	newCommission := decimal.RequireFromString("0.06")
	suite.mockRepo.On("UpdateRates", ctx, mock.MatchedBy(func(b domain.PropertyTypeRates) bool {
		return b.Rates.CompanyCommissionRate.Equal(newCommission) &&
			b.Rates.VATRate.Equal(decimal.RequireFromString("0.14")) &&
			b.LastUpdatedBy == updaterUserID
	})).Return(nil).Once()

	bundle, err := suite.service.UpdateRates(ctx, "apartment", dto.UpdateRatesRequest{
		CompanyCommissionRate: &newCommission,
	}, updaterUserID)

	suite.Require().NoError(err)
	suite.True(bundle.Rates.CompanyCommissionRate.Equal(newCommission))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
