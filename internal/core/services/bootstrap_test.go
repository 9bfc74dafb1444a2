package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
	"github.com/eskansoft/eskan_sales_app/internal/core/services"
	"github.com/eskansoft/eskan_sales_app/internal/utils"
	"github.com/eskansoft/eskan_sales_app/pkg/config"
)

// --- Test Suite ---
type BootstrapTestSuite struct {
	suite.Suite
	mockTreasury *MockTreasuryRepository
	mockRates    *MockRatesRepository
	mockUsers    *MockUserRepository
	repos        *portsrepo.RepositoryProvider
	cfg          *config.Config
}

func (suite *BootstrapTestSuite) SetupTest() {
	suite.mockTreasury = new(MockTreasuryRepository)
	suite.mockRates = new(MockRatesRepository)
	suite.mockUsers = new(MockUserRepository)
	suite.repos = &portsrepo.RepositoryProvider{
		TreasuryRepo: suite.mockTreasury,
		RatesRepo:    suite.mockRates,
		UserRepo:     suite.mockUsers,
	}
	suite.cfg = &config.Config{
		BootstrapAdminUsername: "admin",
		BootstrapAdminPassword: "first-run-secret",
	}
}

// --- Test Cases ---

func (suite *BootstrapTestSuite) TestSeedDefaults_EmptyDatabase() {
	ctx := context.Background()

	suite.mockTreasury.On("GetOrCreateTreasury", ctx).Return(&domain.Treasury{}, nil).Once()

	for _, propertyType := range []string{"apartment", "commercial", "administrative", "medical"} {
		suite.mockRates.On("FindRatesByPropertyType", ctx, propertyType).
			Return(nil, apperrors.ErrNotFound).Once()
		suite.mockRates.On("SaveRates", ctx, mock.MatchedBy(func(b domain.PropertyTypeRates) bool {
			return b.PropertyType == propertyType &&
				b.Rates.VATRate.Equal(decimal.RequireFromString("0.14")) &&
				b.Rates.SalesTaxRate.Equal(decimal.RequireFromString("0.05")) &&
				b.Rates.AnnualTaxRate.Equal(decimal.RequireFromString("0.225")) &&
				b.Rates.SalesManagerCommission.Equal(decimal.RequireFromString("0.003")) &&
				b.Rates.CompanyCommissionRate.IsZero() &&
				b.CreatedBy == "system"
		})).Return(nil).Once()
	}

	suite.mockUsers.On("FindUserByUsername", ctx, "admin").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUsers.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "admin" &&
			u.Role == domain.RoleAdmin &&
			u.CreatedBy == "system" &&
			utils.CheckPasswordHash("first-run-secret", u.PasswordHash)
	})).Return(nil).Once()

	err := services.SeedDefaults(ctx, suite.repos, suite.cfg)

	suite.Require().NoError(err)
	suite.mockTreasury.AssertExpectations(suite.T())
	suite.mockRates.AssertExpectations(suite.T())
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *BootstrapTestSuite) TestSeedDefaults_ExistingRowsUntouched() {
	ctx := context.Background()

	suite.mockTreasury.On("GetOrCreateTreasury", ctx).Return(&domain.Treasury{}, nil).Once()
	suite.mockRates.On("FindRatesByPropertyType", ctx, mock.Anything).
		Return(&domain.PropertyTypeRates{}, nil).Times(4)
	suite.mockUsers.On("FindUserByUsername", ctx, "admin").
		Return(&domain.User{Username: "admin", Role: domain.RoleAdmin}, nil).Once()

	err := services.SeedDefaults(ctx, suite.repos, suite.cfg)

	suite.Require().NoError(err)
	suite.mockRates.AssertNotCalled(suite.T(), "SaveRates", mock.Anything, mock.Anything)
	suite.mockUsers.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *BootstrapTestSuite) TestSeedDefaults_SkipsAdminWhenPasswordUnset() {
	ctx := context.Background()
	suite.cfg.BootstrapAdminPassword = ""

	suite.mockTreasury.On("GetOrCreateTreasury", ctx).Return(&domain.Treasury{}, nil).Once()
	suite.mockRates.On("FindRatesByPropertyType", ctx, mock.Anything).
		Return(&domain.PropertyTypeRates{}, nil).Times(4)

	err := services.SeedDefaults(ctx, suite.repos, suite.cfg)

	suite.Require().NoError(err)
	suite.mockUsers.AssertNotCalled(suite.T(), "FindUserByUsername", mock.Anything, mock.Anything)
	suite.mockUsers.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *BootstrapTestSuite) TestSeedDefaults_TreasuryErrorPropagates() {
	ctx := context.Background()

	suite.mockTreasury.On("GetOrCreateTreasury", ctx).
		Return(nil, errors.New("connection refused")).Once()

	err := services.SeedDefaults(ctx, suite.repos, suite.cfg)

	suite.Require().Error(err)
	suite.mockRates.AssertNotCalled(suite.T(), "FindRatesByPropertyType", mock.Anything, mock.Anything)
}

func TestBootstrapTestSuite(t *testing.T) {
	suite.Run(t, new(BootstrapTestSuite))
}
