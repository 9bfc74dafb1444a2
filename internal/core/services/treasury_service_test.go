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
)

// --- Mock TreasuryRepository ---
type MockTreasuryRepository struct {
	mock.Mock
}

func (m *MockTreasuryRepository) GetOrCreateTreasury(ctx context.Context) (*domain.Treasury, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Treasury), args.Error(1)
}

func (m *MockTreasuryRepository) AdjustBalance(ctx context.Context, delta decimal.Decimal) (*domain.Treasury, error) {
	args := m.Called(ctx, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Treasury), args.Error(1)
}

func (m *MockTreasuryRepository) SetBalance(ctx context.Context, newBalance decimal.Decimal, txn domain.Transaction) (*domain.Treasury, error) {
	args := m.Called(ctx, newBalance, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Treasury), args.Error(1)
}

// --- Test Suite ---
type TreasuryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTreasuryRepository
	service  portssvc.TreasurySvcFacade
}

func (suite *TreasuryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTreasuryRepository)
	suite.service = services.NewTreasuryService(suite.mockRepo, services.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond})
}

// --- Test Cases ---

func (suite *TreasuryServiceTestSuite) TestGetTreasury() {
	ctx := context.Background()
	expected := &domain.Treasury{CurrentBalance: decimal.RequireFromString("1234.56"), LastUpdated: time.Now()}
	suite.mockRepo.On("GetOrCreateTreasury", ctx).Return(expected, nil).Once()

	treasury, err := suite.service.GetTreasury(ctx)

	suite.Require().NoError(err)
	suite.True(treasury.CurrentBalance.Equal(expected.CurrentBalance))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestAdd() {
	ctx := context.Background()
	amount := decimal.RequireFromString("500.00")
	after := &domain.Treasury{CurrentBalance: decimal.RequireFromString("1500.00")}

	suite.mockRepo.On("AdjustBalance", ctx, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(amount)
	})).Return(after, nil).Once()

	treasury, err := suite.service.Add(ctx, amount)

	suite.Require().NoError(err)
	suite.True(treasury.CurrentBalance.Equal(after.CurrentBalance))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestAdd_RejectsNonPositive() {
	ctx := context.Background()

	_, err := suite.service.Add(ctx, decimal.Zero)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Add(ctx, decimal.RequireFromString("-5"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "AdjustBalance", mock.Anything, mock.Anything)
}

func (suite *TreasuryServiceTestSuite) TestSubtract_NegatesDelta() {
	ctx := context.Background()
	amount := decimal.RequireFromString("200.00")
	after := &domain.Treasury{CurrentBalance: decimal.RequireFromString("800.00")}

	suite.mockRepo.On("AdjustBalance", ctx, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(amount.Neg())
	})).Return(after, nil).Once()

	treasury, err := suite.service.Subtract(ctx, amount)

	suite.Require().NoError(err)
	suite.True(treasury.CurrentBalance.Equal(after.CurrentBalance))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestSet_PostsAdjustmentTransaction() {
	ctx := context.Background()
	userID := uuid.NewString()
	amount := decimal.RequireFromString("10000.00")
	after := &domain.Treasury{CurrentBalance: amount, LastUpdated: time.Now()}

	suite.mockRepo.On("SetBalance", ctx,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(amount) }),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Type == domain.TxnAdjustment &&
				txn.RelatedEntity == domain.RelatedManual &&
				txn.CreatedBy == userID &&
				txn.Description != ""
		}),
	).Return(after, nil).Once()

	treasury, err := suite.service.Set(ctx, amount, "opening balance after audit", userID)

	suite.Require().NoError(err)
	suite.True(treasury.CurrentBalance.Equal(amount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestSet_RequiresReason() {
	ctx := context.Background()

	_, err := suite.service.Set(ctx, decimal.NewFromInt(100), "   ", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TreasuryServiceTestSuite) TestAdd_RetriesOnConflictThenSucceeds() {
	ctx := context.Background()
	amount := decimal.RequireFromString("100.00")
	after := &domain.Treasury{CurrentBalance: decimal.RequireFromString("100.00")}

	suite.mockRepo.On("AdjustBalance", ctx, mock.Anything).Return(nil, apperrors.ErrConcurrencyConflict).Twice()
	suite.mockRepo.On("AdjustBalance", ctx, mock.Anything).Return(after, nil).Once()

	treasury, err := suite.service.Add(ctx, amount)

	suite.Require().NoError(err)
	suite.True(treasury.CurrentBalance.Equal(after.CurrentBalance))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestAdd_RetryBudgetExhausted() {
	ctx := context.Background()

	suite.mockRepo.On("AdjustBalance", ctx, mock.Anything).Return(nil, apperrors.ErrConcurrencyConflict).Times(3)

	_, err := suite.service.Add(ctx, decimal.NewFromInt(100))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrencyConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTreasuryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TreasuryServiceTestSuite))
}
