package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
)

// treasuryService owns the single running balance. All mutations are atomic
// read-modify-writes at the repository and retried here on lock conflicts.
type treasuryService struct {
	treasuryRepo portsrepo.TreasuryRepositoryFacade
	retry        RetryPolicy
}

// NewTreasuryService creates a new treasury service.
func NewTreasuryService(treasuryRepo portsrepo.TreasuryRepositoryFacade, retry RetryPolicy) portssvc.TreasurySvcFacade {
	return &treasuryService{treasuryRepo: treasuryRepo, retry: retry}
}

var _ portssvc.TreasurySvcFacade = (*treasuryService)(nil)

func (s *treasuryService) GetTreasury(ctx context.Context) (*domain.Treasury, error) {
	return s.treasuryRepo.GetOrCreateTreasury(ctx)
}

func (s *treasuryService) Add(ctx context.Context, amount decimal.Decimal) (*domain.Treasury, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount to add must be positive", apperrors.ErrValidation)
	}
	return s.adjust(ctx, amount)
}

func (s *treasuryService) Subtract(ctx context.Context, amount decimal.Decimal) (*domain.Treasury, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount to subtract must be positive", apperrors.ErrValidation)
	}
	return s.adjust(ctx, amount.Neg())
}

// Set overwrites the balance and posts an ADJUSTMENT transaction so manual
// corrections stay auditable. The transaction's amount is the delta versus
// the prior balance, filled in by the repository under the row lock.
func (s *treasuryService) Set(ctx context.Context, amount decimal.Decimal, reason string, userID string) (*domain.Treasury, error) {
	logger := loggerFromCtx(ctx)
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a reason is required to set the balance", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		Type:            domain.TxnAdjustment,
		Description:     fmt.Sprintf("Balance set to %s: %s", amount.Round(2), reason),
		TransactionDate: now,
		RelatedEntity:   domain.RelatedManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var treasury *domain.Treasury
	err := retryOnConflict(ctx, s.retry, func() error {
		var innerErr error
		treasury, innerErr = s.treasuryRepo.SetBalance(ctx, amount.Round(2), txn)
		return innerErr
	})
	if err != nil {
		logger.Error("Failed to set treasury balance", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Treasury balance set",
		slog.String("new_balance", treasury.CurrentBalance.String()),
		slog.String("set_by", userID),
	)
	return treasury, nil
}

func (s *treasuryService) adjust(ctx context.Context, delta decimal.Decimal) (*domain.Treasury, error) {
	var treasury *domain.Treasury
	err := retryOnConflict(ctx, s.retry, func() error {
		var innerErr error
		treasury, innerErr = s.treasuryRepo.AdjustBalance(ctx, delta.Round(2))
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return treasury, nil
}
