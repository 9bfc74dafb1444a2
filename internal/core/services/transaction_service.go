package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
)

// transactionService manages manual treasury transactions (deposits and
// expenses). Sale-linked transactions only change through their sale, so the
// balance and the transaction log stay consistent no matter which path wrote
// them.
type transactionService struct {
	txnRepo portsrepo.TransactionRepositoryFacade
	retry   RetryPolicy
}

// NewTransactionService creates a new manual-transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, retry RetryPolicy) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo, retry: retry}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// checkManualAmount enforces the sign convention for manual ledger entries:
// amounts are non-zero, deposits positive, expenses negative.
func checkManualAmount(txnType domain.TransactionType, amount decimal.Decimal) error {
	if amount.IsZero() {
		return fmt.Errorf("%w: transaction amount must be non-zero", apperrors.ErrValidation)
	}
	if txnType == domain.TxnDeposit && amount.IsNegative() {
		return fmt.Errorf("%w: a deposit must have a positive amount", apperrors.ErrValidation)
	}
	if txnType == domain.TxnExpense && amount.IsPositive() {
		return fmt.Errorf("%w: an expense must have a negative amount", apperrors.ErrValidation)
	}
	return nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := loggerFromCtx(ctx)

	amount := req.Amount.Round(2)
	if err := checkManualAmount(req.Type, amount); err != nil {
		return nil, err
	}

	txnDate := time.Now()
	if req.TransactionDate != nil {
		parsed, err := time.Parse(saleDateLayout, *req.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, *req.TransactionDate)
		}
		txnDate = parsed
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		Type:            req.Type,
		Amount:          amount,
		Description:     req.Description,
		TransactionDate: txnDate,
		RelatedEntity:   domain.RelatedManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	err := retryOnConflict(ctx, s.retry, func() error {
		return s.txnRepo.SaveTransaction(ctx, txn, amount)
	})
	if err != nil {
		logger.Error("Failed to save manual transaction", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Manual transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", amount.String()),
	)
	return &txn, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, updaterUserID string) (*domain.Transaction, error) {
	logger := loggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if existing.RelatedEntity == domain.RelatedSale {
		return nil, fmt.Errorf("%w: sale transactions change only through their sale", apperrors.ErrForbidden)
	}

	txn := *existing
	if req.Type != nil {
		txn.Type = *req.Type
	}
	if req.Amount != nil {
		txn.Amount = req.Amount.Round(2)
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	// The resulting type/amount pair must satisfy the same sign convention
	// as a fresh entry, whichever of the two the patch touched.
	if err := checkManualAmount(txn.Type, txn.Amount); err != nil {
		return nil, err
	}
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = updaterUserID

	// The balance moves by the difference between the new and old amounts.
	balanceDelta := txn.Amount.Sub(existing.Amount)
	err = retryOnConflict(ctx, s.retry, func() error {
		return s.txnRepo.UpdateTransaction(ctx, txn, balanceDelta)
	})
	if err != nil {
		logger.Error("Failed to update manual transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}
	return &txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	logger := loggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if existing.RelatedEntity == domain.RelatedSale {
		return fmt.Errorf("%w: sale transactions are removed with their sale", apperrors.ErrForbidden)
	}

	err = retryOnConflict(ctx, s.retry, func() error {
		return s.txnRepo.DeleteTransaction(ctx, transactionID, existing.Amount.Neg())
	})
	if err != nil {
		logger.Error("Failed to delete manual transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.txnRepo.ListTransactions(ctx, limit, offset)
}
