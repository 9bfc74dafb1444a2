package services

import (
	"context"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
	"github.com/shopspring/decimal"
)

// TreasurySvcFacade exposes the running balance and its mutators. Mutators
// retry internally on concurrency conflicts before surfacing an error.
type TreasurySvcFacade interface {
	GetTreasury(ctx context.Context) (*domain.Treasury, error)
	Add(ctx context.Context, amount decimal.Decimal) (*domain.Treasury, error)
	Subtract(ctx context.Context, amount decimal.Decimal) (*domain.Treasury, error)

	// Set overwrites the balance and posts an ADJUSTMENT transaction
	// recording reason and the delta versus the prior balance.
	Set(ctx context.Context, amount decimal.Decimal, reason string, userID string) (*domain.Treasury, error)
}

// TransactionSvcFacade manages manual treasury transactions. Each mutation
// keeps the balance consistent with the sum of posted amounts.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, updaterUserID string) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error)
}
