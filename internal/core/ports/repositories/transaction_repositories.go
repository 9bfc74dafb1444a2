package repositories

import (
	"context"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepositoryFacade persists manual treasury transactions. Every
// mutator also applies balanceDelta to the treasury balance inside the same
// database transaction, keeping the balance equal to the sum of all
// transaction amounts at all times.
type TransactionRepositoryFacade interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error
	DeleteTransaction(ctx context.Context, transactionID string, balanceDelta decimal.Decimal) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error)
	// SumTransactionAmounts returns the signed sum over every posted
	// transaction. Used by reporting and by the ledger conservation check.
	SumTransactionAmounts(ctx context.Context) (decimal.Decimal, error)
}
