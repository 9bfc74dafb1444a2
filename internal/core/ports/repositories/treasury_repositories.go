package repositories

import (
	"context"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TreasuryRepositoryFacade owns the singleton treasury row.
//
// Mutators lock the row (SELECT ... FOR UPDATE) for the whole
// read-modify-write so concurrent posts cannot lose updates; lock or
// serialization failures surface as apperrors.ErrConcurrencyConflict for the
// caller's retry loop. The row is created lazily with a zero balance the
// first time any operation runs.
type TreasuryRepositoryFacade interface {
	GetOrCreateTreasury(ctx context.Context) (*domain.Treasury, error)

	// AdjustBalance adds delta (which may be negative) to the current
	// balance and stamps last_updated, returning the updated row.
	AdjustBalance(ctx context.Context, delta decimal.Decimal) (*domain.Treasury, error)

	// SetBalance overwrites the balance with newBalance and, in the same
	// database transaction, inserts txn as the auditable adjustment record.
	// The repository fills txn.Amount with the delta versus the prior
	// balance, which is only known once the row is locked.
	SetBalance(ctx context.Context, newBalance decimal.Decimal, txn domain.Transaction) (*domain.Treasury, error)
}
