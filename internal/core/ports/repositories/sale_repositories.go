package repositories

import (
	"context"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleRepositoryFacade persists sales together with their paired treasury
// transaction and balance delta.
//
// The three *Unit methods are units of work: the sale row, the paired
// transaction row, and the treasury balance adjustment all commit inside one
// database transaction or none do. The treasury row is locked for the
// duration of the write; implementations return
// apperrors.ErrConcurrencyConflict when the lock cannot be acquired so
// callers can retry.
type SaleRepositoryFacade interface {
	// CreateSaleUnit inserts the sale, inserts txn when non-nil, and adds
	// balanceDelta to the treasury balance.
	CreateSaleUnit(ctx context.Context, sale domain.Sale, txn *domain.Transaction, balanceDelta decimal.Decimal) error

	// UpdateSaleUnit rewrites the sale row and reconciles its paired
	// transaction: txn non-nil with a TransactionID updates that row in
	// place, txn non-nil without one inserts a new row, txn nil with
	// removeTxnID set deletes the stale row. balanceDelta is the net
	// treasury effect of the whole edit (new delta minus old delta).
	UpdateSaleUnit(ctx context.Context, sale domain.Sale, txn *domain.Transaction, removeTxnID string, balanceDelta decimal.Decimal) error

	// DeleteSaleUnit removes the sale and its paired transaction (txnID may
	// be empty) and applies balanceDelta to the treasury.
	DeleteSaleUnit(ctx context.Context, saleID string, txnID string, balanceDelta decimal.Decimal) error

	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	FindSaleByUnitCode(ctx context.Context, unitCode string) (*domain.Sale, error)
	ListSales(ctx context.Context, limit int, offset int) ([]domain.Sale, error)
}
