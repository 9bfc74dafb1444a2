package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
)

// PgxTransactionRepository persists treasury transactions. Mutators run the
// row write and the treasury balance adjustment in one database transaction.
type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, type, amount, description, transaction_date,
	related_sale_id, related_entity_type,
	created_at, created_by, last_updated_at, last_updated_by
`

// insertTransaction writes one transaction row inside tx. Shared with the
// sale and treasury repositories, whose units of work post entries too.
func insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	relatedSaleID := nullableString(txn.RelatedSaleID)
	_, err := tx.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		txn.TransactionID,
		txn.Type,
		txn.Amount,
		txn.Description,
		txn.TransactionDate,
		relatedSaleID,
		txn.RelatedEntity,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	return mapPgError(err)
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var relatedSaleID *string
	err := row.Scan(
		&txn.TransactionID,
		&txn.Type,
		&txn.Amount,
		&txn.Description,
		&txn.TransactionDate,
		&relatedSaleID,
		&txn.RelatedEntity,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	if relatedSaleID != nil {
		txn.RelatedSaleID = *relatedSaleID
	}
	return &txn, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// SaveTransaction inserts the transaction and applies balanceDelta to the
// treasury atomically.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return err
	}
	if _, err := applyTreasuryDelta(ctx, tx, balanceDelta, time.Now()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction %s: %w", txn.TransactionID, mapPgError(err))
	}
	return nil
}

// UpdateTransaction rewrites the mutable fields and shifts the balance by
// balanceDelta atomically.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET type = $2, amount = $3, description = $4, transaction_date = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1;
	`,
		txn.TransactionID,
		txn.Type,
		txn.Amount,
		txn.Description,
		txn.TransactionDate,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := applyTreasuryDelta(ctx, tx, balanceDelta, time.Now()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit update of transaction %s: %w", txn.TransactionID, mapPgError(err))
	}
	return nil
}

// DeleteTransaction removes the row and applies the reversal delta
// atomically.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceDelta decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := applyTreasuryDelta(ctx, tx, balanceDelta, time.Now()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete of transaction %s: %w", transactionID, mapPgError(err))
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;
	`, transactionID)
	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", mapPgError(err))
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	return transactions, rows.Err()
}

// SumTransactionAmounts returns the signed sum over all posted transactions.
func (r *PgxTransactionRepository) SumTransactionAmounts(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM transactions;
	`).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", mapPgError(err))
	}
	return sum, nil
}
