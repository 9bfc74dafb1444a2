package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
)

// PgxTreasuryRepository manages the singleton treasury row.
type PgxTreasuryRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTreasuryRepository creates a new repository for the treasury.
func NewPgxTreasuryRepository(pool *pgxpool.Pool) portsrepo.TreasuryRepositoryFacade {
	return &PgxTreasuryRepository{pool: pool}
}

var _ portsrepo.TreasuryRepositoryFacade = (*PgxTreasuryRepository)(nil)

func (r *PgxTreasuryRepository) GetOrCreateTreasury(ctx context.Context) (*domain.Treasury, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now()
	if err := ensureTreasury(ctx, tx, now); err != nil {
		return nil, err
	}

	var t domain.Treasury
	err = tx.QueryRow(ctx, `
		SELECT current_balance, last_updated FROM treasury WHERE treasury_id = 1;
	`).Scan(&t.CurrentBalance, &t.LastUpdated)
	if err != nil {
		return nil, mapPgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit treasury read: %w", mapPgError(err))
	}
	return &t, nil
}

func (r *PgxTreasuryRepository) AdjustBalance(ctx context.Context, delta decimal.Decimal) (*domain.Treasury, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now()
	newBalance, err := applyTreasuryDelta(ctx, tx, delta, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit balance adjustment: %w", mapPgError(err))
	}
	return &domain.Treasury{CurrentBalance: newBalance, LastUpdated: now}, nil
}

// SetBalance overwrites the balance and posts the adjustment transaction in
// the same database transaction. The delta versus the prior balance is only
// known once the row is locked, so txn.Amount is filled here.
func (r *PgxTreasuryRepository) SetBalance(ctx context.Context, newBalance decimal.Decimal, txn domain.Transaction) (*domain.Treasury, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now()
	if err := ensureTreasury(ctx, tx, now); err != nil {
		return nil, err
	}

	var current decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT current_balance FROM treasury WHERE treasury_id = 1 FOR UPDATE;
	`).Scan(&current)
	if err != nil {
		return nil, mapPgError(err)
	}

	txn.Amount = newBalance.Sub(current)
	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE treasury SET current_balance = $1, last_updated = $2 WHERE treasury_id = 1;
	`, newBalance, now)
	if err != nil {
		return nil, mapPgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit balance set: %w", mapPgError(err))
	}
	return &domain.Treasury{CurrentBalance: newBalance, LastUpdated: now}, nil
}
