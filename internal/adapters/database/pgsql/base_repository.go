package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
)

// Postgres error codes mapped to application errors.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// mapPgError translates driver errors into application sentinel errors so
// services never string-match Postgres messages.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%w: %s", apperrors.ErrConcurrencyConflict, pgErr.Code)
		}
	}
	return err
}

// ensureTreasury lazily creates the singleton treasury row with a zero
// balance. The fixed primary key makes the insert a no-op once the row
// exists.
func ensureTreasury(ctx context.Context, tx pgx.Tx, now time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO treasury (treasury_id, current_balance, last_updated)
		VALUES (1, 0, $1)
		ON CONFLICT (treasury_id) DO NOTHING;
	`, now)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

// applyTreasuryDelta performs the locked read-modify-write on the treasury
// balance inside tx and returns the new balance. Callers own the enclosing
// database transaction; a zero delta still stamps last_updated.
func applyTreasuryDelta(ctx context.Context, tx pgx.Tx, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if err := ensureTreasury(ctx, tx, now); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err := tx.QueryRow(ctx, `
		SELECT current_balance FROM treasury WHERE treasury_id = 1 FOR UPDATE;
	`).Scan(&balance)
	if err != nil {
		return decimal.Zero, mapPgError(err)
	}

	newBalance := balance.Add(delta)
	_, err = tx.Exec(ctx, `
		UPDATE treasury SET current_balance = $1, last_updated = $2 WHERE treasury_id = 1;
	`, newBalance, now)
	if err != nil {
		return decimal.Zero, mapPgError(err)
	}
	return newBalance, nil
}
