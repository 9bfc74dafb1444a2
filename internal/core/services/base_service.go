package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/middleware"
)

// RetryPolicy bounds the internal retries performed on treasury write
// conflicts before the error is surfaced to the caller.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetryPolicy matches the expectation of a pessimistic-lock store:
// writers serialize quickly, so a short backoff and few attempts suffice.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: 50 * time.Millisecond}
}

// retryOnConflict runs fn, retrying with backoff while it fails with
// apperrors.ErrConcurrencyConflict. Any other error, or exhaustion of the
// attempt budget, is returned to the caller.
func retryOnConflict(ctx context.Context, policy RetryPolicy, fn func() error) error {
	logger := loggerFromCtx(ctx)
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, apperrors.ErrConcurrencyConflict) {
			return err
		}
		if attempt == attempts {
			break
		}
		logger.Warn("Treasury write conflict, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", policy.Backoff),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(policy.Backoff * time.Duration(attempt)):
		}
	}
	return err
}

// loggerFromCtx gets the request-scoped logger from context or returns the
// default one.
func loggerFromCtx(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}
