package store

import (
	"context"

	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/cenkalti/backoff/v5"
)

const maxRetryAttempts = 4

// withRetry runs op, retrying only errors the DB's classifier reports as
// [Retryable]. Anything else is returned after the first attempt.
func withRetry[T any](ctx context.Context, db *DB, funcName string, op func() (T, error)) (T, error) {
	log := logger.FromContext(ctx)
	attempt := 0

	wrapped := func() (T, error) {
		attempt++
		res, err := op()
		if err == nil {
			return res, nil
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return res, backoff.Permanent(err)
		}

		log.Warn().Err(err).
			Str("func", funcName).
			Int("attempt", attempt).
			Msg("transient database error, retrying")
		return res, err
	}

	newBackOff := db.newBackOff
	if newBackOff == nil {
		newBackOff = defaultBackOff
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(newBackOff()),
		backoff.WithMaxTries(maxRetryAttempts),
	}
	if db.retryMaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(db.retryMaxElapsed))
	}

	return backoff.Retry(ctx, wrapped, opts...)
}
