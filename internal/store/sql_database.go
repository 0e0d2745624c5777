package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/migrations"
	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v5"
)

const (
	dialectPostgres = "pgx"
	dialectSQLite   = "sqlite3"
)

// DB wraps a *sql.DB with the dialect-specific pieces the repositories need:
// the squirrel placeholder format, the driver error classifier and the retry
// policy.
type DB struct {
	*sql.DB
	dialect            string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	retryMaxElapsed    time.Duration
	newBackOff         func() backoff.BackOff
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations for the DB's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB, db.dialect)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		db.logger.Info().Ints64("versions", applied).Msg("applied schema migrations")
	}
	return nil
}

func (db *DB) queries() queryBuilder {
	return newQueryBuilder(db.placeholder)
}

func defaultBackOff() backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond
	exp.MaxInterval = 2 * time.Second
	return exp
}

// sqlLifecycle adapts *sql.DB to [Pinger] and [Closer].
type sqlLifecycle struct {
	db *sql.DB
}

func (l sqlLifecycle) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}

func (l sqlLifecycle) Close(context.Context) error {
	return l.db.Close()
}

// execContext runs a DML statement under the retry policy.
func (db *DB) execContext(ctx context.Context, funcName, query string, args []any) (sql.Result, error) {
	return withRetry(ctx, db, funcName, func() (sql.Result, error) {
		return db.ExecContext(ctx, query, args...)
	})
}

// isConflict reports whether err is a unique constraint violation.
func (db *DB) isConflict(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == Conflict
}
