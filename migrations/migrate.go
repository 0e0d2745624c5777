// Package migrations embeds the SQL schema and applies it with goose.
// The same files serve PostgreSQL and SQLite.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// dialects maps the database/sql driver names used by the store to goose
// dialects.
var dialects = map[string]goose.Dialect{
	"pgx":      goose.DialectPostgres,
	"postgres": goose.DialectPostgres,
	"sqlite3":  goose.DialectSQLite3,
}

// Migrate applies every pending migration and returns the versions it
// applied, oldest first. driver is the database/sql driver name ("pgx" or
// "sqlite3").
func Migrate(ctx context.Context, db *sql.DB, driver string) ([]int64, error) {
	if db == nil {
		return nil, errors.New("migration error: db is nil")
	}

	dialect, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("migration error: no goose dialect for driver %q", driver)
	}

	provider, err := goose.NewProvider(dialect, db, embedMigrations)
	if err != nil {
		return nil, fmt.Errorf("migration error creating provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}
