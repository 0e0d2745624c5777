package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/logger"
)

// Storages groups the repositories and lifecycle hooks of the configured
// backend.
type Storages struct {
	UserRepository     UserRepository
	PasswordRepository PasswordRepository
	Pinger             Pinger
	Closer             Closer
}

// NewStorages opens the backend selected by cfg.Driver. SQL backends are
// migrated before the repositories are returned.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("driver", cfg.Driver).Msg("creating new storages...")

	switch cfg.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		var (
			db  *DB
			err error
		)
		if cfg.Driver == config.DriverPostgres {
			db, err = NewConnectPostgres(ctx, cfg, log)
		} else {
			db, err = NewConnectSQLite(ctx, cfg, log)
		}
		if err != nil {
			return nil, fmt.Errorf("%s connection error: %w", cfg.Driver, err)
		}

		if err = db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		return newSQLStorages(db, log), nil

	case config.DriverMongo:
		m, err := NewConnectMongo(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("mongo connection error: %w", err)
		}

		return &Storages{
			UserRepository:     NewMongoUserRepository(m.users(), m.passwords(), log),
			PasswordRepository: NewMongoPasswordRepository(m.passwords(), log),
			Pinger:             m,
			Closer:             m,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

func newSQLStorages(db *DB, log *logger.Logger) *Storages {
	lifecycle := sqlLifecycle{db: db.DB}
	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		PasswordRepository: NewPasswordRepository(db, log),
		Pinger:             lifecycle,
		Closer:             lifecycle,
	}
}
