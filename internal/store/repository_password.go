package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/models"
)

// passwordRepository is the SQL implementation of [PasswordRepository].
// Every secret column holds an envelope produced by the service layer.
type passwordRepository struct {
	*DB
	logger *logger.Logger
}

// NewPasswordRepository constructs a [PasswordRepository] backed by db.
func NewPasswordRepository(db *DB, logger *logger.Logger) PasswordRepository {
	logger.Debug().Msg("creating password repository")
	return &passwordRepository{
		DB:     db,
		logger: logger,
	}
}

// SavePassword inserts a new entry.
func (p *passwordRepository) SavePassword(ctx context.Context, entry models.PasswordEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := p.queries().insertPassword(entry)
	if err != nil {
		log.Err(err).Str("func", "passwordRepository.SavePassword").Msg("failed to create query")
		return err
	}

	if _, err = p.execContext(ctx, "passwordRepository.SavePassword", query, args); err != nil {
		if p.isConflict(err) {
			return ErrPasswordAlreadyExists
		}
		log.Err(err).
			Str("func", "passwordRepository.SavePassword").
			Str("user_id", entry.UserID).
			Str("password_id", entry.ID).
			Msg("failed to insert password entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetPasswords returns all entries of userID, oldest first.
// An empty slice is returned when the user has none.
func (p *passwordRepository) GetPasswords(ctx context.Context, userID string) ([]models.PasswordEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.queries().selectUserPasswords(userID)
	if err != nil {
		log.Err(err).Str("func", "passwordRepository.GetPasswords").Msg("failed to create query")
		return nil, err
	}

	entries, err := p.queryPasswords(ctx, "passwordRepository.GetPasswords", query, args)
	if err != nil {
		log.Err(err).
			Str("func", "passwordRepository.GetPasswords").
			Str("user_id", userID).
			Msg("failed to get passwords")
		return nil, err
	}

	return entries, nil
}

// UpdatePassword writes the set fields of update and bumps updated_at.
func (p *passwordRepository) UpdatePassword(ctx context.Context, userID, id string, update models.PasswordUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := p.queries().updatePassword(userID, id, update.Fields(), time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "passwordRepository.UpdatePassword").Msg("failed to create query")
		return err
	}

	return p.execAffectingOne(ctx, "passwordRepository.UpdatePassword", userID, id, query, args, ErrPasswordNotFound)
}

// ResealPassword is a compare-and-set write: the row is updated only while
// every column in update still holds its value in current.
func (p *passwordRepository) ResealPassword(ctx context.Context, current models.PasswordEntry, update models.PasswordUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := p.queries().resealPassword(current.UserID, current.ID, update.Fields(), current.SecretColumns())
	if err != nil {
		log.Err(err).Str("func", "passwordRepository.ResealPassword").Msg("failed to create query")
		return err
	}

	return p.execAffectingOne(ctx, "passwordRepository.ResealPassword", current.UserID, current.ID, query, args, ErrPasswordChanged)
}

// DeletePassword removes one entry owned by userID.
func (p *passwordRepository) DeletePassword(ctx context.Context, userID, id string) error {
	query, args, err := p.queries().deletePassword(userID, id)
	if err != nil {
		return err
	}

	return p.execAffectingOne(ctx, "passwordRepository.DeletePassword", userID, id, query, args, ErrPasswordNotFound)
}

// ListPasswordsAfter returns up to limit entries with id > afterID across
// all users, ordered by id.
func (p *passwordRepository) ListPasswordsAfter(ctx context.Context, afterID string, limit int) ([]models.PasswordEntry, error) {
	query, args, err := p.queries().selectPasswordsAfter(afterID, limit)
	if err != nil {
		return nil, err
	}

	return p.queryPasswords(ctx, "passwordRepository.ListPasswordsAfter", query, args)
}

// execAffectingOne returns noMatch when the statement touched no row.
func (p *passwordRepository) execAffectingOne(ctx context.Context, funcName, userID, id, query string, args []any, noMatch error) error {
	log := logger.FromContext(ctx)

	res, err := p.execContext(ctx, funcName, query, args)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("user_id", userID).
			Str("password_id", id).
			Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		log.Warn().
			Str("func", funcName).
			Str("user_id", userID).
			Str("password_id", id).
			Msg("no record matched")
		return noMatch
	}

	return nil
}

func (p *passwordRepository) queryPasswords(ctx context.Context, funcName, query string, args []any) ([]models.PasswordEntry, error) {
	return withRetry(ctx, p.DB, funcName, func() ([]models.PasswordEntry, error) {
		rows, err := p.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		return scanPasswords(rows)
	})
}

func scanPasswords(rows *sql.Rows) ([]models.PasswordEntry, error) {
	entries := make([]models.PasswordEntry, 0, 16)

	for rows.Next() {
		var e models.PasswordEntry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Title,
			&e.Username,
			&e.Password,
			&e.URL,
			&e.Note,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
