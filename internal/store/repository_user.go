package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/models"
)

// userRepository is the SQL implementation of [UserRepository] for both
// PostgreSQL and SQLite. It works against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts user. CreatedAt defaults to now.
//
// Error handling:
//   - unique violation on id or username → [ErrUserAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.db.queries().insertUser(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to build query")
		return models.User{}, err
	}

	if _, err = r.db.execContext(ctx, "*userRepository.CreateUser", query, args); err != nil {
		if r.db.isConflict(err) {
			log.Warn().Str("func", "*userRepository.CreateUser").Str("user_id", user.ID).Msg("user already exists")
			return models.User{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// FindUserByID returns the user with the given Discord id.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findUserBy(ctx, "id", id)
}

// FindUserByUsername returns the user with the given username.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUserBy(ctx, "username", username)
}

func (r *userRepository) findUserBy(ctx context.Context, column, value string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries().selectUserBy(column, value)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUserBy").Msg("failed to build query")
		return models.User{}, err
	}

	foundUser, err := withRetry(ctx, r.db, "*userRepository.findUserBy", func() (models.User, error) {
		var u models.User
		scanErr := r.db.QueryRowContext(ctx, query, args...).Scan(
			&u.ID,
			&u.Username,
			&u.Avatar,
			&u.CreatedAt,
			&u.TwoFactorEnabled,
			&u.TwoFactorSecret,
		)
		return u, scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUserBy").Str("by", column).Msg("failed to find user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return foundUser, nil
}

// UpdateAvatar replaces the stored avatar hash.
func (r *userRepository) UpdateAvatar(ctx context.Context, id, avatar string) error {
	query, args, err := r.db.queries().updateUserAvatar(id, avatar)
	if err != nil {
		return err
	}
	return r.execUserUpdate(ctx, "*userRepository.UpdateAvatar", id, query, args)
}

// UpdateTwoFactor stores the 2FA flag together with the sealed secret.
func (r *userRepository) UpdateTwoFactor(ctx context.Context, id string, enabled bool, sealedSecret string) error {
	query, args, err := r.db.queries().updateUserTwoFactor(id, enabled, sealedSecret)
	if err != nil {
		return err
	}
	return r.execUserUpdate(ctx, "*userRepository.UpdateTwoFactor", id, query, args)
}

func (r *userRepository) execUserUpdate(ctx context.Context, funcName, id, query string, args []any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.execContext(ctx, funcName, query, args)
	if err != nil {
		log.Err(err).Str("func", funcName).Str("user_id", id).Msg("failed to update user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// DeleteUser removes the user's passwords and the user row in one
// transaction.
func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	deletePasswords, passwordArgs, err := r.db.queries().deleteUserPasswords(id)
	if err != nil {
		return err
	}
	deleteUser, userArgs, err := r.db.queries().deleteUser(id)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deletePasswords, passwordArgs...); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Str("user_id", id).Msg("failed to delete user passwords")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	res, err := tx.ExecContext(ctx, deleteUser, userArgs...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Str("user_id", id).Msg("failed to delete user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Str("user_id", id).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().Str("func", "*userRepository.DeleteUser").Str("user_id", id).Msg("user deleted")
	return nil
}
