package store

import (
	"fmt"
	"time"

	"github.com/MKhiriev/eagle-pass/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable     = "users"
	passwordsTable = "passwords"
)

var (
	userColumns = []string{
		"id",
		"username",
		"avatar",
		"created_at",
		"two_factor_enabled",
		"two_factor_secret",
	}

	passwordColumns = []string{
		"id",
		"user_id",
		"title",
		"username",
		"password",
		"url",
		"note",
		"created_at",
		"updated_at",
	}
)

// queryBuilder renders every statement the SQL repositories issue. The
// placeholder format of sb decides between Postgres ($1) and SQLite (?).
type queryBuilder struct {
	sb sq.StatementBuilderType
}

func newQueryBuilder(format sq.PlaceholderFormat) queryBuilder {
	return queryBuilder{sb: sq.StatementBuilder.PlaceholderFormat(format)}
}

func (q queryBuilder) insertUser(user models.User) (string, []any, error) {
	return wrapBuild(q.sb.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Username, user.Avatar, user.CreatedAt, user.TwoFactorEnabled, user.TwoFactorSecret).
		ToSql())
}

func (q queryBuilder) selectUserBy(column, value string) (string, []any, error) {
	return wrapBuild(q.sb.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{column: value}).
		Limit(1).
		ToSql())
}

func (q queryBuilder) updateUserAvatar(id, avatar string) (string, []any, error) {
	return wrapBuild(q.sb.Update(usersTable).
		Set("avatar", avatar).
		Where(sq.Eq{"id": id}).
		ToSql())
}

func (q queryBuilder) updateUserTwoFactor(id string, enabled bool, secret string) (string, []any, error) {
	return wrapBuild(q.sb.Update(usersTable).
		Set("two_factor_enabled", enabled).
		Set("two_factor_secret", secret).
		Where(sq.Eq{"id": id}).
		ToSql())
}

func (q queryBuilder) deleteUser(id string) (string, []any, error) {
	return wrapBuild(q.sb.Delete(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql())
}

func (q queryBuilder) deleteUserPasswords(userID string) (string, []any, error) {
	return wrapBuild(q.sb.Delete(passwordsTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql())
}

func (q queryBuilder) insertPassword(p models.PasswordEntry) (string, []any, error) {
	return wrapBuild(q.sb.Insert(passwordsTable).
		Columns(passwordColumns...).
		Values(p.ID, p.UserID, p.Title, p.Username, p.Password, p.URL, p.Note, p.CreatedAt, p.UpdatedAt).
		ToSql())
}

func (q queryBuilder) selectUserPasswords(userID string) (string, []any, error) {
	return wrapBuild(q.sb.Select(passwordColumns...).
		From(passwordsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql())
}

// updatePassword sets the given columns plus updated_at. Columns are
// rendered in sorted order.
func (q queryBuilder) updatePassword(userID, id string, fields map[string]string, updatedAt time.Time) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	clauses := make(map[string]any, len(fields)+1)
	for column, value := range fields {
		clauses[column] = value
	}
	clauses["updated_at"] = updatedAt

	return wrapBuild(q.sb.Update(passwordsTable).
		SetMap(clauses).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql())
}

// resealPassword sets the given columns on the condition that each of them
// still equals its value in expected. updated_at is not touched.
func (q queryBuilder) resealPassword(userID, id string, fields, expected map[string]string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	clauses := make(map[string]any, len(fields))
	where := sq.Eq{"id": id, "user_id": userID}
	for column, value := range fields {
		current, ok := expected[column]
		if !ok {
			return "", nil, fmt.Errorf("%w: no expected value for column %q", ErrBuildingSQLQuery, column)
		}
		clauses[column] = value
		where[column] = current
	}

	return wrapBuild(q.sb.Update(passwordsTable).
		SetMap(clauses).
		Where(where).
		ToSql())
}

func (q queryBuilder) deletePassword(userID, id string) (string, []any, error) {
	return wrapBuild(q.sb.Delete(passwordsTable).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql())
}

func (q queryBuilder) selectPasswordsAfter(afterID string, limit int) (string, []any, error) {
	if limit <= 0 {
		return "", nil, fmt.Errorf("%w: limit must be positive", ErrBuildingSQLQuery)
	}

	builder := q.sb.Select(passwordColumns...).
		From(passwordsTable).
		OrderBy("id ASC").
		Limit(uint64(limit))
	if afterID != "" {
		builder = builder.Where(sq.Gt{"id": afterID})
	}

	return wrapBuild(builder.ToSql())
}

func wrapBuild(query string, args []any, err error) (string, []any, error) {
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
