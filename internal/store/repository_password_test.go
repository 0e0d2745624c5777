package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPasswordRepo(t *testing.T) (PasswordRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewPasswordRepository(db, logger.Nop()), mock
}

var passwordRowColumns = []string{"id", "user_id", "title", "username", "password", "url", "note", "created_at", "updated_at"}

func sampleEntry() models.PasswordEntry {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.PasswordEntry{
		ID:        "0190a6b2-0000-7000-8000-000000000001",
		UserID:    "42",
		Title:     "aa:bb:01",
		Username:  "aa:bb:02",
		Password:  "aa:bb:03",
		URL:       "aa:bb:04",
		Note:      "aa:bb:05",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func entryRow(e models.PasswordEntry) []driver.Value {
	return []driver.Value{e.ID, e.UserID, e.Title, e.Username, e.Password, e.URL, e.Note, e.CreatedAt, e.UpdatedAt}
}

// ── SavePassword ────────────────────────────────────────────────────────────

func TestSavePassword_Success(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)
	e := sampleEntry()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO passwords (id,user_id,title,username,password,url,note,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)")).
		WithArgs(e.ID, e.UserID, e.Title, e.Username, e.Password, e.URL, e.Note, e.CreatedAt, e.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SavePassword(context.Background(), e))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePassword_Conflict(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)

	mock.ExpectExec("INSERT INTO passwords").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.SavePassword(context.Background(), sampleEntry())
	require.ErrorIs(t, err, ErrPasswordAlreadyExists)
}

func TestSavePassword_DriverError(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)

	mock.ExpectExec("INSERT INTO passwords").
		WillReturnError(pgError(pgerrcode.NotNullViolation))

	err := repo.SavePassword(context.Background(), sampleEntry())
	require.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet(), "non-retryable errors must not be retried")
}

// ── GetPasswords ────────────────────────────────────────────────────────────

func TestGetPasswords(t *testing.T) {
	first := sampleEntry()
	second := sampleEntry()
	second.ID = "0190a6b2-0000-7000-8000-000000000002"
	second.CreatedAt = first.CreatedAt.Add(time.Hour)

	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		want    []models.PasswordEntry
		wantErr error
	}{
		{
			name: "two entries",
			rows: sqlmock.NewRows(passwordRowColumns).AddRow(entryRow(first)...).AddRow(entryRow(second)...),
			want: []models.PasswordEntry{first, second},
		},
		{
			name: "no entries",
			rows: sqlmock.NewRows(passwordRowColumns),
			want: []models.PasswordEntry{},
		},
		{
			name:    "row error",
			rows:    sqlmock.NewRows(passwordRowColumns).AddRow(entryRow(first)...).RowError(0, errors.New("broken row")),
			wantErr: ErrScanningRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestPasswordRepo(t)

			mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, title, username, password, url, note, created_at, updated_at FROM passwords WHERE user_id = $1 ORDER BY created_at ASC, id ASC")).
				WithArgs("42").
				WillReturnRows(tt.rows)

			got, err := repo.GetPasswords(context.Background(), "42")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetPasswords_QueryError(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)

	mock.ExpectQuery("FROM passwords").WillReturnError(errors.New("boom"))

	_, err := repo.GetPasswords(context.Background(), "42")
	require.ErrorIs(t, err, ErrExecutingQuery)
}

// ── UpdatePassword ──────────────────────────────────────────────────────────

func TestUpdatePassword_Success(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)

	title, note := "aa:bb:10", "aa:bb:11"
	update := models.PasswordUpdate{Title: &title, Note: &note}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE passwords SET note = $1, title = $2, updated_at = $3 WHERE id = $4 AND user_id = $5")).
		WithArgs(note, title, sqlmock.AnyArg(), "p1", "42").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), "42", "p1", update))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePassword_NotFound(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)

	title := "aa:bb:10"
	mock.ExpectExec("UPDATE passwords").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), "42", "p1", models.PasswordUpdate{Title: &title})
	require.ErrorIs(t, err, ErrPasswordNotFound)
}

func TestUpdatePassword_EmptyUpdate(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)

	err := repo.UpdatePassword(context.Background(), "42", "p1", models.PasswordUpdate{})
	require.ErrorIs(t, err, ErrBuildingSQLQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── ResealPassword ──────────────────────────────────────────────────────────

func TestResealPassword_ConditionalOnListedValues(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)

	current := sampleEntry()
	current.Password, current.Note = "hunter2", ""
	password, note := "aa:bb:20", "aa:bb:21"

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE passwords SET note = $1, password = $2 WHERE id = $3 AND note = $4 AND password = $5 AND user_id = $6")).
		WithArgs(note, password, current.ID, "", "hunter2", current.UserID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ResealPassword(context.Background(), current, models.PasswordUpdate{Password: &password, Note: &note})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResealPassword_EntryChanged(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)

	password := "aa:bb:20"
	mock.ExpectExec("UPDATE passwords").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ResealPassword(context.Background(), sampleEntry(), models.PasswordUpdate{Password: &password})
	require.ErrorIs(t, err, ErrPasswordChanged)
	assert.NotErrorIs(t, err, ErrPasswordNotFound)
}

func TestResealPassword_EmptyUpdate(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)

	err := repo.ResealPassword(context.Background(), sampleEntry(), models.PasswordUpdate{})
	require.ErrorIs(t, err, ErrBuildingSQLQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── DeletePassword ──────────────────────────────────────────────────────────

func TestDeletePassword(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "foreign or missing entry", affected: 0, wantErr: ErrPasswordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestPasswordRepo(t)

			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM passwords WHERE id = $1 AND user_id = $2")).
				WithArgs("p1", "42").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.DeletePassword(context.Background(), "42", "p1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

// ── ListPasswordsAfter ──────────────────────────────────────────────────────

func TestListPasswordsAfter_FirstPage(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)
	e := sampleEntry()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, title, username, password, url, note, created_at, updated_at FROM passwords ORDER BY id ASC LIMIT 50")).
		WillReturnRows(sqlmock.NewRows(passwordRowColumns).AddRow(entryRow(e)...))

	got, err := repo.ListPasswordsAfter(context.Background(), "", 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
}

func TestListPasswordsAfter_NextPage(t *testing.T) {
	repo, mock := newTestPasswordRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM passwords WHERE id > $1 ORDER BY id ASC LIMIT 10")).
		WithArgs("p9").
		WillReturnRows(sqlmock.NewRows(passwordRowColumns))

	got, err := repo.ListPasswordsAfter(context.Background(), "p9", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListPasswordsAfter_InvalidLimit(t *testing.T) {
	repo, _ := newTestPasswordRepo(t)

	_, err := repo.ListPasswordsAfter(context.Background(), "", 0)
	require.ErrorIs(t, err, ErrBuildingSQLQuery)
}
