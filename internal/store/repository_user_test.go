package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/models"
)

func newTestPostgresDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return newPostgresDB(conn, logger.Nop()), mock
}

func newTestSQLiteDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return newSQLiteDB(conn, logger.Nop()), mock
}

func newTestUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	db, mock := newTestPostgresDB(t)
	return NewUserRepository(db, logger.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var userRowColumns = []string{
	"id", "account_id", "username", "email", "password_hash",
	"role", "status", "device_notif", "created_at", "updated_at",
}

func testUser() models.User {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.User{
		ID:        "u-1",
		AccountID: "2021-00001",
		Username:  "Jane",
		Email:     "jane@example.com",
		Password:  "$2a$10$hash",
		Role:      models.RoleStudent,
		Status:    models.StatusReady,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := testUser()

	mock.ExpectExec(`INSERT INTO users \(id,account_id,username,email,password_hash,role,status,device_notif,created_at,updated_at\) VALUES \(\$1`).
		WithArgs(user.ID, user.AccountID, user.Username, user.Email, user.Password,
			user.Role, user.Status, user.DeviceNotif, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrAccountIDAlreadyExists)
}

func TestCreateUser_SQLiteUniqueViolation(t *testing.T) {
	db, mock := newTestSQLiteDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectExec(`INSERT INTO users .* VALUES \(\?,\?`).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

	_, err := repo.CreateUser(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrAccountIDAlreadyExists)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestFindUserByAccountID_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := testUser()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(user.ID, user.AccountID, user.Username, user.Email, user.Password,
			string(user.Role), string(user.Status), "", user.CreatedAt, user.UpdatedAt)
	mock.ExpectQuery(`SELECT id, account_id.* FROM users WHERE account_id = \$1 LIMIT 1`).
		WithArgs(user.AccountID).
		WillReturnRows(rows)

	found, err := repo.FindUserByAccountID(context.Background(), user.AccountID)
	require.NoError(t, err)
	assert.Equal(t, user, found)
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindUserByID_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	// intentionally wrong shape → scan error
	mock.ExpectQuery("FROM users").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))

	_, err := repo.FindUserByID(context.Background(), "u-1")
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestListUsers_StripsPasswords(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := testUser()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(user.ID, user.AccountID, user.Username, user.Email, user.Password,
			"Student", "Ready", "tok", user.CreatedAt, user.UpdatedAt).
		AddRow("u-2", "2021-00002", "Joe", "", "$2a$10$x",
			"Admin", "Blocked", "", user.CreatedAt, user.UpdatedAt)
	mock.ExpectQuery(`SELECT .* FROM users ORDER BY created_at ASC, account_id ASC`).WillReturnRows(rows)

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Empty(t, users[0].Password)
	assert.Empty(t, users[1].Password)
	assert.Equal(t, "tok", users[0].DeviceNotif)
	assert.Equal(t, models.RoleAdmin, users[1].Role)
	assert.Equal(t, models.StatusBlocked, users[1].Status)
}

func TestListUsers_QueryError(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	mock.ExpectQuery("FROM users").WillReturnError(errors.New("boom"))

	_, err := repo.ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestUpdateUser(t *testing.T) {
	form := models.UserForm{AccountID: "2021-00001", Username: "Jane", Email: "j@x.io", Role: models.RoleStudent}

	t.Run("keeps password and status when empty", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		// SetMap sorts keys: account_id, email, role, updated_at, username
		mock.ExpectExec(`UPDATE users SET account_id = \$1, email = \$2, role = \$3, updated_at = \$4, username = \$5 WHERE id = \$6`).
			WithArgs(form.AccountID, form.Email, form.Role, sqlmock.AnyArg(), form.Username, "u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateUser(context.Background(), "u-1", form))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sets password and status", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		f := form
		f.Password = "$2a$10$new"
		f.Status = models.StatusBlocked
		mock.ExpectExec(`UPDATE users SET .*password_hash = \$3.*status = \$5`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateUser(context.Background(), "u-1", f))
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateUser(context.Background(), "nope", form), ErrNoUserWasFound)
	})

	t.Run("duplicate account id", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec("UPDATE users").WillReturnError(pgError(pgerrcode.UniqueViolation))

		assert.ErrorIs(t, repo.UpdateUser(context.Background(), "u-1", form), ErrAccountIDAlreadyExists)
	})
}

func TestDeleteUser(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).WithArgs("u-2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM users`).WithArgs("u-3").WillReturnError(errors.New("boom"))

	assert.NoError(t, repo.DeleteUser(context.Background(), "u-1"))
	assert.ErrorIs(t, repo.DeleteUser(context.Background(), "u-2"), ErrNoUserWasFound)
	assert.ErrorIs(t, repo.DeleteUser(context.Background(), "u-3"), ErrExecutingStatement)
}

func TestListEmailsAndDeviceTokens(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`SELECT email FROM users WHERE email <> \$1`).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("a@x.io").AddRow("b@x.io"))
	mock.ExpectQuery(`SELECT device_notif FROM users WHERE device_notif <> \$1`).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"device_notif"}).AddRow("ExponentPushToken[1]"))

	emails, err := repo.ListEmails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.io", "b@x.io"}, emails)

	tokens, err := repo.ListDeviceTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ExponentPushToken[1]"}, tokens)
}
