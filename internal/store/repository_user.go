package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/models"
)

const usersTable = "users"

var userColumns = []string{
	"id", "account_id", "username", "email", "password_hash",
	"role", "status", "device_notif", "created_at", "updated_at",
}

// userRepository is the SQL implementation of [UserRepository] shared by the
// PostgreSQL and SQLite dialects.
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

// CreateUser inserts user. ID, CreatedAt and UpdatedAt must already be set;
// Password must hold the bcrypt hash.
//
// Error handling:
//   - unique violation on account_id → [ErrAccountIDAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.AccountID, user.Username, user.Email, user.Password,
			user.Role, user.Status, user.DeviceNotif, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("account_id", user.AccountID).Msg("insert failed")
		if r.db.classify(err) == Conflict {
			return models.User{}, ErrAccountIDAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// FindUserByAccountID returns the user with the given account id, password
// hash included.
func (r *userRepository) FindUserByAccountID(ctx context.Context, accountID string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"account_id": accountID})
}

// FindUserByID returns the user with the given id, password hash included.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *userRepository) findOne(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Select(userColumns...).From(usersTable).Where(where).Limit(1).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findOne").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// ListUsers returns every user in creation order without password hashes.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Select(userColumns...).From(usersTable).OrderBy("created_at ASC", "account_id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 32)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		user.Password = ""
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUser overwrites the profile fields of user id. A non-empty
// form.Password must already be hashed; an empty one keeps the current hash.
// An empty form.Status keeps the current status.
func (r *userRepository) UpdateUser(ctx context.Context, id string, form models.UserForm) error {
	log := logger.FromContext(ctx)

	set := map[string]any{
		"account_id": form.AccountID,
		"username":   form.Username,
		"email":      form.Email,
		"role":       form.Role,
		"updated_at": time.Now().UTC(),
	}
	if form.Status != "" {
		set["status"] = form.Status
	}
	if form.Password != "" {
		set["password_hash"] = form.Password
	}

	query, args, err := r.db.builder.Update(usersTable).SetMap(set).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Str("id", id).Msg("update failed")
		if r.db.classify(err) == Conflict {
			return ErrAccountIDAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffected(res)
}

// DeleteUser removes user id.
func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	query, args, err := r.db.builder.Delete(usersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.DeleteUser").Str("id", id).Msg("delete failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffected(res)
}

// ListEmails returns every non-empty email address.
func (r *userRepository) ListEmails(ctx context.Context) ([]string, error) {
	return r.listColumn(ctx, "email")
}

// ListDeviceTokens returns every registered push token.
func (r *userRepository) ListDeviceTokens(ctx context.Context) ([]string, error) {
	return r.listColumn(ctx, "device_notif")
}

func (r *userRepository) listColumn(ctx context.Context, column string) ([]string, error) {
	query, args, err := r.db.builder.
		Select(column).
		From(usersTable).
		Where(sq.NotEq{column: ""}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.listColumn").Str("column", column).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	values := make([]string, 0, 32)
	for rows.Next() {
		var v string
		if err = rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		values = append(values, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return values, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.AccountID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Status,
		&user.DeviceNotif,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrNoUserWasFound
	}
	return nil
}
