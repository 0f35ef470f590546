package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/models"
)

const sessionTable = "session"

// the cache holds one row
const sessionSlot = 1

// localSessionRepository is the SQLite-backed [SessionRepository] of the
// console.
type localSessionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewLocalSessionRepository constructs a [SessionRepository] over the
// console's local database.
func NewLocalSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &localSessionRepository{db: db, logger: logger}
}

// SaveSession replaces the cached session.
func (r *localSessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	query, args, err := r.db.builder.
		Replace(sessionTable).
		Columns("slot", "user_id", "account_id", "username", "email", "role", "token", "created_at").
		Values(sessionSlot, session.User.ID, session.User.AccountID, session.User.Username,
			session.User.Email, session.User.Role, session.Token, session.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "*localSessionRepository.SaveSession").Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// LoadSession returns the cached session or [ErrSessionNotFound].
func (r *localSessionRepository) LoadSession(ctx context.Context) (models.Session, error) {
	query, args, err := r.db.builder.
		Select("user_id", "account_id", "username", "email", "role", "token", "created_at").
		From(sessionTable).
		Where(sq.Eq{"slot": sessionSlot}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var s models.Session
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.User.ID, &s.User.AccountID, &s.User.Username, &s.User.Email, &s.User.Role, &s.Token, &s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("func", "*localSessionRepository.LoadSession").Msg("failed to load session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return s, nil
}

// DeleteSession forgets the cached session. Deleting a missing session is
// not an error.
func (r *localSessionRepository) DeleteSession(ctx context.Context) error {
	query, args, err := r.db.builder.Delete(sessionTable).Where(sq.Eq{"slot": sessionSlot}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "*localSessionRepository.DeleteSession").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
