package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/migrations"
)

// DB is an open database handle together with the dialect specific pieces
// the repositories need: a squirrel builder with the right placeholder format
// and an error classifier for driver errors.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Open connects to PostgreSQL when dsn starts with postgres:// or
// postgresql://, and to a SQLite file otherwise.
func Open(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	switch {
	case strings.TrimSpace(dsn) == "":
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedDSN)
	case IsPostgresDSN(dsn):
		return NewConnectPostgres(ctx, dsn, log)
	default:
		return NewConnectSQLite(ctx, dsn, log)
	}
}

// IsPostgresDSN reports whether dsn is a PostgreSQL connection URL.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Migrate applies the named migration set.
func (db *DB) Migrate(set string) error {
	return migrations.Migrate(db.DB, db.dialect, set)
}

// Dialect returns the goose dialect of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}
