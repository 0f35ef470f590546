// Package migrations embeds the goose schema migrations of both databases:
// the development API store (server/) and the console session cache
// (client/).
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Goose dialects of the supported drivers.
const (
	DialectPostgres = "pgx"
	DialectSQLite   = "sqlite3"
)

// Migration sets.
const (
	ServerSet = "server"
	ClientSet = "client"
)

//go:embed server/*.sql client/*.sql
var embedMigrations embed.FS

var errNilDB = errors.New("db is nil")

// Migrate applies every pending migration of set to db.
func Migrate(db *sql.DB, dialect, set string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, set); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
