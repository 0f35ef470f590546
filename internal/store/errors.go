package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAccountIDAlreadyExists is returned when an insert or update would
	// give two users the same account id.
	ErrAccountIDAlreadyExists = errors.New("account id already exists")

	// ErrNoUserWasFound is returned when a lookup by id or account id matches
	// no user.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSessionNotFound is returned by the console session cache when no
	// session has been saved.
	ErrSessionNotFound = errors.New("local session not found")

	// ErrNothingToUpdate is returned when an update carries no columns.
	ErrNothingToUpdate = errors.New("nothing to update")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails midway.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDSN is returned when a DSN names neither PostgreSQL nor a
	// SQLite file.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)
