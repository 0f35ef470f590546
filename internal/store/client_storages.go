package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/migrations"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// SessionRepository caches the admin session between console runs.
	SessionRepository SessionRepository

	db *DB
}

// NewClientStorages initialises the client storage layer:
//  1. Opens the SQLite file named by cfg.SessionDSN, creating it if needed.
//  2. Runs pending migrations of the client set.
//  3. Wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg.SessionDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(migrations.ClientSet); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewLocalSessionRepository(db, logger),
		db:                db,
	}, nil
}

// Close closes the underlying database.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
