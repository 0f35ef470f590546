package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/migrations"
)

// Storages groups the repositories of the development API.
type Storages struct {
	UserRepository    UserRepository
	ReadingRepository ReadingRepository
	ChatRepository    ChatRepository
	HistoryRepository HistoryRepository
	OutboxRepository  OutboxRepository

	db *DB
}

// NewStorages opens the database named by dsn, migrates it and wires every
// repository.
func NewStorages(ctx context.Context, dsn string, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := Open(ctx, dsn, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(migrations.ServerSet); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStorages(db, logger), nil
}

func newStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		ReadingRepository: NewReadingRepository(db, logger),
		ChatRepository:    NewChatRepository(db, logger),
		HistoryRepository: NewHistoryRepository(db, logger),
		OutboxRepository:  NewOutboxRepository(db, logger),
		db:                db,
	}
}

// Close closes the underlying database.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
