package store

import (
	"context"
	"time"

	"github.com/MKhiriev/airguard-admin/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists development API accounts. Password fields carry
// bcrypt hashes, never plain text.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByAccountID(ctx context.Context, accountID string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, form models.UserForm) error
	DeleteUser(ctx context.Context, id string) error
	ListEmails(ctx context.Context) ([]string, error)
	ListDeviceTokens(ctx context.Context) ([]string, error)
}

// ReadingRepository persists sensor readings.
type ReadingRepository interface {
	SaveReading(ctx context.Context, reading models.Reading, at time.Time) error
	LatestReadings(ctx context.Context, model string, limit uint64) ([]models.Reading, error)
	ListReadings(ctx context.Context, limit uint64) ([]models.Reading, error)
	ListReadingsSince(ctx context.Context, since time.Time) ([]models.Reading, error)
}

// ChatRepository persists chat messages in arrival order.
type ChatRepository interface {
	SaveMessage(ctx context.Context, msg models.ChatMessage) error
	ListMessages(ctx context.Context) ([]models.ChatMessage, error)
}

// HistoryRepository persists timeline entries.
type HistoryRepository interface {
	SaveEntry(ctx context.Context, entry models.TimelineEntry) error
	ListEntries(ctx context.Context) ([]models.TimelineEntry, error)
}

// OutboxRepository records emails and push notifications.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg models.OutboxMessage) error
	List(ctx context.Context, kind models.OutboxKind) ([]models.OutboxMessage, error)
}
