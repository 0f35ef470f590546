package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/models"
)

const chatTable = "chat_messages"

type chatRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewChatRepository constructs a [ChatRepository].
func NewChatRepository(db *DB, logger *logger.Logger) ChatRepository {
	logger.Debug().Msg("creating chat repository")
	return &chatRepository{db: db, logger: logger}
}

func (r *chatRepository) SaveMessage(ctx context.Context, msg models.ChatMessage) error {
	query, args, err := r.db.builder.
		Insert(chatTable).
		Columns("id", "message", "sender", "role", "timestamp", "date", "created_at").
		Values(msg.ID, msg.Message, msg.Sender, msg.Role, msg.Timestamp, msg.Date, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatRepository.SaveMessage").Msg("insert failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// ListMessages returns the whole chat, oldest first.
func (r *chatRepository) ListMessages(ctx context.Context) ([]models.ChatMessage, error) {
	query, args, err := r.db.builder.
		Select("id", "message", "sender", "role", "timestamp", "date").
		From(chatTable).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatRepository.ListMessages").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0, 64)
	for rows.Next() {
		var msg models.ChatMessage
		if err = rows.Scan(&msg.ID, &msg.Message, &msg.Sender, &msg.Role, &msg.Timestamp, &msg.Date); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		messages = append(messages, msg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return messages, nil
}
