package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/models"
)

const outboxTable = "outbox"

// recipients are stored newline separated; neither addresses nor push
// tokens contain newlines.
const recipientSep = "\n"

type outboxRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewOutboxRepository constructs an [OutboxRepository].
func NewOutboxRepository(db *DB, logger *logger.Logger) OutboxRepository {
	logger.Debug().Msg("creating outbox repository")
	return &outboxRepository{db: db, logger: logger}
}

func (r *outboxRepository) Enqueue(ctx context.Context, msg models.OutboxMessage) error {
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := r.db.builder.
		Insert(outboxTable).
		Columns("id", "kind", "recipients", "subject", "body", "created_at").
		Values(msg.ID, msg.Kind, strings.Join(msg.Recipients, recipientSep), msg.Subject, msg.Body, createdAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*outboxRepository.Enqueue").
			Str("kind", string(msg.Kind)).
			Msg("insert failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// List returns the outbox of kind, oldest first. An empty kind lists all.
func (r *outboxRepository) List(ctx context.Context, kind models.OutboxKind) ([]models.OutboxMessage, error) {
	b := r.db.builder.
		Select("id", "kind", "recipients", "subject", "body", "created_at").
		From(outboxTable).
		OrderBy("created_at ASC")
	if kind != "" {
		b = b.Where(sq.Eq{"kind": kind})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.OutboxMessage, 0, 16)
	for rows.Next() {
		var (
			msg        models.OutboxMessage
			recipients string
		)
		if err = rows.Scan(&msg.ID, &msg.Kind, &recipients, &msg.Subject, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if recipients != "" {
			msg.Recipients = strings.Split(recipients, recipientSep)
		}
		out = append(out, msg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return out, nil
}
