package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/models"
)

const historyTable = "history"

var historyColumns = []string{
	"id", "date", "timestamp", "aqi", "pm2_5", "pm10", "co", "no2",
	"scanned_by", "scanned_using_model", "message",
}

type historyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewHistoryRepository constructs a [HistoryRepository].
func NewHistoryRepository(db *DB, logger *logger.Logger) HistoryRepository {
	logger.Debug().Msg("creating history repository")
	return &historyRepository{db: db, logger: logger}
}

func (r *historyRepository) SaveEntry(ctx context.Context, e models.TimelineEntry) error {
	query, args, err := r.db.builder.
		Insert(historyTable).
		Columns(append(historyColumns, "created_at")...).
		Values(e.ID, e.Date, e.Timestamp, e.AQI, e.PM25, e.PM10, e.CO, e.NO2,
			e.ScannedBy, e.ScannedUsingModel, e.Message, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*historyRepository.SaveEntry").Msg("insert failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// ListEntries returns the history in insertion order. Ordering for display
// is the console's job.
func (r *historyRepository) ListEntries(ctx context.Context) ([]models.TimelineEntry, error) {
	query, args, err := r.db.builder.Select(historyColumns...).From(historyTable).OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*historyRepository.ListEntries").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.TimelineEntry, 0, 32)
	for rows.Next() {
		var e models.TimelineEntry
		if err = rows.Scan(&e.ID, &e.Date, &e.Timestamp, &e.AQI, &e.PM25, &e.PM10, &e.CO, &e.NO2,
			&e.ScannedBy, &e.ScannedUsingModel, &e.Message); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
