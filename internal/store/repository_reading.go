package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/models"
)

const readingsTable = "readings"

var readingColumns = []string{"id", "model", "aqi", "pm2_5", "pm10", "co", "no2", "status", "recorded_at"}

type readingRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewReadingRepository constructs a [ReadingRepository].
func NewReadingRepository(db *DB, logger *logger.Logger) ReadingRepository {
	logger.Debug().Msg("creating reading repository")
	return &readingRepository{db: db, logger: logger}
}

// SaveReading inserts reading recorded at at. Date and Timestamp of the
// stored reading are derived from at when read back.
func (r *readingRepository) SaveReading(ctx context.Context, reading models.Reading, at time.Time) error {
	query, args, err := r.db.builder.
		Insert(readingsTable).
		Columns(readingColumns...).
		Values(reading.ID, reading.Model, reading.AQI, reading.PM25, reading.PM10,
			reading.CO, reading.NO2, reading.Status, at.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*readingRepository.SaveReading").
			Str("model", reading.Model).
			Msg("insert failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// LatestReadings returns up to limit readings of model, newest first.
func (r *readingRepository) LatestReadings(ctx context.Context, model string, limit uint64) ([]models.Reading, error) {
	return r.query(ctx, "LatestReadings", r.selectReadings().Where(sq.Eq{"model": model}).OrderBy("recorded_at DESC").Limit(limit))
}

// ListReadings returns up to limit readings of every model, newest first.
func (r *readingRepository) ListReadings(ctx context.Context, limit uint64) ([]models.Reading, error) {
	return r.query(ctx, "ListReadings", r.selectReadings().OrderBy("recorded_at DESC").Limit(limit))
}

// ListReadingsSince returns readings recorded at or after since, oldest first.
func (r *readingRepository) ListReadingsSince(ctx context.Context, since time.Time) ([]models.Reading, error) {
	return r.query(ctx, "ListReadingsSince", r.selectReadings().Where(sq.GtOrEq{"recorded_at": since.UTC()}).OrderBy("recorded_at ASC"))
}

func (r *readingRepository) selectReadings() sq.SelectBuilder {
	return r.db.builder.Select(readingColumns...).From(readingsTable)
}

func (r *readingRepository) query(ctx context.Context, op string, b sq.SelectBuilder) ([]models.Reading, error) {
	log := logger.FromContext(ctx)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*readingRepository."+op).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	readings := make([]models.Reading, 0, 64)
	for rows.Next() {
		var (
			reading models.Reading
			at      time.Time
		)
		if err = rows.Scan(&reading.ID, &reading.Model, &reading.AQI, &reading.PM25, &reading.PM10,
			&reading.CO, &reading.NO2, &reading.Status, &at); err != nil {
			log.Err(err).Str("func", "*readingRepository."+op).Msg("failed to scan reading row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		stampReading(&reading, at)
		readings = append(readings, reading)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return readings, nil
}

// stampReading fills the producer formatted fields the remote API returns.
func stampReading(reading *models.Reading, at time.Time) {
	at = at.Local()
	reading.Date = at.Format(time.RFC3339)
	reading.Timestamp = models.HistoryTime(at)
}
