package service

import (
	"context"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
)

const (
	latestReadingsLimit = 20
	listReadingsLimit   = 100

	// chartWindow covers the widest chart range of the console.
	chartWindow = 90 * 24 * time.Hour
)

type readingService struct {
	readingRepository store.ReadingRepository
	ids               utils.IDGenerator
	now               func() time.Time

	logger *logger.Logger
}

func NewReadingService(readingRepository store.ReadingRepository, ids utils.IDGenerator, logger *logger.Logger) ReadingService {
	return &readingService{
		readingRepository: readingRepository,
		ids:               ids,
		now:               time.Now,
		logger:            logger,
	}
}

// Record stores reading as taken now.
func (r *readingService) Record(ctx context.Context, reading models.Reading) (models.Reading, error) {
	if reading.Model == "" {
		return models.Reading{}, ErrInvalidDataProvided
	}
	if reading.ID == "" {
		reading.ID = r.ids.Generate()
	}
	if reading.Status == "" {
		reading.Status = models.SensorOnline
	}

	at := r.now()
	if err := r.readingRepository.SaveReading(ctx, reading, at); err != nil {
		return models.Reading{}, err
	}

	reading.Date = at.UTC().Format(time.RFC3339)
	reading.Timestamp = models.HistoryTime(at)
	return reading, nil
}

func (r *readingService) Latest(ctx context.Context, model string) ([]models.Reading, error) {
	return r.readingRepository.LatestReadings(ctx, model, latestReadingsLimit)
}

func (r *readingService) List(ctx context.Context) ([]models.Reading, error) {
	return r.readingRepository.ListReadings(ctx, listReadingsLimit)
}

func (r *readingService) Chart(ctx context.Context) ([]models.Reading, error) {
	return r.readingRepository.ListReadingsSince(ctx, r.now().Add(-chartWindow))
}
