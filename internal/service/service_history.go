package service

import (
	"context"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
)

type historyService struct {
	historyRepository store.HistoryRepository
	ids               utils.IDGenerator

	logger *logger.Logger
}

func NewHistoryService(historyRepository store.HistoryRepository, ids utils.IDGenerator, logger *logger.Logger) HistoryService {
	return &historyService{
		historyRepository: historyRepository,
		ids:               ids,
		logger:            logger,
	}
}

// Post appends entry. History entries are never edited afterwards.
func (h *historyService) Post(ctx context.Context, entry models.TimelineEntry) (models.TimelineEntry, error) {
	if entry.Date == "" || entry.Timestamp == "" {
		return models.TimelineEntry{}, ErrInvalidDataProvided
	}

	entry.ID = h.ids.Generate()
	if err := h.historyRepository.SaveEntry(ctx, entry); err != nil {
		return models.TimelineEntry{}, err
	}
	return entry, nil
}

func (h *historyService) List(ctx context.Context) ([]models.TimelineEntry, error) {
	return h.historyRepository.ListEntries(ctx)
}
