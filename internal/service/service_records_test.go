package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/mock"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── Readings ────────────────────────────────────────────────────────────────

func TestReadingService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockReadingRepository(ctrl)
	svc := NewReadingService(repo, &seqIDs{}, logger.Nop()).(*readingService)

	at := time.Date(2026, 4, 1, 14, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	repo.EXPECT().SaveReading(gomock.Any(), gomock.Any(), at).DoAndReturn(
		func(_ context.Context, r models.Reading, _ time.Time) error {
			assert.Equal(t, "id-1", r.ID)
			assert.Equal(t, models.SensorOnline, r.Status)
			return nil
		},
	)

	got, err := svc.Record(context.Background(), models.Reading{Model: testSensorModel, AQI: 33})
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01T14:30:00Z", got.Date)
	assert.NotEmpty(t, got.Timestamp)

	_, err = svc.Record(context.Background(), models.Reading{AQI: 1})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestReadingService_Queries(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockReadingRepository(ctrl)
	svc := NewReadingService(repo, &seqIDs{}, logger.Nop()).(*readingService)

	at := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	repo.EXPECT().LatestReadings(gomock.Any(), testSensorModel, uint64(latestReadingsLimit)).Return(nil, nil)
	repo.EXPECT().ListReadings(gomock.Any(), uint64(listReadingsLimit)).Return(nil, nil)
	repo.EXPECT().ListReadingsSince(gomock.Any(), at.Add(-chartWindow)).Return(nil, nil)

	_, err := svc.Latest(context.Background(), testSensorModel)
	require.NoError(t, err)
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	_, err = svc.Chart(context.Background())
	require.NoError(t, err)
}

// ── Chat ────────────────────────────────────────────────────────────────────

func TestChatService_Post(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockChatRepository(ctrl)
	svc := NewChatService(repo, &seqIDs{}, logger.Nop())

	msg := models.ChatMessage{ID: "client-id", Message: "hello", Sender: "Admin", Role: models.RoleAdmin}
	repo.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m models.ChatMessage) error {
			assert.Equal(t, "id-1", m.ID, "the server assigns ids")
			return nil
		},
	)

	stored, err := svc.Post(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, "id-1", stored.ID)
	assert.Equal(t, "hello", stored.Message)

	_, err = svc.Post(context.Background(), models.ChatMessage{Message: " "})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── History ─────────────────────────────────────────────────────────────────

func TestHistoryService_Post(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockHistoryRepository(ctrl)
	svc := NewHistoryService(repo, &seqIDs{}, logger.Nop())

	repo.EXPECT().SaveEntry(gomock.Any(), gomock.Any()).Return(nil)

	stored, err := svc.Post(context.Background(), models.TimelineEntry{Date: "2026-04-01", Timestamp: "2:30:00 PM", AQI: 50})
	require.NoError(t, err)
	assert.Equal(t, "id-1", stored.ID)

	_, err = svc.Post(context.Background(), models.TimelineEntry{Date: "2026-04-01"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
