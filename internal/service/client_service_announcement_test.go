package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/invalidation"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var announceNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)

func newTestAnnouncementSvc(t *testing.T) (*clientAnnouncementService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	svc := NewClientAnnouncementService(config.ClientPolling{SensorModel: testSensorModel}, env.session, env.adapter, env.bus, logger.Nop()).(*clientAnnouncementService)
	svc.now = func() time.Time { return announceNow }
	return svc, env
}

func TestAirQualityStatusFor(t *testing.T) {
	tests := []struct {
		aqi     float64
		subject string
		risk    string
	}{
		{0, "Air Quality: Optimal", "Minimal Risk"},
		{10, "Air Quality: Optimal", "Minimal Risk"},
		{10.1, "Air Quality: Acceptable", "Mild Risk"},
		{40, "Air Quality: Acceptable", "Mild Risk"},
		{90, "Air Quality: Moderate", "Moderate Risk"},
		{91, "Air Quality: High - Health Alert", "Unhealthy for Sensitive Groups"},
		{280, "Air Quality: Very High - Urgent", "Very High Risk"},
		{281, "Air Quality: Emergency - Critical", "Extremely High"},
	}

	for _, tt := range tests {
		got := AirQualityStatusFor(tt.aqi)
		assert.Equal(t, tt.subject, got.Subject, "aqi %v", tt.aqi)
		assert.Equal(t, tt.risk, got.Risk, "aqi %v", tt.aqi)
	}
}

func TestFormatDetails(t *testing.T) {
	r := models.Reading{AQI: 57, PM25: 12.5, PM10: 30, CO: 0.8, NO2: 21}

	got := FormatDetails(r, AirQualityStatusFor(r.AQI), announceNow)

	want := "AQI: 57\n" +
		"PM 2.5: 12.5\n" +
		"PM 10: 30\n" +
		"CO: 0.8\n" +
		"NO2: 21\n" +
		"Timestamp: 3:09:26 PM\n" +
		"Date: 2026-03-14\n" +
		"Risk: Moderate Risk\n" +
		"Condition: Raised"
	assert.Equal(t, want, got)
}

// ── Compose ─────────────────────────────────────────────────────────────────

func TestClientAnnouncementService_Compose(t *testing.T) {
	t.Run("uses latest reading", func(t *testing.T) {
		svc, env := newTestAnnouncementSvc(t)

		env.adapter.EXPECT().ListEmails(gomock.Any()).Return([]string{"a@x.io", "b@x.io"}, nil)
		env.adapter.EXPECT().ListReadings(gomock.Any()).Return([]models.Reading{{ID: "r-2", AQI: 300}, {ID: "r-1", AQI: 5}}, nil)

		a, err := svc.Compose(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "a@x.io,b@x.io", a.To)
		assert.Equal(t, "r-2", a.Reading.ID)
		assert.Equal(t, emergencyStatus, a.Status)
		assert.Equal(t, emergencyStatus.Subject, a.Subject)
		assert.Equal(t, emergencyStatus.Message, a.Message)
		assert.Contains(t, a.Details, "Condition: Hazardous")
		assert.Equal(t, announceNow, a.ComposedAt)
		assert.Equal(t, a.Message+"\n"+a.Details, a.Body())
	})

	t.Run("no readings", func(t *testing.T) {
		svc, env := newTestAnnouncementSvc(t)

		env.adapter.EXPECT().ListEmails(gomock.Any()).Return(nil, nil)
		env.adapter.EXPECT().ListReadings(gomock.Any()).Return(nil, nil)

		_, err := svc.Compose(context.Background())
		assert.ErrorIs(t, err, ErrNoReadings)
	})

	t.Run("emails fail", func(t *testing.T) {
		svc, env := newTestAnnouncementSvc(t)

		boom := errors.New("boom")
		env.adapter.EXPECT().ListEmails(gomock.Any()).Return(nil, boom)

		_, err := svc.Compose(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

// ── Send ────────────────────────────────────────────────────────────────────

func testAnnouncement() Announcement {
	status := AirQualityStatusFor(120)
	reading := models.Reading{ID: "r-9", AQI: 120, PM25: 40, PM10: 80, CO: 2, NO2: 33}
	return Announcement{
		To:      "a@x.io,b@x.io",
		Subject: "Custom subject",
		Message: "Stay inside",
		Details: FormatDetails(reading, status, announceNow),
		Reading: reading,
		Status:  status,
	}
}

func TestClientAnnouncementService_Send_FullSequence(t *testing.T) {
	svc, env := newTestAnnouncementSvc(t)
	env.signIn(t)

	a := testAnnouncement()

	gomock.InOrder(
		env.adapter.EXPECT().SendEmail(gomock.Any(), models.Email{To: a.To, Subject: "Custom subject", Message: a.Body()}).Return(nil),
		env.adapter.EXPECT().PostHistory(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e models.TimelineEntry) error {
				assert.Equal(t, "2026-03-14", e.Date)
				assert.Equal(t, "3:09:26 PM", e.Timestamp)
				assert.Equal(t, float64(120), e.AQI)
				assert.Equal(t, float64(33), e.NO2)
				assert.Equal(t, testAdmin.Username, e.ScannedBy)
				assert.Equal(t, testSensorModel, e.ScannedUsingModel)
				assert.Equal(t, "Stay inside", e.Message)
				return nil
			},
		),
		env.adapter.EXPECT().PostChat(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m models.ChatMessage) (models.ChatMessage, error) {
				assert.Equal(t, a.Body(), m.Message)
				assert.Equal(t, models.RoleAdmin, m.Role)
				m.ID = "c-1"
				return m, nil
			},
		),
		env.adapter.EXPECT().ListDeviceTokens(gomock.Any()).Return([]string{"tok-1", "tok-2"}, nil),
		env.adapter.EXPECT().SendNotification(gomock.Any(), models.PushNotification{
			To:    []string{"tok-1", "tok-2"},
			Title: models.NotificationTitle,
			Body:  "Admin: " + a.Body(),
			Sound: models.NotificationSound,
		}).Return(nil),
	)

	require.NoError(t, svc.Send(context.Background(), a))

	assert.Equal(t, uint64(1), env.bus.Version(invalidation.History))
	assert.Equal(t, uint64(1), env.bus.Version(invalidation.Chat))
}

func TestClientAnnouncementService_Send_SkipsMissingRecipients(t *testing.T) {
	svc, env := newTestAnnouncementSvc(t)
	env.signIn(t)

	a := testAnnouncement()
	a.To = ""

	env.adapter.EXPECT().PostHistory(gomock.Any(), gomock.Any()).Return(nil)
	env.adapter.EXPECT().PostChat(gomock.Any(), gomock.Any()).Return(models.ChatMessage{ID: "c-1"}, nil)
	env.adapter.EXPECT().ListDeviceTokens(gomock.Any()).Return(nil, nil)

	require.NoError(t, svc.Send(context.Background(), a))
	assert.Equal(t, uint64(1), env.bus.Version(invalidation.History))
}

func TestClientAnnouncementService_Send_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")

	t.Run("email", func(t *testing.T) {
		svc, env := newTestAnnouncementSvc(t)
		env.signIn(t)

		env.adapter.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(boom)

		err := svc.Send(context.Background(), testAnnouncement())
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "send email")
		assert.Zero(t, env.bus.Version(invalidation.History))
	})

	t.Run("history", func(t *testing.T) {
		svc, env := newTestAnnouncementSvc(t)
		env.signIn(t)

		env.adapter.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(nil)
		env.adapter.EXPECT().PostHistory(gomock.Any(), gomock.Any()).Return(boom)

		err := svc.Send(context.Background(), testAnnouncement())
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "post history")
	})

	t.Run("push", func(t *testing.T) {
		svc, env := newTestAnnouncementSvc(t)
		env.signIn(t)

		env.adapter.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(nil)
		env.adapter.EXPECT().PostHistory(gomock.Any(), gomock.Any()).Return(nil)
		env.adapter.EXPECT().PostChat(gomock.Any(), gomock.Any()).Return(models.ChatMessage{}, nil)
		env.adapter.EXPECT().ListDeviceTokens(gomock.Any()).Return([]string{"tok"}, nil)
		env.adapter.EXPECT().SendNotification(gomock.Any(), gomock.Any()).Return(boom)

		err := svc.Send(context.Background(), testAnnouncement())
		require.ErrorIs(t, err, boom)
		assert.Zero(t, env.bus.Version(invalidation.Chat))
	})
}

func TestClientAnnouncementService_Send_RequiresSession(t *testing.T) {
	svc, _ := newTestAnnouncementSvc(t)

	assert.ErrorIs(t, svc.Send(context.Background(), testAnnouncement()), ErrNoSession)
}
